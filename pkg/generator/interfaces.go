package generator

import (
	"context"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"google.golang.org/genai"
)

// ContentGenerator は Gemini の generateContent 呼び出しを抽象化するインターフェースです。
// *genai.Models がそのまま満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory は呼び出しごとに ContentGenerator を用意します。
// キー選択後の新しい API キーを次の呼び出しから反映させるため、毎回生成します。
type ClientFactory func(ctx context.Context) (ContentGenerator, error)

// APIKeySource は現在選択されている API キーを返します。
type APIKeySource interface {
	APIKey() string
}

// ImageExecutor は、組み立て済みのパーツで画像生成リクエストを実行するインターフェースです。
type ImageExecutor interface {
	// ExecuteRequest は、指定されたモデルとオプションでリクエストを実行し、最初の画像を返します。
	ExecuteRequest(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error)
}

// ImageGenerator はビジネスロジック層が利用する統合窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, img domain.SourceImage, cam domain.CameraParams, cfg domain.GenerationConfig) (*domain.GenerationOutput, error)
}
