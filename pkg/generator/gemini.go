package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"github.com/shouni/gemini-reproject-kit/pkg/prompt"
	"google.golang.org/genai"
)

// GeminiGenerator は、元画像とカメラ指定から別視点の画像を生成するジェネレーターです。
type GeminiGenerator struct {
	imgCore       ImageExecutor
	standardModel string
	proModel      string
}

// NewGeminiGenerator は GeminiGenerator を初期化するのだ。
// モデル名が空の場合は既定のモデルを使うのだ。
func NewGeminiGenerator(core ImageExecutor, standardModel, proModel string) (*GeminiGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (ImageExecutor) is required")
	}
	if standardModel == "" {
		standardModel = ModelStandard
	}
	if proModel == "" {
		proModel = ModelPro
	}
	return &GeminiGenerator{
		imgCore:       core,
		standardModel: standardModel,
		proModel:      proModel,
	}, nil
}

// ModelFor は Pro モードの有無に応じたモデル名を返すのだ。
func (g *GeminiGenerator) ModelFor(proMode bool) string {
	if proMode {
		return g.proModel
	}
	return g.standardModel
}

// Generate はカメラ指定からプロンプトを組み立て、1回の生成リクエストを送るのだ。
// 失敗時のエラーは Classify で分類できる形で返すのだ。
func (g *GeminiGenerator) Generate(ctx context.Context, img domain.SourceImage, cam domain.CameraParams, cfg domain.GenerationConfig) (*domain.GenerationOutput, error) {
	if img.IsEmpty() {
		return nil, ErrMissingImage
	}

	p := prompt.Compose(cam, cfg)
	model := g.ModelFor(cfg.ProMode)

	seed := cfg.Seed
	parts := []*genai.Part{
		imagePart(img),
		genai.NewPartFromText(p.Text),
	}

	slog.InfoContext(ctx, "視点変換リクエストを送信します",
		"model", model,
		"clause", p.Clause,
		"aspect_ratio", cfg.AspectRatio,
		"resolution", cfg.Resolution,
		"seed", seed,
	)

	out, err := g.imgCore.ExecuteRequest(ctx, model, parts, RequestOptions{
		AspectRatio: string(cfg.AspectRatio),
		ImageSize:   string(cfg.Resolution),
		Seed:        &seed,
	})
	if err != nil {
		// ラップせずにそのまま返す
		return nil, err
	}

	mime := out.MimeType
	if mime == "" {
		mime = domain.DefaultMIMEType
	}
	return &domain.GenerationOutput{
		ImageURL: domain.DataURI(mime, out.Data),
		Prompt:   p.Text,
		Model:    model,
		Seed:     out.UsedSeed,
	}, nil
}
