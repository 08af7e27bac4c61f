package generator

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// GeminiImageCore は ImageExecutor の責務を担う基盤クラスです。
type GeminiImageCore struct {
	clients ClientFactory
}

// NewGeminiImageCore は依存関係を注入して GeminiImageCore を初期化します。
func NewGeminiImageCore(clients ClientFactory) (*GeminiImageCore, error) {
	if clients == nil {
		return nil, fmt.Errorf("clients (ClientFactory) is required")
	}
	return &GeminiImageCore{clients: clients}, nil
}

// NewGenAIClientFactory は APIKeySource のキーで genai クライアントを作る ClientFactory を返します。
// httpClient が nil の場合は SDK の既定クライアントを使います。
func NewGenAIClientFactory(keys APIKeySource, httpClient *http.Client) ClientFactory {
	return func(ctx context.Context) (ContentGenerator, error) {
		key := ""
		if keys != nil {
			key = keys.APIKey()
		}
		if key == "" {
			return nil, ErrNoAPIKey
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     key,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
		}
		return client.Models, nil
	}
}

// ExecuteRequest はパーツを1つのユーザーコンテンツにまとめて送信し、最初の画像を取り出します。
func (c *GeminiImageCore) ExecuteRequest(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error) {
	client, err := c.clients(ctx)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	start := time.Now()
	resp, err := client.GenerateContent(ctx, model, contents, buildConfig(opts))
	if err != nil {
		slog.WarnContext(ctx, "Gemini呼び出しに失敗しました", "model", model, "error", err)
		return nil, err
	}
	slog.DebugContext(ctx, "Geminiから応答を受信しました", "model", model, "elapsed", time.Since(start))

	return c.parseToResponse(resp, dereferenceSeed(opts.Seed))
}
