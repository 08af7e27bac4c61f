package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockContentGenerator struct {
	generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	calls int
}

func (m *mockContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, contents, config)
	}
	return imageResponse("image/png", []byte("fake")), nil
}

type mockImageCore struct {
	executeFunc func(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error)
}

func (m *mockImageCore) ExecuteRequest(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, model, parts, opts)
	}
	return &ImageOutput{Data: []byte("fake"), MimeType: "image/png", UsedSeed: dereferenceSeed(opts.Seed)}, nil
}

type staticKey string

func (k staticKey) APIKey() string { return string(k) }

func factoryOf(g ContentGenerator) ClientFactory {
	return func(ctx context.Context) (ContentGenerator, error) { return g, nil }
}

func imageResponse(mime string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}},
			},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}
