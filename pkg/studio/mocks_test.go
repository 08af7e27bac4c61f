package studio

import (
	"context"
	"sync"

	"google.golang.org/genai"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"github.com/shouni/gemini-reproject-kit/pkg/generator"
)

// --- Mocks ---

type mockGenerator struct {
	generateFunc func(ctx context.Context, img domain.SourceImage, cam domain.CameraParams, cfg domain.GenerationConfig) (*domain.GenerationOutput, error)

	mu      sync.Mutex
	calls   int
	lastCfg domain.GenerationConfig
}

func (m *mockGenerator) Generate(ctx context.Context, img domain.SourceImage, cam domain.CameraParams, cfg domain.GenerationConfig) (*domain.GenerationOutput, error) {
	m.mu.Lock()
	m.calls++
	m.lastCfg = cfg
	m.mu.Unlock()

	if m.generateFunc != nil {
		return m.generateFunc(ctx, img, cam, cfg)
	}
	return &domain.GenerationOutput{
		ImageURL: "data:image/png;base64,AA==",
		Prompt:   "prompt",
		Model:    "gemini-2.5-flash-image",
		Seed:     cfg.Seed,
	}, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockSelector struct {
	hasKey    bool
	openCalls int
	openErr   error
}

func (m *mockSelector) HasSelectedKey(ctx context.Context) bool { return m.hasKey }

func (m *mockSelector) OpenSelectKey(ctx context.Context) error {
	m.openCalls++
	if m.openErr == nil {
		m.hasKey = true
	}
	return m.openErr
}

// failingExecutor は本物の GeminiGenerator の下で常に失敗する ImageExecutor なのだ
type failingExecutor struct {
	err   error
	calls int
}

func (f *failingExecutor) ExecuteRequest(ctx context.Context, model string, parts []*genai.Part, opts generator.RequestOptions) (*generator.ImageOutput, error) {
	f.calls++
	return nil, f.err
}
