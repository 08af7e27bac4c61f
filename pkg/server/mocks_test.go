package server

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
)

// --- Mocks ---

type mockGenerator struct {
	generateFunc func(ctx context.Context, img domain.SourceImage, cam domain.CameraParams, cfg domain.GenerationConfig) (*domain.GenerationOutput, error)
}

func (m *mockGenerator) Generate(ctx context.Context, img domain.SourceImage, cam domain.CameraParams, cfg domain.GenerationConfig) (*domain.GenerationOutput, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, img, cam, cfg)
	}
	return &domain.GenerationOutput{
		ImageURL: domain.DataURI("image/png", []byte{1, 2, 3}),
		Prompt:   "prompt",
		Model:    "gemini-2.5-flash-image",
		Seed:     cfg.Seed,
	}, nil
}

type mockSelector struct {
	hasKey    bool
	openCalls int
}

func (m *mockSelector) HasSelectedKey(ctx context.Context) bool { return m.hasKey }

func (m *mockSelector) OpenSelectKey(ctx context.Context) error {
	m.openCalls++
	m.hasKey = true
	return nil
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}
