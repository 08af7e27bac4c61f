package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"google.golang.org/genai"
)

func TestNewGeminiGenerator(t *testing.T) {
	if _, err := NewGeminiGenerator(nil, "", ""); err == nil {
		t.Error("expected error for nil core")
	}

	g, err := NewGeminiGenerator(&mockImageCore{}, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ModelFor(false) != ModelStandard || g.ModelFor(true) != ModelPro {
		t.Errorf("default models mismatch: %s / %s", g.ModelFor(false), g.ModelFor(true))
	}

	g, _ = NewGeminiGenerator(&mockImageCore{}, "std-x", "pro-x")
	if g.ModelFor(false) != "std-x" || g.ModelFor(true) != "pro-x" {
		t.Errorf("custom models mismatch")
	}
}

func TestGeminiGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	src := domain.SourceImage{Data: []byte("\x89PNG\r\n\x1a\nrest"), MIMEType: "image/png"}

	t.Run("成功: 画像、プロンプト、設定が正しく渡されるのだ", func(t *testing.T) {
		cfg := domain.GenerationConfig{
			Seed:        777,
			AspectRatio: domain.AspectCinema,
			Resolution:  domain.Resolution2K,
			ProMode:     true,
		}
		cam := domain.CameraParams{Azimuth: 180, Elevation: 45, Distance: 1.4}

		core := &mockImageCore{
			executeFunc: func(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error) {
				if model != ModelPro {
					t.Errorf("model mismatch: %s", model)
				}
				if len(parts) != 2 || parts[0].InlineData == nil || parts[1].Text == "" {
					t.Fatalf("expected image then text parts, got %+v", parts)
				}
				if !strings.Contains(parts[1].Text, "back view, high angle shot, looking down, wide shot, environment visible") {
					t.Errorf("prompt mismatch: %s", parts[1].Text)
				}
				if opts.AspectRatio != "16:9" || opts.ImageSize != "2K" {
					t.Errorf("options mismatch: %+v", opts)
				}
				if opts.Seed == nil || *opts.Seed != 777 {
					t.Errorf("seed mismatch: %v", opts.Seed)
				}
				return &ImageOutput{Data: []byte{1, 2, 3}, MimeType: "image/jpeg", UsedSeed: 777}, nil
			},
		}
		g, _ := NewGeminiGenerator(core, "", "")

		out, err := g.Generate(ctx, src, cam, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ImageURL != "data:image/jpeg;base64,AQID" {
			t.Errorf("image url mismatch: %s", out.ImageURL)
		}
		if out.Model != ModelPro || out.Seed != 777 {
			t.Errorf("output mismatch: %+v", out)
		}
	})

	t.Run("MIMEタイプが空ならPNGとして扱うのだ", func(t *testing.T) {
		core := &mockImageCore{
			executeFunc: func(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error) {
				return &ImageOutput{Data: []byte{1, 2, 3}}, nil
			},
		}
		g, _ := NewGeminiGenerator(core, "", "")
		out, err := g.Generate(ctx, src, domain.DefaultCamera, domain.DefaultConfig)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(out.ImageURL, "data:image/png;base64,") {
			t.Errorf("image url mismatch: %s", out.ImageURL)
		}
		if out.Model != ModelStandard {
			t.Errorf("model mismatch: %s", out.Model)
		}
	})

	t.Run("失敗: 画像がなければリクエストしないのだ", func(t *testing.T) {
		called := false
		core := &mockImageCore{
			executeFunc: func(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error) {
				called = true
				return nil, nil
			},
		}
		g, _ := NewGeminiGenerator(core, "", "")
		_, err := g.Generate(ctx, domain.SourceImage{}, domain.DefaultCamera, domain.DefaultConfig)
		if !errors.Is(err, ErrMissingImage) {
			t.Errorf("expected ErrMissingImage, got %v", err)
		}
		if called {
			t.Error("request must not be sent without an image")
		}
	})

	t.Run("失敗: 画像なし応答はポリシーエラーなのだ", func(t *testing.T) {
		core := &mockImageCore{
			executeFunc: func(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error) {
				return nil, ErrNoImageProduced
			},
		}
		g, _ := NewGeminiGenerator(core, "", "")
		_, err := g.Generate(ctx, src, domain.DefaultCamera, domain.DefaultConfig)
		if Classify(err) != KindPolicy {
			t.Errorf("expected policy error, got %v", err)
		}
	})

	t.Run("失敗: モデルのエラー文をそのまま返すのだ", func(t *testing.T) {
		cases := []struct {
			err  error
			kind ErrorKind
			want string
		}{
			{errors.New("Requested entity was not found."), KindCredential, "Requested entity was not found."},
			{&genai.APIError{Code: 503, Message: "The model is overloaded."}, KindTransport, (&genai.APIError{Code: 503, Message: "The model is overloaded."}).Error()},
		}
		for _, tc := range cases {
			core := &mockImageCore{
				executeFunc: func(ctx context.Context, model string, parts []*genai.Part, opts RequestOptions) (*ImageOutput, error) {
					return nil, tc.err
				},
			}
			g, _ := NewGeminiGenerator(core, "", "")
			_, err := g.Generate(ctx, src, domain.DefaultCamera, domain.DefaultConfig)
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
			if Classify(err) != tc.kind {
				t.Errorf("kind mismatch: %v", Classify(err))
			}
			if got := UserMessage(err); got != tc.want {
				t.Errorf("user message mismatch: %q", got)
			}
		}
	})
}
