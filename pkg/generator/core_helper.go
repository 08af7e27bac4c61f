package generator

import (
	"fmt"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"google.golang.org/genai"
)

func buildConfig(opts RequestOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Seed: seedToPtrInt32(opts.Seed),
	}
	if opts.AspectRatio != "" || opts.ImageSize != "" {
		cfg.ImageConfig = &genai.ImageConfig{
			AspectRatio: opts.AspectRatio,
			ImageSize:   opts.ImageSize,
		}
	}
	return cfg
}

// imagePart は元画像をインラインデータのパーツに変換するのだ。
func imagePart(img domain.SourceImage) *genai.Part {
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: detectMIMEType(img.Data, img.MIMEType),
			Data:     img.Data,
		},
	}
}

func (c *GeminiImageCore) parseToResponse(resp *genai.GenerateContentResponse, seed int64) (*ImageOutput, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, ErrNoImageProduced
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageOutput{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
					UsedSeed: seed,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("%w (FinishReason: %s)", ErrNoImageProduced, candidate.FinishReason)
	}

	return nil, ErrNoImageProduced
}
