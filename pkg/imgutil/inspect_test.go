package imgutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
)

// テスト用のダミー画像（12x8の赤い長方形）を作成するヘルパー
func createDummyImageData(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for x := 0; x < 12; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	buf := new(bytes.Buffer)
	var err error
	switch format {
	case "png":
		err = png.Encode(buf, img)
	case "jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "gif":
		err = gif.Encode(buf, img, nil)
	default:
		t.Fatalf("unsupported format: %s", format)
	}

	if err != nil {
		t.Fatalf("failed to encode dummy image: %v", err)
	}
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	tests := []struct {
		format string
		mime   string
	}{
		{"png", "image/png"},
		{"jpeg", "image/jpeg"},
		{"gif", "image/gif"},
	}
	for _, tt := range tests {
		t.Run(tt.format+"の形式とサイズを判定できること", func(t *testing.T) {
			data := createDummyImageData(t, tt.format)

			info, err := Inspect(data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.Format != tt.format || info.MIMEType != tt.mime {
				t.Errorf("format mismatch: %+v", info)
			}
			if info.Width != 12 || info.Height != 8 || info.Bytes != len(data) {
				t.Errorf("size mismatch: %+v", info)
			}
		})
	}

	t.Run("空のデータはエラーになること", func(t *testing.T) {
		if _, err := Inspect(nil); !errors.Is(err, domain.ErrEmptyImage) {
			t.Errorf("expected ErrEmptyImage, got %v", err)
		}
	})

	t.Run("画像でないデータはエラーになること", func(t *testing.T) {
		if _, err := Inspect([]byte("this is not an image")); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestToSource(t *testing.T) {
	data := createDummyImageData(t, "jpeg")
	src, info, err := ToSource(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.MIMEType != "image/jpeg" || !bytes.Equal(src.Data, data) || info.Width != 12 {
		t.Errorf("unexpected source: %+v / %+v", src.MIMEType, info)
	}
}
