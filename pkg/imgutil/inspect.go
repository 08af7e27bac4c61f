package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
)

// ErrUnsupportedFormat はデコードできない画像形式の場合のエラーです。
var ErrUnsupportedFormat = errors.New("unsupported image format")

var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
}

// Info はアップロード画像のヘッダ情報です。
type Info struct {
	Format   string `json:"format"`
	MIMEType string `json:"mimeType"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int    `json:"bytes"`
}

// Inspect は画像全体をデコードせずに形式と大きさを調べます。
// PNG, JPEG, GIF, WebP, BMP に対応しています。
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, domain.ErrEmptyImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	mime, ok := mimeTypes[format]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return Info{
		Format:   format,
		MIMEType: mime,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Bytes:    len(data),
	}, nil
}

// ToSource は検査済みの画像を元画像に変換します。
func ToSource(data []byte) (domain.SourceImage, Info, error) {
	info, err := Inspect(data)
	if err != nil {
		return domain.SourceImage{}, Info{}, err
	}
	return domain.SourceImage{Data: data, MIMEType: info.MIMEType}, info, nil
}
