package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// DefaultMIMEType は MIME タイプが判別できない場合に使う値です。
const DefaultMIMEType = "image/png"

// ErrEmptyImage は画像データが空の場合に返されます。
var ErrEmptyImage = errors.New("image data is empty")

// SourceImage はアップロードされた元画像です。
// Data はデータURIのヘッダーを取り除いた後の生バイト列です。
type SourceImage struct {
	Data     []byte
	MIMEType string
}

// IsEmpty は画像データが存在しないかを返します。
func (s *SourceImage) IsEmpty() bool {
	return s == nil || len(s.Data) == 0
}

// GenerationOutput は生成呼び出しの結果です。タイムスタンプは呼び出し側で付与します。
type GenerationOutput struct {
	ImageURL string
	Prompt   string
	Model    string
	Seed     int64
}

// ParseDataURI は "data:image/png;base64,...." 形式の文字列を SourceImage に変換します。
// ヘッダーがない場合は全体を base64 として扱います。
func ParseDataURI(value string) (SourceImage, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return SourceImage{}, ErrEmptyImage
	}

	mimeType := ""
	payload := value
	if header, data, found := strings.Cut(value, ","); found {
		payload = data
		if strings.HasPrefix(header, "data:") {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return SourceImage{}, fmt.Errorf("base64デコードに失敗しました: %w", err)
	}
	if len(data) == 0 {
		return SourceImage{}, ErrEmptyImage
	}

	return SourceImage{Data: data, MIMEType: mimeType}, nil
}

// DataURI はバイト列を data URI 文字列に変換します。
func DataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
