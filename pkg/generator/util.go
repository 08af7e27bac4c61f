package generator

import (
	"net/http"
	"strings"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
)

// seedToPtrInt32 は domain の *int64 を SDK 用の *int32 に変換するのだ。
func seedToPtrInt32(s *int64) *int32 {
	if s == nil {
		return nil
	}
	v := int32(*s)
	return &v
}

// dereferenceSeed は *int64 を安全に int64 に変換するのだ。
// nil の場合はデフォルト値（0）を返すのだよ。
func dereferenceSeed(s *int64) int64 {
	if s == nil {
		return 0
	}
	return *s
}

// detectMIMEType はバイト列から画像の MIME タイプを判定するのだ。
// 判定できない場合は申告値、それも画像でなければ PNG とみなすのだ。
func detectMIMEType(data []byte, declared string) string {
	if detected := http.DetectContentType(data); strings.HasPrefix(detected, "image/") {
		return detected
	}
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	return domain.DefaultMIMEType
}
