package generator

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrMissingImage は元画像がないまま生成しようとした場合のエラーです。
	ErrMissingImage = errors.New("please upload an image first")
	// ErrNoImageProduced はモデルの応答に画像が含まれなかった場合のエラーです。
	ErrNoImageProduced = errors.New("no image data returned from model: check your API key and quota")
	// ErrNoAPIKey は API キーが選択されていない場合のエラーです。
	ErrNoAPIKey = errors.New("no API key selected")
)

// ユーザー向けメッセージ
const (
	MessageMissingImage = "Please upload an image first."
	MessageNoImage      = "No image data returned from model. Check your API key and quota."
	MessageGeneric      = "Failed to generate image. Please try again."
)

// ErrorKind は生成失敗の分類です。
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindMissingInput
	KindPolicy
	KindCredential
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingInput:
		return "missing_input"
	case KindPolicy:
		return "policy"
	case KindCredential:
		return "credential"
	default:
		return "transport"
	}
}

var credentialMarkers = []string{
	"entity was not found",
	"api key not valid",
	"api_key_invalid",
}

// IsCredentialError は、エラーが API キーの再選択を要するものかを判定します。
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoAPIKey) {
		return true
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return true
		}
		if hasCredentialMarker(apiErr.Message) {
			return true
		}
	}
	return hasCredentialMarker(err.Error())
}

func hasCredentialMarker(msg string) bool {
	lower := strings.ToLower(msg)
	for _, m := range credentialMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Classify はエラーを ErrorKind に分類します。
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingImage):
		return KindMissingInput
	case IsCredentialError(err):
		return KindCredential
	case errors.Is(err, ErrNoImageProduced):
		return KindPolicy
	default:
		return KindTransport
	}
}

// UserMessage は画面に表示するエラーメッセージを返します。
// 認証エラーを含め、元のメッセージがあればそれを優先します。
func UserMessage(err error) string {
	switch Classify(err) {
	case KindNone:
		return ""
	case KindMissingInput:
		return MessageMissingImage
	case KindPolicy:
		return MessageNoImage
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MessageGeneric
}
