package domain

import (
	"fmt"
	"math"
	"strings"
)

// AspectRatio は出力画像のアスペクト比です。
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectPortrait  AspectRatio = "3:4"
	AspectLandscape AspectRatio = "4:3"
	AspectVertical  AspectRatio = "9:16"
	AspectCinema    AspectRatio = "16:9"
)

// Resolution は出力解像度です。1K 以外は Pro モードでのみ意味を持ちます。
type Resolution string

const (
	Resolution1K Resolution = "1K"
	Resolution2K Resolution = "2K"
	Resolution4K Resolution = "4K"
)

// MaxShuffleSeed はシャッフル時のシード上限（排他的）です。
const MaxShuffleSeed = 10000

// MaxSeed はモデルに渡せるシードの上限です。リクエストでは int32 で送ります。
const MaxSeed = math.MaxInt32

// GenerationConfig は生成時の設定です。
type GenerationConfig struct {
	Seed          int64       `json:"seed"`
	RandomizeSeed bool        `json:"randomizeSeed"`
	AspectRatio   AspectRatio `json:"aspectRatio"`
	Resolution    Resolution  `json:"resolution"`
	ProMode       bool        `json:"proMode"`
	Width         int         `json:"width"`
	Height        int         `json:"height"`
}

// DefaultConfig は初期状態の生成設定です。
var DefaultConfig = GenerationConfig{
	Seed:          0,
	RandomizeSeed: true,
	AspectRatio:   AspectSquare,
	Resolution:    Resolution1K,
	ProMode:       false,
	Width:         1024,
	Height:        1024,
}

// ParseAspectRatio は文字列を AspectRatio に変換します。
func ParseAspectRatio(s string) (AspectRatio, error) {
	switch a := AspectRatio(strings.TrimSpace(s)); a {
	case AspectSquare, AspectPortrait, AspectLandscape, AspectVertical, AspectCinema:
		return a, nil
	default:
		return "", fmt.Errorf("unsupported aspect ratio: %q", s)
	}
}

// ParseResolution は文字列を Resolution に変換します。
func ParseResolution(s string) (Resolution, error) {
	switch r := Resolution(strings.ToUpper(strings.TrimSpace(s))); r {
	case Resolution1K, Resolution2K, Resolution4K:
		return r, nil
	default:
		return "", fmt.Errorf("unsupported resolution: %q", s)
	}
}

// RequiresPro は解像度が Pro モードを必要とするかを返します。
func (r Resolution) RequiresPro() bool {
	return r == Resolution2K || r == Resolution4K
}

// ValidateSeed はシードが [0, MaxSeed] に収まるかを確認します。
func ValidateSeed(seed int64) error {
	if seed < 0 || seed > MaxSeed {
		return fmt.Errorf("seed out of range [0, %d]: %d", MaxSeed, seed)
	}
	return nil
}
