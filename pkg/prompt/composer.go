// Package prompt はカメラパラメータから画像変換の指示文を組み立てます。
package prompt

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
)

// template の %s には Clause が入ります。文言はゴールデンテストの対象です。
const template = "Transform this image to be seen from a %s. Maintain consistency with the original subject and lighting. Realistic style."

// 方位角の8セクター。境界値は下側（時計回りで手前）のセクターに含まれます。
var azimuthSectors = []struct {
	upper float64
	label string
}{
	{22.5, "front view"},
	{67.5, "front-right side view"},
	{112.5, "right side view"},
	{157.5, "back-right view"},
	{202.5, "back view"},
	{247.5, "back-left view"},
	{292.5, "left side view"},
	{337.5, "front-left side view"},
}

// Prompt は組み立て結果です。
type Prompt struct {
	Text   string `json:"prompt"`
	Clause string `json:"clause"`
}

// Sector は方位角が属するセクター番号 (0..7) を返します。
// 337.5 を超える値は正面 (0) に折り返します。
func Sector(az float64) int {
	for i, s := range azimuthSectors {
		if az <= s.upper {
			return i
		}
	}
	return 0
}

// AzimuthLabel は方位角の説明を返します。
func AzimuthLabel(az float64) string {
	return azimuthSectors[Sector(az)].label
}

// ElevationLabel は仰角の説明を返します。
func ElevationLabel(el float64) string {
	switch {
	case el < -10:
		return "low angle shot, looking up"
	case el > 20:
		return "high angle shot, looking down"
	default:
		return "eye-level shot"
	}
}

// DistanceLabel は距離の説明を返します。
func DistanceLabel(d float64) string {
	switch {
	case d < 0.8:
		return "close-up shot, extreme detail"
	case d > 1.2:
		return "wide shot, environment visible"
	default:
		return "medium shot"
	}
}

// Clause は3つの説明をカンマで連結します。
func Clause(p domain.CameraParams) string {
	return strings.Join([]string{
		AzimuthLabel(p.Azimuth),
		ElevationLabel(p.Elevation),
		DistanceLabel(p.Distance),
	}, ", ")
}

// Compose はカメラパラメータから最終的なプロンプトを生成します。
// 同じ入力に対して常に同じ文字列を返します。cfg は現状テキストに影響しません。
func Compose(p domain.CameraParams, _ domain.GenerationConfig) Prompt {
	clause := Clause(p)
	return Prompt{
		Text:   fmt.Sprintf(template, clause),
		Clause: clause,
	}
}
