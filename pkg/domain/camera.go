package domain

import (
	"fmt"
	"strings"
)

// CameraParams は仮想カメラの球面座標パラメータです。
// 範囲はステップ操作でのみ強制され、構築時には検証しません。
type CameraParams struct {
	Azimuth   float64 `json:"azimuth"`   // 度、[0,360)
	Elevation float64 `json:"elevation"` // 度、[-30,60]
	Distance  float64 `json:"distance"`  // 倍率、[0.6,1.4]
}

// Field はカメラパラメータの項目名です。
type Field string

const (
	FieldAzimuth   Field = "azimuth"
	FieldElevation Field = "elevation"
	FieldDistance  Field = "distance"
)

// カメラパラメータの範囲
const (
	AzimuthMin   = 0.0
	AzimuthMax   = 315.0
	AzimuthStep  = 45.0
	ElevationMin = -30.0
	ElevationMax = 60.0
	DistanceMin  = 0.6
	DistanceMax  = 1.4
)

// DefaultCamera は初期状態のカメラです。
var DefaultCamera = CameraParams{Azimuth: 0, Elevation: 0, Distance: 1.0}

// ParseField は文字列を Field に変換します。
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldAzimuth, FieldElevation, FieldDistance:
		return f, nil
	default:
		return "", fmt.Errorf("unknown camera field: %q", s)
	}
}

// Get は指定項目の値を返します。
func (p CameraParams) Get(f Field) float64 {
	switch f {
	case FieldAzimuth:
		return p.Azimuth
	case FieldElevation:
		return p.Elevation
	case FieldDistance:
		return p.Distance
	}
	return 0
}

// With は指定項目だけを置き換えた新しい値を返します。
func (p CameraParams) With(f Field, v float64) CameraParams {
	switch f {
	case FieldAzimuth:
		p.Azimuth = v
	case FieldElevation:
		p.Elevation = v
	case FieldDistance:
		p.Distance = v
	}
	return p
}

// DefaultStep はビューポートのボタン1回分の増分です。
func DefaultStep(f Field) float64 {
	switch f {
	case FieldAzimuth:
		return 45
	case FieldElevation:
		return 15
	case FieldDistance:
		return -0.2
	}
	return 0
}

// Slider はスライダーの範囲定義です。
type Slider struct {
	Field       Field   `json:"key"`
	Label       string  `json:"label"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
	Description string  `json:"desc"`
}

// Contains は値がスライダーの範囲内かを返します。
func (s Slider) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

var sliders = []Slider{
	{Field: FieldAzimuth, Label: "Azimuth", Min: AzimuthMin, Max: AzimuthMax, Step: AzimuthStep, Description: "Horizontal rotation"},
	{Field: FieldElevation, Label: "Elevation", Min: ElevationMin, Max: ElevationMax, Step: 1, Description: "Vertical angle"},
	{Field: FieldDistance, Label: "Distance", Min: DistanceMin, Max: DistanceMax, Step: 0.1, Description: "Camera zoom level"},
}

// Sliders はスライダー定義のコピーを返します。
func Sliders() []Slider {
	out := make([]Slider, len(sliders))
	copy(out, sliders)
	return out
}

// SliderFor は項目に対応するスライダーを返します。
func SliderFor(f Field) (Slider, bool) {
	for _, s := range sliders {
		if s.Field == f {
			return s, true
		}
	}
	return Slider{}, false
}

// Preset は名前付きのカメラ配置です。
type Preset struct {
	Key    string       `json:"key"`
	Name   string       `json:"name"`
	Camera CameraParams `json:"camera"`
}

var presets = []Preset{
	{Key: "front", Name: "Front View", Camera: CameraParams{Azimuth: 0, Elevation: 0, Distance: 1.0}},
	{Key: "birds-eye", Name: "Bird's Eye", Camera: CameraParams{Azimuth: 0, Elevation: 60, Distance: 1.4}},
	{Key: "worms-eye", Name: "Worm's Eye", Camera: CameraParams{Azimuth: 0, Elevation: -30, Distance: 0.8}},
	{Key: "side", Name: "Side Profile", Camera: CameraParams{Azimuth: 90, Elevation: 0, Distance: 1.0}},
	{Key: "back", Name: "Back View", Camera: CameraParams{Azimuth: 180, Elevation: 0, Distance: 1.0}},
	{Key: "close-up", Name: "Close Up", Camera: CameraParams{Azimuth: 0, Elevation: 10, Distance: 0.6}},
}

// Presets はプリセット一覧のコピーを返します。
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByKey はキーからプリセットを探します。
func PresetByKey(key string) (Preset, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}
