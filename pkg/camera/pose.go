// Package camera は球面座標のカメラパラメータを3D空間上の位置に変換し、
// ステップ操作の境界ルールを適用します。
package camera

import (
	"math"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
)

// RadiusScale は distance 1.0 あたりのワールド座標上の半径です。
const RadiusScale = 5.0

// azimuthWrapLow は方位角が 0 未満になった時の戻り先です。
// 45度刻みのグリッドの最後の値であり、359 への連続的な折り返しではありません。
const azimuthWrapLow = 315.0

// Vec3 は3次元ベクトルです。
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Len はベクトルの長さを返します。
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale はスカラー倍したベクトルを返します。
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Sub は v - o を返します。
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Normalize は単位ベクトルを返します。長さ0の場合はゼロベクトルのままです。
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Pose はカメラの位置と向きです。
type Pose struct {
	Position Vec3 `json:"position"`
	Target   Vec3 `json:"target"`
	Forward  Vec3 `json:"forward"`
}

// ToCartesian はカメラパラメータを原点を注視するカメラの位置に変換します。
func ToCartesian(p domain.CameraParams) Vec3 {
	phi := (90 - p.Elevation) * math.Pi / 180
	theta := (p.Azimuth + 90) * math.Pi / 180
	radius := p.Distance * RadiusScale

	return Vec3{
		X: radius * math.Sin(phi) * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Sin(theta),
	}
}

// PoseOf はカメラの位置と、原点へ向かう視線方向を返します。
func PoseOf(p domain.CameraParams) Pose {
	pos := ToCartesian(p)
	target := Vec3{}
	return Pose{
		Position: pos,
		Target:   target,
		Forward:  target.Sub(pos).Normalize(),
	}
}

// Step は指定項目に delta を加算し、項目ごとの境界ルールを適用した新しい値を返します。
func Step(p domain.CameraParams, field domain.Field, delta float64) domain.CameraParams {
	v := p.Get(field) + delta

	switch field {
	case domain.FieldAzimuth:
		if v >= 360 {
			v = 0
		}
		if v < 0 {
			v = azimuthWrapLow
		}
	case domain.FieldElevation:
		v = clamp(v, domain.ElevationMin, domain.ElevationMax)
	case domain.FieldDistance:
		v = clamp(v, domain.DistanceMin, domain.DistanceMax)
	default:
		return p
	}

	return p.With(field, v)
}

// Set はスライダー入力の値をそのまま設定します。範囲の検証は呼び出し側で行います。
func Set(p domain.CameraParams, field domain.Field, value float64) domain.CameraParams {
	return p.With(field, value)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
