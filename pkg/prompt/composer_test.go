package prompt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
)

func TestAzimuthLabel_Boundaries(t *testing.T) {
	tests := []struct {
		az   float64
		want string
	}{
		{0, "front view"},
		{22.5, "front view"},
		{22.50001, "front-right side view"},
		{67.5, "front-right side view"},
		{90, "right side view"},
		{112.5, "right side view"},
		{112.50001, "back-right view"},
		{157.5, "back-right view"},
		{180, "back view"},
		{202.5, "back view"},
		{225, "back-left view"},
		{247.5, "back-left view"},
		{270, "left side view"},
		{292.5, "left side view"},
		{315, "front-left side view"},
		{337.5, "front-left side view"},
		{337.50001, "front view"},
		{359.9, "front view"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AzimuthLabel(tt.az), "az=%v", tt.az)
	}
}

func TestAzimuthLabel_PiecewiseConstant(t *testing.T) {
	breakpoints := map[float64]bool{
		22.5: true, 67.5: true, 112.5: true, 157.5: true,
		202.5: true, 247.5: true, 292.5: true, 337.5: true,
	}
	labels := map[string]bool{}

	prev := AzimuthLabel(0)
	for i := 1; i < 3600; i++ {
		az := float64(i) / 10
		got := AzimuthLabel(az)
		labels[got] = true

		// 値がちょうど境界の場合は前のセクターに残り、直後に変わる
		prevAz := float64(i-1) / 10
		if got != prev && !breakpoints[math.Round(prevAz*10)/10] {
			t.Fatalf("label changed at %v without a breakpoint at %v", az, prevAz)
		}
		prev = got
	}
	assert.Len(t, labels, 8)
}

func TestElevationLabel(t *testing.T) {
	assert.Equal(t, "low angle shot, looking up", ElevationLabel(-10.0001))
	assert.Equal(t, "eye-level shot", ElevationLabel(-10))
	assert.Equal(t, "eye-level shot", ElevationLabel(20))
	assert.Equal(t, "high angle shot, looking down", ElevationLabel(20.0001))
}

func TestDistanceLabel(t *testing.T) {
	assert.Equal(t, "close-up shot, extreme detail", DistanceLabel(0.6))
	assert.Equal(t, "medium shot", DistanceLabel(0.8))
	assert.Equal(t, "medium shot", DistanceLabel(1.2))
	assert.Equal(t, "wide shot, environment visible", DistanceLabel(1.4))
}

func TestCompose(t *testing.T) {
	t.Run("正面・水平・中距離", func(t *testing.T) {
		got := Compose(domain.CameraParams{Azimuth: 0, Elevation: 0, Distance: 1.0}, domain.DefaultConfig)
		assert.Equal(t, "front view, eye-level shot, medium shot", got.Clause)
		assert.Equal(t,
			"Transform this image to be seen from a front view, eye-level shot, medium shot. Maintain consistency with the original subject and lighting. Realistic style.",
			got.Text)
	})

	t.Run("方位角100・見上げ・接写", func(t *testing.T) {
		got := Compose(domain.CameraParams{Azimuth: 100, Elevation: -20, Distance: 0.5}, domain.DefaultConfig)
		assert.Equal(t, "right side view, low angle shot, looking up, close-up shot, extreme detail", got.Clause)
	})

	t.Run("同じ入力には同じ出力なのだ", func(t *testing.T) {
		p := domain.CameraParams{Azimuth: 225, Elevation: 45, Distance: 1.4}
		cfg := domain.GenerationConfig{ProMode: true, Resolution: domain.Resolution4K, AspectRatio: domain.AspectCinema}
		assert.Equal(t, Compose(p, cfg), Compose(p, cfg))
		assert.Equal(t, Compose(p, domain.DefaultConfig).Text, Compose(p, cfg).Text)
	})
}
