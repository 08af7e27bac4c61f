package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-reproject-kit/pkg/config"
	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"github.com/shouni/gemini-reproject-kit/pkg/generator"
	"github.com/shouni/gemini-reproject-kit/pkg/httpclient"
	"github.com/shouni/gemini-reproject-kit/pkg/keyring"
	"github.com/shouni/gemini-reproject-kit/pkg/studio"
)

// newStudio は設定から Gemini クライアント・キーリング・スタジオを組み立てます。
func newStudio(cfg config.Config, prompter keyring.Prompter) (*studio.Studio, error) {
	keys := keyring.New(cfg.GeminiAPIKey, prompter)

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	core, err := generator.NewGeminiImageCore(generator.NewGenAIClientFactory(keys, httpClient))
	if err != nil {
		return nil, err
	}
	gen, err := generator.NewGeminiGenerator(core, cfg.StandardModel, cfg.ProModel)
	if err != nil {
		return nil, err
	}
	return studio.New(gen, keys)
}

// カメラ指定のフラグ
type cameraFlags struct {
	preset    string
	azimuth   float64
	elevation float64
	distance  float64
}

func (f *cameraFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Camera preset key (see `reproject presets`)")
	cmd.Flags().Float64Var(&f.azimuth, "azimuth", domain.DefaultCamera.Azimuth, "Horizontal rotation in degrees [0,360)")
	cmd.Flags().Float64Var(&f.elevation, "elevation", domain.DefaultCamera.Elevation, "Vertical angle in degrees [-30,60]")
	cmd.Flags().Float64Var(&f.distance, "distance", domain.DefaultCamera.Distance, "Camera distance [0.6,1.4]")
}

// resolve はプリセットを基準に、明示されたフラグだけを上書きしたカメラ値を返します。
func (f *cameraFlags) resolve(cmd *cobra.Command) (domain.CameraParams, error) {
	p := domain.DefaultCamera
	if f.preset != "" {
		preset, ok := domain.PresetByKey(f.preset)
		if !ok {
			return p, fmt.Errorf("%w: %q", studio.ErrUnknownPreset, f.preset)
		}
		p = preset.Camera
	}
	if cmd.Flags().Changed("azimuth") {
		p.Azimuth = f.azimuth
	}
	if cmd.Flags().Changed("elevation") {
		p.Elevation = f.elevation
	}
	if cmd.Flags().Changed("distance") {
		p.Distance = f.distance
	}
	return p, nil
}
