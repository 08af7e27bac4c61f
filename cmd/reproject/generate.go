package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"github.com/shouni/gemini-reproject-kit/pkg/imgutil"
	"github.com/shouni/gemini-reproject-kit/pkg/keyring"
)

var (
	genCamera     cameraFlags
	genImageFlag  string
	genOutFlag    string
	genSeedFlag   int64
	genAspectFlag string
	genResFlag    string
	genProFlag    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the image seen from a new camera pose",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	genCamera.register(generateCmd)
	generateCmd.Flags().StringVarP(&genImageFlag, "image", "i", "", "Source image path (PNG, JPEG, GIF, WebP, BMP)")
	generateCmd.Flags().StringVarP(&genOutFlag, "out", "o", "", "Output path (default: <image>_<azimuth>_<elevation>.<ext>)")
	generateCmd.Flags().Int64Var(&genSeedFlag, "seed", -1, "Seed in [0,2147483647]; negative draws a random seed in [0,10000)")
	generateCmd.Flags().StringVar(&genAspectFlag, "aspect", string(domain.DefaultConfig.AspectRatio), "Aspect ratio (1:1, 3:4, 4:3, 9:16, 16:9)")
	generateCmd.Flags().StringVar(&genResFlag, "resolution", string(domain.DefaultConfig.Resolution), "Resolution (1K; 2K and 4K require --pro)")
	generateCmd.Flags().BoolVar(&genProFlag, "pro", false, "Use the pro image model")
	_ = generateCmd.MarkFlagRequired("image")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cam, err := genCamera.resolve(cmd)
	if err != nil {
		return err
	}
	aspect, err := domain.ParseAspectRatio(genAspectFlag)
	if err != nil {
		return err
	}
	res, err := domain.ParseResolution(genResFlag)
	if err != nil {
		return err
	}
	if res.RequiresPro() && !genProFlag {
		return fmt.Errorf("resolution %s requires --pro", res)
	}
	if genSeedFlag >= 0 {
		if err := domain.ValidateSeed(genSeedFlag); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(genImageFlag)
	if err != nil {
		return fmt.Errorf("元画像の読み込みに失敗しました: %w", err)
	}
	src, info, err := imgutil.ToSource(data)
	if err != nil {
		return fmt.Errorf("%s: %w", genImageFlag, err)
	}
	slog.Debug("元画像を読み込みました", "format", info.Format, "width", info.Width, "height", info.Height)

	st, err := newStudio(appConfig, keyring.TerminalPrompter{Out: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), appConfig.RequestTimeout)
	defer cancel()

	if _, err := st.SetSource(src); err != nil {
		return err
	}
	st.SetCamera(cam)

	cfg := st.State().Config
	cfg.AspectRatio = aspect
	cfg.Resolution = res
	cfg.RandomizeSeed = genSeedFlag < 0
	if genSeedFlag >= 0 {
		cfg.Seed = genSeedFlag
	}
	st.SetConfig(cfg)
	if genProFlag {
		if _, err := st.ToggleProMode(ctx); err != nil {
			return err
		}
	}

	result, err := st.Generate(ctx)
	if err != nil {
		return err
	}

	img, err := domain.ParseDataURI(result.ImageURL)
	if err != nil {
		return err
	}
	out := genOutFlag
	if out == "" {
		out = defaultOutputPath(genImageFlag, cam, img.MIMEType)
	}
	if err := os.WriteFile(out, img.Data, 0o644); err != nil {
		return fmt.Errorf("出力の書き込みに失敗しました: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\nmodel=%s seed=%d at=%s\n",
		out, result.Model, result.Seed, time.UnixMilli(result.Timestamp).Format(time.RFC3339))
	return nil
}

func defaultOutputPath(src string, cam domain.CameraParams, mimeType string) string {
	ext := ".png"
	switch mimeType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	name := fmt.Sprintf("%s_az%g_el%g_d%g%s", base, cam.Azimuth, cam.Elevation, cam.Distance, ext)
	return filepath.Join(filepath.Dir(src), name)
}
