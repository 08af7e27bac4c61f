package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-reproject-kit/pkg/config"
	"github.com/shouni/gemini-reproject-kit/pkg/logging"
)

// 全コマンド共通のフラグ
var (
	logLevelFlag  string
	logFormatFlag string

	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reproject",
	Short: "Re-render an image from a new virtual camera angle with Gemini",
	Long: `reproject は、アップロードした画像を仮想カメラの方位角・仰角・距離から
見た別視点の画像として Gemini 画像モデルで再生成します。

Examples:
  reproject prompt --azimuth 90 --elevation 30
  reproject generate -i subject.png --preset birds-eye -o out.png
  reproject generate -i subject.png --azimuth 180 --pro --resolution 2K
  reproject serve --addr :8080
  reproject presets`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if logLevelFlag != "" {
			cfg.LogLevel = logLevelFlag
		}
		if logFormatFlag != "" {
			cfg.LogFormat = logFormatFlag
		}
		logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error). Overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (text, json). Overrides LOG_FORMAT")

	rootCmd.AddCommand(promptCmd, generateCmd, serveCmd, presetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
