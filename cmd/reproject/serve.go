package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-reproject-kit/pkg/keyring"
	"github.com/shouni/gemini-reproject-kit/pkg/server"
)

var serveAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the studio as a JSON API",
	Long: `serve は1つのスタジオ（元画像・カメラ・設定・履歴）を JSON API として公開します。
キーの再選択が必要になった場合は .env と環境変数を読み直します。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.WebAddr
		if serveAddrFlag != "" {
			addr = serveAddrFlag
		}

		st, err := newStudio(appConfig, keyring.EnvPrompter{})
		if err != nil {
			return err
		}
		srv, err := server.New(st, server.Options{
			MaxUploadBytes: appConfig.MaxUploadBytes,
			RequestTimeout: appConfig.RequestTimeout,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "Listen address. Overrides WEB_ADDR")
}
