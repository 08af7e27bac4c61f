// Package server はスタジオを JSON API として公開します。
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/gemini-reproject-kit/pkg/studio"
)

const (
	defaultMaxUploadBytes = 25 << 20
	defaultRequestTimeout = 180 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Options は Server の設定です。
type Options struct {
	MaxUploadBytes int64
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Server は1つのスタジオを提供する HTTP サーバーです。
type Server struct {
	studio         *studio.Studio
	maxUploadBytes int64
	requestTimeout time.Duration
	logger         *slog.Logger
}

// New は Server を作成します。
func New(st *studio.Studio, opts Options) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("studio is required")
	}
	s := &Server{
		studio:         st,
		maxUploadBytes: opts.MaxUploadBytes,
		requestTimeout: opts.RequestTimeout,
		logger:         opts.Logger,
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = defaultMaxUploadBytes
	}
	if s.requestTimeout <= 0 {
		s.requestTimeout = defaultRequestTimeout
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Handler はルーティング済みの http.Handler を返します。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/presets", s.handlePresets)
	mux.HandleFunc("GET /api/sliders", s.handleSliders)
	mux.HandleFunc("GET /api/prompt", s.handlePrompt)
	mux.HandleFunc("GET /api/pose", s.handlePose)

	mux.HandleFunc("POST /api/source", s.handleSetSource)
	mux.HandleFunc("DELETE /api/source", s.handleClearSource)

	mux.HandleFunc("POST /api/camera", s.handleSetCamera)
	mux.HandleFunc("POST /api/camera/step", s.handleStepCamera)
	mux.HandleFunc("POST /api/camera/preset/{key}", s.handleApplyPreset)

	mux.HandleFunc("POST /api/config", s.handleSetConfig)
	mux.HandleFunc("POST /api/config/pro", s.handleTogglePro)
	mux.HandleFunc("POST /api/config/shuffle", s.handleShuffle)

	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/history/{id}/select", s.handleSelectHistory)
	mux.HandleFunc("GET /api/history/{id}/image", s.handleHistoryImage)

	return gzhttp.GzipHandler(withLogging(mux, s.logger))
}

// Run は addr で待ち受け、ctx がキャンセルされたら穏当に停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.requestTimeout + 30*time.Second,
		IdleTimeout:       90 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.Info("web started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("サーバーの起動に失敗しました: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("web stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("http", "method", r.Method, "path", r.URL.Path, "status", rec.status, "dur_ms", time.Since(start).Milliseconds())
	})
}
