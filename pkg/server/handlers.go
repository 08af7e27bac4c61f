package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/shouni/gemini-reproject-kit/pkg/camera"
	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"github.com/shouni/gemini-reproject-kit/pkg/generator"
	"github.com/shouni/gemini-reproject-kit/pkg/imgutil"
	"github.com/shouni/gemini-reproject-kit/pkg/prompt"
	"github.com/shouni/gemini-reproject-kit/pkg/session"
	"github.com/shouni/gemini-reproject-kit/pkg/studio"
)

const maxJSONBytes = 1 << 20

type stateView struct {
	session.State
	HasSource      bool   `json:"hasSource"`
	SourceMIMEType string `json:"sourceMimeType,omitempty"`
	Prompt         string `json:"prompt"`
}

func viewOf(st session.State) stateView {
	v := stateView{
		State:     st,
		HasSource: st.HasSource(),
		Prompt:    prompt.Compose(st.Camera, st.Config).Text,
	}
	if v.HasSource {
		v.SourceMIMEType = st.Source.MIMEType
	}
	return v
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.studio.State()))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Presets())
}

func (s *Server) handleSliders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Sliders())
}

// handlePrompt はクエリで指定したカメラ値（省略時は現在値）のプロンプトを返します。
func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	st := s.studio.State()
	p := st.Camera

	q := r.URL.Query()
	for _, f := range []domain.Field{domain.FieldAzimuth, domain.FieldElevation, domain.FieldDistance} {
		raw := strings.TrimSpace(q.Get(string(f)))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %q", f, raw))
			return
		}
		p = p.With(f, v)
	}

	writeJSON(w, http.StatusOK, prompt.Compose(p, st.Config))
}

func (s *Server) handlePose(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, camera.PoseOf(s.studio.State().Camera))
}

// handleSetSource は multipart の image フィールド、または JSON の dataUri を元画像として受け取ります。
func (s *Server) handleSetSource(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req struct {
			DataURI string `json:"dataUri"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		img, err := domain.ParseDataURI(req.DataURI)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.setSource(w, img.Data)
		return
	}

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}
	s.setSource(w, data)
}

func (s *Server) setSource(w http.ResponseWriter, data []byte) {
	img, info, err := imgutil.ToSource(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.studio.SetSource(img)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Info("source image set", "format", info.Format, "width", info.Width, "height", info.Height, "bytes", info.Bytes)
	writeJSON(w, http.StatusOK, viewOf(st))
}

func (s *Server) handleClearSource(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.studio.ClearSource()))
}

// handleSetCamera はスライダーの範囲内の値だけを受け付けます。
func (s *Server) handleSetCamera(w http.ResponseWriter, r *http.Request) {
	var p domain.CameraParams
	if !decodeJSON(w, r, &p) {
		return
	}
	for _, sl := range domain.Sliders() {
		if v := p.Get(sl.Field); !sl.Contains(v) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s out of range [%g, %g]: %g", sl.Field, sl.Min, sl.Max, v))
			return
		}
	}
	writeJSON(w, http.StatusOK, viewOf(s.studio.SetCamera(p)))
}

func (s *Server) handleStepCamera(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string   `json:"field"`
		Delta *float64 `json:"delta"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	f, err := domain.ParseField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	delta := domain.DefaultStep(f)
	if req.Delta != nil {
		delta = *req.Delta
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		writeError(w, http.StatusBadRequest, "invalid delta")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s.studio.StepCamera(f, delta)))
}

func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	st, err := s.studio.ApplyPreset(r.PathValue("key"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

type configRequest struct {
	Seed          *int64  `json:"seed"`
	RandomizeSeed *bool   `json:"randomizeSeed"`
	AspectRatio   *string `json:"aspectRatio"`
	Resolution    *string `json:"resolution"`
	Width         *int    `json:"width"`
	Height        *int    `json:"height"`
}

// handleSetConfig は指定された項目だけを現在の設定に上書きします。
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cfg, err := mergeConfig(s.studio.State().Config, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s.studio.SetConfig(cfg)))
}

func mergeConfig(cfg domain.GenerationConfig, req configRequest) (domain.GenerationConfig, error) {
	if req.Seed != nil {
		if err := domain.ValidateSeed(*req.Seed); err != nil {
			return cfg, err
		}
		cfg.Seed = *req.Seed
	}
	if req.RandomizeSeed != nil {
		cfg.RandomizeSeed = *req.RandomizeSeed
	}
	if req.AspectRatio != nil {
		ar, err := domain.ParseAspectRatio(*req.AspectRatio)
		if err != nil {
			return cfg, err
		}
		cfg.AspectRatio = ar
	}
	if req.Resolution != nil {
		res, err := domain.ParseResolution(*req.Resolution)
		if err != nil {
			return cfg, err
		}
		if res.RequiresPro() && !cfg.ProMode {
			return cfg, fmt.Errorf("resolution %s requires pro mode", res)
		}
		cfg.Resolution = res
	}
	if req.Width != nil {
		if *req.Width <= 0 {
			return cfg, fmt.Errorf("width must be positive: %d", *req.Width)
		}
		cfg.Width = *req.Width
	}
	if req.Height != nil {
		if *req.Height <= 0 {
			return cfg, fmt.Errorf("height must be positive: %d", *req.Height)
		}
		cfg.Height = *req.Height
	}
	return cfg, nil
}

func (s *Server) handleTogglePro(w http.ResponseWriter, r *http.Request) {
	st, err := s.studio.ToggleProMode(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.studio.ShuffleSeed()))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	res, err := s.studio.Generate(ctx)
	if err != nil {
		status, msg := generationStatus(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// generationStatus は生成エラーを HTTP ステータスと表示用メッセージに変換します。
func generationStatus(err error) (int, string) {
	if errors.Is(err, studio.ErrBusy) {
		return http.StatusConflict, err.Error()
	}
	switch generator.Classify(err) {
	case generator.KindMissingInput:
		return http.StatusBadRequest, generator.UserMessage(err)
	case generator.KindCredential:
		return http.StatusUnauthorized, generator.UserMessage(err)
	default:
		return http.StatusBadGateway, generator.UserMessage(err)
	}
}

func (s *Server) handleSelectHistory(w http.ResponseWriter, r *http.Request) {
	st, err := s.studio.SelectHistory(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

// handleHistoryImage は履歴の画像をバイナリとして返します。
func (s *Server) handleHistoryImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, res := range s.studio.State().History {
		if res.ID != id {
			continue
		}
		img, err := domain.ParseDataURI(res.ImageURL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		ct := img.MIMEType
		if ct == "" {
			ct = domain.DefaultMIMEType
		}
		w.Header().Set("content-type", ct)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(img.Data)
		return
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("history entry not found: %q", id))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
