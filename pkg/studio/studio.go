// Package studio は元画像・カメラ・設定・履歴をまとめ、視点変換の生成フローを実行します。
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"github.com/shouni/gemini-reproject-kit/pkg/generator"
	"github.com/shouni/gemini-reproject-kit/pkg/keyring"
	"github.com/shouni/gemini-reproject-kit/pkg/session"
)

var (
	// ErrBusy は生成中に次の生成が要求された場合のエラーです。
	ErrBusy = errors.New("generation already in progress")
	// ErrUnknownPreset は存在しないプリセットが指定された場合のエラーです。
	ErrUnknownPreset = errors.New("unknown camera preset")
	// ErrHistoryNotFound は存在しない履歴 ID が指定された場合のエラーです。
	ErrHistoryNotFound = errors.New("history entry not found")
)

// Option は Studio の設定を変更します。
type Option func(*Studio)

// WithClock は時刻の取得方法を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

// WithSeedSource は [0, n) の乱数の取得方法を差し替えます。
func WithSeedSource(intn func(n int64) int64) Option {
	return func(s *Studio) { s.intn = intn }
}

// WithIDGenerator は履歴 ID の採番方法を差し替えます。
func WithIDGenerator(newID func() string) Option {
	return func(s *Studio) { s.newID = newID }
}

// WithInitialState は初期状態を差し替えます。
func WithInitialState(st session.State) Option {
	return func(s *Studio) { s.store = session.NewStore(st) }
}

// Studio は1ユーザー分の編集セッションです。
type Studio struct {
	gen   generator.ImageGenerator
	keys  keyring.Selector
	store *session.Store

	now   func() time.Time
	intn  func(n int64) int64
	newID func() string

	stampMu sync.Mutex
	lastTS  int64
}

// New は依存関係を注入して Studio を作成します。
func New(gen generator.ImageGenerator, keys keyring.Selector, opts ...Option) (*Studio, error) {
	if gen == nil {
		return nil, fmt.Errorf("gen (generator.ImageGenerator) is required")
	}
	if keys == nil {
		return nil, fmt.Errorf("keys (keyring.Selector) is required")
	}

	s := &Studio{
		gen:   gen,
		keys:  keys,
		store: session.NewStore(session.Initial()),
		now:   time.Now,
		intn:  rand.Int64N,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State は現在の状態のコピーを返します。
func (s *Studio) State() session.State {
	return s.store.Snapshot()
}

// Generate は現在の元画像・カメラ・設定で1回生成し、成功すれば履歴の先頭に追加します。
// 失敗時はメッセージを状態に記録し、認証エラーであればキー選択を開きます。
func (s *Studio) Generate(ctx context.Context) (domain.GenerationResult, error) {
	if !s.store.Snapshot().HasSource() {
		s.store.Dispatch(session.GenerationRejected{Message: generator.MessageMissingImage})
		return domain.GenerationResult{}, generator.ErrMissingImage
	}

	st, ok := s.store.TryBegin()
	if !ok {
		return domain.GenerationResult{}, ErrBusy
	}

	var (
		res     domain.GenerationResult
		genErr  error
		settled bool
	)
	// どの経路で抜けても生成中フラグを必ず下ろす
	defer func() {
		if settled {
			return
		}
		msg := generator.MessageGeneric
		if genErr != nil {
			msg = generator.UserMessage(genErr)
		}
		s.store.Dispatch(session.GenerationFailed{Message: msg})
	}()

	if st.Source == nil {
		genErr = generator.ErrMissingImage
		return res, genErr
	}

	cfg := st.Config
	if cfg.RandomizeSeed {
		cfg.Seed = s.intn(domain.MaxShuffleSeed)
		s.store.Dispatch(session.ShuffleSeed{Seed: cfg.Seed})
	}

	start := s.now()
	slog.InfoContext(ctx, "生成を開始します",
		"azimuth", st.Camera.Azimuth,
		"elevation", st.Camera.Elevation,
		"distance", st.Camera.Distance,
		"pro", cfg.ProMode,
		"seed", cfg.Seed,
	)

	out, err := s.gen.Generate(ctx, *st.Source, st.Camera, cfg)
	if err != nil {
		genErr = err
		kind := generator.Classify(err)
		slog.WarnContext(ctx, "生成に失敗しました", "kind", kind.String(), "error", err)

		s.store.Dispatch(session.GenerationFailed{Message: generator.UserMessage(err)})
		settled = true

		if kind == generator.KindCredential {
			if selErr := s.keys.OpenSelectKey(ctx); selErr != nil {
				slog.WarnContext(ctx, "APIキーの選択に失敗しました", "error", selErr)
			}
		}
		return res, err
	}

	res = domain.GenerationResult{
		ID:        s.newID(),
		ImageURL:  out.ImageURL,
		Prompt:    out.Prompt,
		Timestamp: s.stamp(),
		Seed:      out.Seed,
		Model:     out.Model,
	}
	s.store.Dispatch(session.GenerationSucceeded{Result: res})
	settled = true

	slog.InfoContext(ctx, "生成が完了しました", "id", res.ID, "model", res.Model, "elapsed", s.now().Sub(start))
	return res, nil
}

// stamp は単調非減少のミリ秒タイムスタンプを返します。
func (s *Studio) stamp() int64 {
	s.stampMu.Lock()
	defer s.stampMu.Unlock()

	ts := s.now().UnixMilli()
	if ts < s.lastTS {
		ts = s.lastTS
	}
	s.lastTS = ts
	return ts
}

// ToggleProMode は Pro モードを切り替えます。
// 有効にする際にキーが未選択であれば、先にキー選択を開きます。
func (s *Studio) ToggleProMode(ctx context.Context) (session.State, error) {
	if !s.store.Snapshot().Config.ProMode && !s.keys.HasSelectedKey(ctx) {
		if err := s.keys.OpenSelectKey(ctx); err != nil {
			slog.WarnContext(ctx, "APIキーの選択に失敗しました", "error", err)
		}
	}
	return s.store.Dispatch(session.ToggleProMode{}), nil
}

// SetSource は元画像を設定します。
func (s *Studio) SetSource(img domain.SourceImage) (session.State, error) {
	if img.IsEmpty() {
		return s.store.Snapshot(), domain.ErrEmptyImage
	}
	return s.store.Dispatch(session.SetSource{Image: img}), nil
}

// SetSourceDataURI は data URI 形式の元画像を設定します。
func (s *Studio) SetSourceDataURI(uri string) (session.State, error) {
	img, err := domain.ParseDataURI(uri)
	if err != nil {
		return s.store.Snapshot(), err
	}
	return s.SetSource(img)
}

// ClearSource は元画像を外します。
func (s *Studio) ClearSource() session.State {
	return s.store.Dispatch(session.ClearSource{})
}

// SetCamera はカメラ値を直接設定します。
func (s *Studio) SetCamera(p domain.CameraParams) session.State {
	return s.store.Dispatch(session.SetCamera{Camera: p})
}

// StepCamera はカメラの1フィールドを delta だけ動かします。
func (s *Studio) StepCamera(f domain.Field, delta float64) session.State {
	return s.store.Dispatch(session.StepCamera{Field: f, Delta: delta})
}

// ApplyPreset はプリセットのカメラ値を適用します。
func (s *Studio) ApplyPreset(key string) (session.State, error) {
	if _, ok := domain.PresetByKey(key); !ok {
		return s.store.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	return s.store.Dispatch(session.ApplyPreset{Key: key}), nil
}

// SetConfig は生成設定を置き換えます。
func (s *Studio) SetConfig(cfg domain.GenerationConfig) session.State {
	return s.store.Dispatch(session.SetConfig{Config: cfg})
}

// ShuffleSeed は [0, 10000) の新しいシードを設定します。
func (s *Studio) ShuffleSeed() session.State {
	return s.store.Dispatch(session.ShuffleSeed{Seed: s.intn(domain.MaxShuffleSeed)})
}

// SelectHistory は履歴の項目を先頭に移動します。
func (s *Studio) SelectHistory(id string) (session.State, error) {
	for _, r := range s.store.Snapshot().History {
		if r.ID == id {
			return s.store.Dispatch(session.SelectHistory{ID: id}), nil
		}
	}
	return s.store.Snapshot(), fmt.Errorf("%w: %q", ErrHistoryNotFound, id)
}
