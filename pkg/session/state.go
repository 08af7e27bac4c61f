// Package session はスタジオ画面の状態と、その遷移を表すアクションを定義します。
package session

import (
	"github.com/shouni/gemini-reproject-kit/pkg/camera"
	"github.com/shouni/gemini-reproject-kit/pkg/domain"
)

// State はスタジオの現在の状態です。
type State struct {
	Source     *domain.SourceImage       `json:"-"`
	Camera     domain.CameraParams       `json:"camera"`
	Config     domain.GenerationConfig   `json:"config"`
	Generating bool                      `json:"isGenerating"`
	History    []domain.GenerationResult `json:"history"`
	Error      string                    `json:"error,omitempty"`
}

// Initial は既定値で初期化された状態を返します。
func Initial() State {
	return State{
		Camera:  domain.DefaultCamera,
		Config:  domain.DefaultConfig,
		History: []domain.GenerationResult{},
	}
}

// HasSource は元画像が設定済みかを返します。
func (s State) HasSource() bool {
	return !s.Source.IsEmpty()
}

// Latest は最新の生成結果を返します。
func (s State) Latest() (domain.GenerationResult, bool) {
	if len(s.History) == 0 {
		return domain.GenerationResult{}, false
	}
	return s.History[0], true
}

// Action は状態遷移の種類です。
type Action interface {
	apply(State) State
}

// StepCamera はフィールドを Delta だけ動かします。
type StepCamera struct {
	Field domain.Field
	Delta float64
}

type (
	SetSource           struct{ Image domain.SourceImage }
	ClearSource         struct{}
	SetCamera           struct{ Camera domain.CameraParams }
	ApplyPreset         struct{ Key string }
	SetConfig           struct{ Config domain.GenerationConfig }
	ToggleProMode       struct{}
	ShuffleSeed         struct{ Seed int64 }
	GenerationStarted   struct{}
	GenerationSucceeded struct{ Result domain.GenerationResult }
	GenerationFailed    struct{ Message string }
	GenerationRejected  struct{ Message string }
	SelectHistory       struct{ ID string }
	ClearError          struct{}
)

// Reduce は状態にアクションを適用した新しい状態を返します。
// 引数の状態は変更しません。
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a SetSource) apply(s State) State {
	img := domain.SourceImage{
		Data:     append([]byte(nil), a.Image.Data...),
		MIMEType: a.Image.MIMEType,
	}
	s.Source = &img
	s.Error = ""
	return s
}

func (ClearSource) apply(s State) State {
	s.Source = nil
	return s
}

func (a SetCamera) apply(s State) State {
	s.Camera = a.Camera
	return s
}

func (a StepCamera) apply(s State) State {
	s.Camera = camera.Step(s.Camera, a.Field, a.Delta)
	return s
}

func (a ApplyPreset) apply(s State) State {
	if p, ok := domain.PresetByKey(a.Key); ok {
		s.Camera = p.Camera
	}
	return s
}

func (a SetConfig) apply(s State) State {
	s.Config = a.Config
	return s
}

func (ToggleProMode) apply(s State) State {
	s.Config.ProMode = !s.Config.ProMode
	return s
}

func (a ShuffleSeed) apply(s State) State {
	s.Config.Seed = a.Seed
	return s
}

func (GenerationStarted) apply(s State) State {
	s.Generating = true
	s.Error = ""
	return s
}

func (a GenerationSucceeded) apply(s State) State {
	history := make([]domain.GenerationResult, 0, len(s.History)+1)
	history = append(history, a.Result)
	s.History = append(history, s.History...)
	s.Generating = false
	return s
}

func (a GenerationFailed) apply(s State) State {
	s.Error = a.Message
	s.Generating = false
	return s
}

// 生成を開始せずに断った場合は、実行中の生成のフラグに触れない
func (a GenerationRejected) apply(s State) State {
	s.Error = a.Message
	return s
}

func (a SelectHistory) apply(s State) State {
	idx := -1
	for i, r := range s.History {
		if r.ID == a.ID {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return s
	}

	history := make([]domain.GenerationResult, 0, len(s.History))
	history = append(history, s.History[idx])
	history = append(history, s.History[:idx]...)
	s.History = append(history, s.History[idx+1:]...)
	return s
}

func (ClearError) apply(s State) State {
	s.Error = ""
	return s
}
