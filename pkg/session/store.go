package session

import "sync"

// Store は現在の状態を保持し、アクションを直列に適用します。
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore は初期状態を持つ Store を作成します。
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Dispatch はアクションを適用し、適用後の状態を返します。
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state.clone()
}

// Snapshot は現在の状態のコピーを返します。
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// TryBegin は生成中でなければ GenerationStarted を適用して true を返します。
// 生成中の場合は何もせず false を返します。
func (s *Store) TryBegin() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Generating {
		return s.state.clone(), false
	}
	s.state = Reduce(s.state, GenerationStarted{})
	return s.state.clone(), true
}

func (s State) clone() State {
	out := s
	if s.History != nil {
		out.History = append(s.History[:0:0], s.History...)
	}
	if s.Source != nil {
		img := *s.Source
		img.Data = append([]byte(nil), s.Source.Data...)
		out.Source = &img
	}
	return out
}
