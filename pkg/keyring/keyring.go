// Package keyring は Gemini API キーの選択状態を管理します。
package keyring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// キーを探す環境変数（先勝ち）
var envKeys = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

var (
	// ErrNoPrompter はキー選択の手段が設定されていない場合のエラーです。
	ErrNoPrompter = errors.New("keyring: no key prompter configured")
	// ErrEmptyKey は選択されたキーが空だった場合のエラーです。
	ErrEmptyKey = errors.New("keyring: selected API key is empty")
)

// Selector はキー選択の外部コラボレーターです。
type Selector interface {
	HasSelectedKey(ctx context.Context) bool
	OpenSelectKey(ctx context.Context) error
}

// Source は現在の API キーを返します。
type Source interface {
	APIKey() string
}

// Prompter は新しい API キーを取得する手段です。
type Prompter interface {
	PromptKey(ctx context.Context) (string, error)
}

// Keyring はプロセス全体で共有するキーの選択状態です。
type Keyring struct {
	mu       sync.RWMutex
	key      string
	prompter Prompter
}

// New は初期キーとプロンプターで Keyring を作成します。
func New(initial string, prompter Prompter) *Keyring {
	return &Keyring{key: strings.TrimSpace(initial), prompter: prompter}
}

// FromEnv は環境変数のキーで初期化した Keyring を作成します。
func FromEnv(prompter Prompter) *Keyring {
	return New(lookupEnvKey(), prompter)
}

func lookupEnvKey() string {
	for _, name := range envKeys {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// APIKey は現在のキーを返します。
func (k *Keyring) APIKey() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.key
}

// SetKey はキーを直接差し替えます。
func (k *Keyring) SetKey(key string) {
	k.mu.Lock()
	k.key = strings.TrimSpace(key)
	k.mu.Unlock()
}

// HasSelectedKey はキーが選択済みかを返します。
func (k *Keyring) HasSelectedKey(_ context.Context) bool {
	return k.APIKey() != ""
}

// OpenSelectKey はプロンプターで新しいキーを取得し、選択状態を更新します。
// 失敗した場合、既存のキーはそのまま残ります。
func (k *Keyring) OpenSelectKey(ctx context.Context) error {
	if k.prompter == nil {
		return ErrNoPrompter
	}

	key, err := k.prompter.PromptKey(ctx)
	if err != nil {
		return fmt.Errorf("APIキーの選択に失敗しました: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}

	k.SetKey(key)
	slog.InfoContext(ctx, "APIキーを更新しました", "key", mask(key))
	return nil
}

// mask はログ出力用にキーの末尾4文字以外を伏せます。
func mask(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
