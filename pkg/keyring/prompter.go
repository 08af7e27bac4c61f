package keyring

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// EnvPrompter は .env ファイルと環境変数からキーを読み直します。
// 実行中に .env を書き換えれば、次の選択で新しいキーが使われます。
type EnvPrompter struct {
	Files []string
}

// PromptKey は .env を上書きロードしてから環境変数のキーを返します。
func (p EnvPrompter) PromptKey(ctx context.Context) (string, error) {
	files := p.Files
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Overload(existing...); err != nil {
			return "", fmt.Errorf(".env の読み込みに失敗しました: %w", err)
		}
	}

	key := lookupEnvKey()
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}

// TerminalPrompter は端末からキーを入力させます。
// 端末であれば入力を表示せず、パイプなどからは1行読み取ります。
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// PromptKey はプロンプトを表示し、入力されたキーを返します。
// ctx がキャンセルされると In に読み取り期限を設定して読み取りを打ち切ります。
// 期限を設定できないファイル（通常の端末の標準入力など）では、読み取り用の
// goroutine は次の入力行か EOF までブロックしたまま残ります。
func (p TerminalPrompter) PromptKey(ctx context.Context) (string, error) {
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = os.Stderr
	}

	if _, err := fmt.Fprint(out, "Gemini API key: "); err != nil {
		return "", err
	}

	type result struct {
		key string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		key, err := readKey(in)
		ch <- result{key: key, err: err}
	}()

	select {
	case <-ctx.Done():
		_ = in.SetReadDeadline(time.Now())
		return "", ctx.Err()
	case r := <-ch:
		fmt.Fprintln(out)
		return strings.TrimSpace(r.key), r.err
	}
}

func readKey(in *os.File) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		return string(b), err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return line, nil
}
