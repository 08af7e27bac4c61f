// Package httpclient は Gemini API 呼び出し用の http.Client を作成します。
package httpclient

import (
	"context"
	"net"
	"net/http"
	"time"
)

const defaultTimeout = 180 * time.Second

// Options は http.Client の設定です。
type Options struct {
	PreferIPv4 bool
	Timeout    time.Duration
}

// New は接続先を IPv4 に寄せられる http.Client を返します。
func New(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialContext(dialer, opts.PreferIPv4),
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func dialContext(dialer *net.Dialer, preferIPv4 bool) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if preferIPv4 && (network == "tcp" || network == "tcp6") {
			network = "tcp4"
		}
		return dialer.DialContext(ctx, network, addr)
	}
}
