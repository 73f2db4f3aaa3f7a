package formdata

import (
	"log/slog"
	"net/http"
	"time"
)

// ClientOption represents options for a Client
type ClientOption func(*clientConfig)

type clientConfig struct {
	HTTP       Doer
	Builder    *Builder
	Log        *slog.Logger
	Header     http.Header
	MaxRetries int           // 0 → no retry
	Backoff    time.Duration // initial delay, doubled per attempt
}

// WithHTTPClient sets the transport used to send requests
func WithHTTPClient(d Doer) ClientOption {
	return func(cfg *clientConfig) {
		cfg.HTTP = d
	}
}

// WithBuilder sets the Builder used to encode request bodies
func WithBuilder(b *Builder) ClientOption {
	return func(cfg *clientConfig) {
		cfg.Builder = b
	}
}

// WithClientLogger sets the client logger
func WithClientLogger(log *slog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.Log = log
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) ClientOption {
	return func(cfg *clientConfig) {
		if cfg.Header == nil {
			cfg.Header = make(http.Header)
		}
		cfg.Header.Add(key, value)
	}
}

// WithRetry retries transport errors and 5xx responses with exponential backoff
func WithRetry(max int, backoff time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.MaxRetries = max
		cfg.Backoff = backoff
	}
}
