package formdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts multipart bodies. It adds no behaviour beyond framing and
// optional retries; cancellation follows the request context.
type Client struct {
	http       Doer
	builder    *Builder
	log        *slog.Logger
	header     http.Header
	maxRetries int
	backoff    time.Duration
}

// NewClient returns a Client backed by http.DefaultClient unless configured
// otherwise.
func NewClient(opts ...ClientOption) *Client {
	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.HTTP == nil {
		cfg.HTTP = http.DefaultClient
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Builder == nil {
		cfg.Builder = NewWithLogger(cfg.Log)
	}
	return &Client{
		http:       cfg.HTTP,
		builder:    cfg.Builder,
		log:        cfg.Log,
		header:     cfg.Header,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
	}
}

// NewRequest wraps body in a request whose body can be replayed.
func NewRequest(ctx context.Context, method, url string, body *Body) (*http.Request, error) {
	if url == "" {
		return nil, ErrNoURL
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body.Data))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.ContentLength = body.ContentLength()
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body.Data)), nil
	}
	req.Header.Set("Content-Type", body.ContentType())
	return req, nil
}

// Post encodes object and files and sends them to url. A 2xx response is
// returned open; the caller closes its body.
func (c *Client) Post(ctx context.Context, url string, object any, files *Files, optFns ...func(*Options)) (*http.Response, error) {
	body, err := c.builder.Build(object, files, optFns...)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, http.MethodPost, url, body)
}

// Send transmits an already built body.
func (c *Client) Send(ctx context.Context, method, url string, body *Body) (*http.Response, error) {
	c.log.Debug("Sending multipart body",
		"method", method,
		"url", url,
		"content_length", body.ContentLength(),
		"max_retries", c.maxRetries)

	var resp *http.Response
	call := func() error {
		req, err := NewRequest(ctx, method, url, body)
		if err != nil {
			return err
		}
		for k, vv := range c.header {
			for _, v := range vv {
				req.Header.Add(k, v)
			}
		}

		r, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("send %s %s: %w", method, url, err)
		}
		if r.StatusCode < 200 || r.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
			return &StatusError{StatusCode: r.StatusCode, Status: r.Status}
		}
		resp = r
		return nil
	}

	if err := retryable(ctx, call, c.shouldRetry(ctx), c.maxRetries, c.backoff, c.log); err != nil {
		return nil, err
	}
	c.log.Debug("Multipart body sent", "status", resp.StatusCode)
	return resp, nil
}

func (c *Client) shouldRetry(ctx context.Context) func(error) bool {
	return func(err error) bool {
		if ctx.Err() != nil || errors.Is(err, ErrNoURL) {
			return false
		}
		var se *StatusError
		if errors.As(err, &se) {
			return se.retryable()
		}
		return true
	}
}
