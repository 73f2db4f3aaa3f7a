package formdata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Post(t *testing.T) {
	var gotName, gotFile, gotFilename, gotHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotName = r.FormValue("name")
		gotHeader = r.Header.Get("X-Api-Key")

		f, fh, err := r.FormFile("avatar")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotFile = string(b)
		gotFilename = fh.Filename
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(
		WithHTTPClient(srv.Client()),
		WithBuilder(NewForTesting()),
		WithHeader("X-Api-Key", "secret"),
	)
	files := NewFiles().Add("avatar", NewFile([]byte("jpeg bytes"), "image/jpeg"))

	resp, err := client.Post(context.Background(), srv.URL, profile{Name: "Jane"}, files)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Jane", gotName)
	assert.Equal(t, "jpeg bytes", gotFile)
	assert.Equal(t, "avatar.jpeg", gotFilename)
	assert.Equal(t, "secret", gotHeader)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if len(body) == 0 {
			http.Error(w, "empty body on retry", http.StatusBadRequest)
			return
		}
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(WithHTTPClient(srv.Client()), WithRetry(3, time.Millisecond))
	resp, err := client.Post(context.Background(), srv.URL, map[string]string{"a": "b"}, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient(WithHTTPClient(srv.Client()), WithRetry(3, time.Millisecond))
	resp, err := client.Post(context.Background(), srv.URL, map[string]string{"a": "b"}, nil)
	assert.Nil(t, resp)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(WithHTTPClient(srv.Client()), WithRetry(2, time.Millisecond))
	_, err := client.Post(context.Background(), srv.URL, nil, nil)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_NegativeRetriesSendOnce(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(WithHTTPClient(srv.Client()), WithRetry(-1, time.Millisecond))
	resp, err := client.Post(context.Background(), srv.URL, map[string]string{"a": "b"}, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_Cancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithHTTPClient(srv.Client()), WithRetry(5, time.Second))
	_, err := client.Post(ctx, srv.URL, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_EncodingErrorIsNotSent(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
	}))
	defer srv.Close()

	client := NewClient(WithHTTPClient(srv.Client()))
	_, err := client.Post(context.Background(), srv.URL, map[string]any{"nested": []int{1}}, nil)
	assert.ErrorIs(t, err, ErrNotScalar)
	assert.Equal(t, int32(0), atomic.LoadInt32(&attempts))
}

func TestNewRequest(t *testing.T) {
	body, err := NewForTesting().Build(map[string]string{"k": "v"}, nil)
	require.NoError(t, err)

	req, err := NewRequest(context.Background(), http.MethodPut, "http://example.invalid/upload", body)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, body.ContentType(), req.Header.Get("Content-Type"))
	assert.Equal(t, body.ContentLength(), req.ContentLength)

	replay, err := req.GetBody()
	require.NoError(t, err)
	data, err := io.ReadAll(replay)
	require.NoError(t, err)
	assert.Equal(t, body.Data, data)

	_, err = NewRequest(context.Background(), http.MethodPost, "", body)
	assert.ErrorIs(t, err, ErrNoURL)
}
