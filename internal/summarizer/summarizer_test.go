package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGenerateSendsParagraphAndDecodesResult(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if len(payload) != 1 || payload["paragraph"] != "The quick brown fox" {
			t.Errorf("unexpected payload: %#v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":"A fox runs.","questions":["Why does it run?","What color is it?"]}`))
	}))
	defer server.Close()

	client := New(Config{Endpoint: server.URL + "/generate", HTTPClient: server.Client()})
	result, err := client.Generate(context.Background(), "The quick brown fox")
	require.NoError(t, err)
	assert.Equal(t, "A fox runs.", result.Summary)
	assert.Equal(t, []string{"Why does it run?", "What color is it?"}, result.Questions)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateNonSuccessStatusIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"summary":"ignored","questions":[]}`))
	}))
	defer server.Close()

	_, err := New(Config{Endpoint: server.URL, HTTPClient: server.Client()}).Generate(context.Background(), "text")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.Contains(t, err.Error(), "502")
}

func TestTransportErrorBodyKeepsWholeRunes(t *testing.T) {
	body := "x" + strings.Repeat("é", maxErrorBody)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	_, err := New(Config{Endpoint: server.URL, HTTPClient: server.Client()}).Generate(context.Background(), "text")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, utf8.ValidString(transportErr.Body), "body must not end in a split rune")
	assert.LessOrEqual(t, len(transportErr.Body), maxErrorBody)
	assert.Equal(t, maxErrorBody-1, len(transportErr.Body))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ab", truncate("abcd", 2))
	assert.Equal(t, "a", truncate("aé", 2))
	assert.Equal(t, "", truncate("é", 1))
}

func TestGenerateNetworkFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(Config{Endpoint: url}).Generate(context.Background(), "text")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestGenerateMalformedBodies(t *testing.T) {
	cases := map[string]string{
		"not json":          `<html>oops</html>`,
		"missing summary":   `{"questions":["q"]}`,
		"missing questions": `{"summary":"s"}`,
		"null questions":    `{"summary":"s","questions":null}`,
		"wrong types":       `{"summary":1,"questions":"q"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := New(Config{Endpoint: server.URL, HTTPClient: server.Client()}).Generate(context.Background(), "text")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestGenerateAcceptsEmptyFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary":"","questions":[]}`))
	}))
	defer server.Close()

	result, err := New(Config{Endpoint: server.URL, HTTPClient: server.Client()}).Generate(context.Background(), "text")
	require.NoError(t, err)
	assert.Empty(t, result.Summary)
	assert.NotNil(t, result.Questions)
	assert.Empty(t, result.Questions)
}

func TestGenerateHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Endpoint: "http://127.0.0.1:1/generate"}).Generate(ctx, "text")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDefaults(t *testing.T) {
	client := New(Config{})
	assert.Equal(t, DefaultEndpoint, client.Endpoint())
	assert.Zero(t, client.client.Timeout)
}
