// Package summarizer talks to the study-guide service: it posts a paragraph
// and decodes the summary and questions the service sends back.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"
)

// DefaultEndpoint is the local service started by `learnmaster serve`.
const DefaultEndpoint = "http://localhost:8000/generate"

const maxErrorBody = 512

// ErrMalformedResponse is returned when a 2xx body lacks the summary or the
// question list, or is not JSON at all.
var ErrMalformedResponse = errors.New("malformed summarizer response")

// TransportError covers network failures and non-2xx statuses.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summarizer transport error: %v", e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("summarizer returned %s (%s)", e.Status, e.Body)
	}
	return fmt.Sprintf("summarizer returned %s", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Result is a decoded service response.
type Result struct {
	Summary   string
	Questions []string
}

// Client generates a study guide for a paragraph.
type Client interface {
	Generate(ctx context.Context, paragraph string) (Result, error)
}

// Config describes how to reach the service.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// HTTPClient is the JSON-over-HTTP implementation of Client.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// New builds an HTTPClient. A zero Timeout leaves the call unbounded apart
// from the caller's context.
func New(cfg Config) *HTTPClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPClient{endpoint: endpoint, client: client}
}

// Endpoint reports the URL requests are posted to.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

type generateRequest struct {
	Paragraph string `json:"paragraph"`
}

type generateResponse struct {
	Summary   *string   `json:"summary"`
	Questions *[]string `json:"questions"`
}

// Generate posts paragraph and decodes the response. Exactly one request is
// issued per call; there are no retries.
func (c *HTTPClient) Generate(ctx context.Context, paragraph string) (Result, error) {
	buf, err := json.Marshal(generateRequest{Paragraph: paragraph})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, &TransportError{StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(string(body), maxErrorBody),
		}
	}
	return decode(body)
}

func decode(body []byte) (Result, error) {
	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if parsed.Summary == nil {
		return Result{}, fmt.Errorf("%w: missing summary", ErrMalformedResponse)
	}
	if parsed.Questions == nil {
		return Result{}, fmt.Errorf("%w: missing questions", ErrMalformedResponse)
	}
	return Result{
		Summary:   *parsed.Summary,
		Questions: append([]string{}, (*parsed.Questions)...),
	}, nil
}

// truncate cuts value to at most limit bytes without splitting a rune.
func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut]
}
