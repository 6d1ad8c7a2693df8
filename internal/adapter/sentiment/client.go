package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// ErrMalformedResponse means the service answered 2xx with a body we cannot read.
var ErrMalformedResponse = errors.New("malformed classifier response")

// StatusError represents a non-success answer from the classification service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("classifier returned status %d", e.Code)
}

// Temporary reports whether the same request may succeed later.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError ||
		e.Code == http.StatusTooManyRequests ||
		e.Code == http.StatusRequestTimeout
}

// Client exposes a single classification attempt.
type Client interface {
	Classify(ctx context.Context, text string) (model.Sentiment, error)
}

// HTTPClient implements Client against a Hugging Face style inference endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

type request struct {
	Inputs  string         `json:"inputs"`
	Options requestOptions `json:"options"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// prediction mirrors one ranked entry of the service answer.
type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewHTTPClient creates a classifier client. Zero timeout means 10 seconds.
func NewHTTPClient(endpoint, apiKey string, timeout time.Duration, logger *zap.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse sentiment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("sentiment url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint: parsed,
		apiKey:   apiKey,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Classify sends text to the service once and normalizes the top ranked label.
func (c *HTTPClient) Classify(ctx context.Context, text string) (model.Sentiment, error) {
	payload, err := json.Marshal(request{Inputs: text, Options: requestOptions{WaitForModel: true}})
	if err != nil {
		return model.SentimentPending, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return model.SentimentPending, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-use-cache", "false")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.SentimentPending, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.SentimentPending, err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("sentiment request failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(body, 512)),
		)
		return model.SentimentPending, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	top, err := topPrediction(body)
	if err != nil {
		return model.SentimentPending, err
	}
	return model.SentimentFromLabel(top.Label), nil
}

// topPrediction accepts both [[{...}]] and [{...}] shapes and returns the first entry.
func topPrediction(body []byte) (prediction, error) {
	var nested [][]prediction
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) > 0 && len(nested[0]) > 0 {
			return nested[0][0], nil
		}
		return prediction{}, ErrMalformedResponse
	}

	var flat []prediction
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat[0], nil
	}
	return prediction{}, ErrMalformedResponse
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
