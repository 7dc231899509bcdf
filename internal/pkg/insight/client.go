package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/analytics"
	"github.com/sony/gobreaker"
)

// Summarizer turns a statistics bundle into a natural-language
// summary. The generation itself lives behind an external service.
type Summarizer interface {
	Summarize(ctx context.Context, bundle analytics.InsightBundle) (string, error)
}

// HTTPClient calls the external text-generation service. A circuit
// breaker keeps a degraded summarizer from slowing every insights
// request down to its timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	cb      *gobreaker.CircuitBreaker
}

func NewHTTPClient(baseURL string) *HTTPClient {
	settings := gobreaker.Settings{
		Name:        "Insight-API",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger then 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize sends the bundle and returns the generated text.
func (c *HTTPClient) Summarize(ctx context.Context, bundle analytics.InsightBundle) (string, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.summarize(ctx, bundle)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *HTTPClient) summarize(ctx context.Context, bundle analytics.InsightBundle) (string, error) {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("failed to marshal insight payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create insight request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call insight service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("insight service returned non-successful status code: %d", resp.StatusCode)
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode insight response: %w", err)
	}
	return out.Summary, nil
}

// Disabled is used when no insight service is configured.
type Disabled struct{}

func (Disabled) Summarize(context.Context, analytics.InsightBundle) (string, error) {
	return "", nil
}
