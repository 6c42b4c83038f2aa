// Package reststore implements the supplier store against a PostgREST-style
// HTTP API, so the service can run on a hosted Postgres backend without a
// driver dependency. Calls go through the circuit breaker and retry with
// backoff.
package reststore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("reststore")

// Client wraps HTTP calls to the PostgREST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a REST store client. cfg.MaxConcurrency bounds the
// number of in-flight requests to the backend.
func NewClient(httpClient *http.Client, baseURL, apiKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
		logger:     logger,
	}
}

// doRequest executes an authenticated request against the REST API with
// retry and circuit breaking. A nil byte slice with a nil error means the
// resource was not found.
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte, headers map[string]string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "reststore.doRequest")
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrTimeout{Operation: "reststore acquire"}
	}
	defer c.bulkhead.Release()

	var body []byte
	result, err := c.cb.Execute(func() (any, error) {
		retryErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			b, reqErr := c.once(ctx, method, path, payload, headers)
			if reqErr != nil {
				return reqErr
			}
			body = b
			return nil
		})
		return body, retryErr
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, &domain.ErrCircuitOpen{Service: "reststore"}
	}
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
	}
	b, _ := result.([]byte)
	return b, nil
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte, headers map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("reststore: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("reststore: unexpected status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("reststore: status %d", resp.StatusCode)
	}
	return body, nil
}
