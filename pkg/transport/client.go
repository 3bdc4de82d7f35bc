// Package transport provides the resilient HTTP client whose failures
// feed the error classifier: completed exchanges with status >= 400 come
// back as *StatusError, while timeouts and connection failures surface
// the underlying network error.
package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/Morteza-Sakiyan/ErrorHandler/pkg/config"
)

// Client wraps resty with retries, circuit breaking, rate limiting and
// tracing.
type Client struct {
	client         *resty.Client
	config         *config.Config
	circuitBreaker *gobreaker.CircuitBreaker
	rateLimiter    *rate.Limiter
	tracer         trace.Tracer
	authProvider   func() string
}

// Option configures the transport client.
type Option func(*Client)

// WithAuthProvider installs a callback queried per request for the
// Authorization header value. It takes precedence over the static API key
// from the configuration.
func WithAuthProvider(fn func() string) Option {
	return func(c *Client) { c.authProvider = fn }
}

// Response represents a completed exchange.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// NewClient creates a transport client from cfg.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	client := resty.New()

	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.Timeout)
	client.SetRetryCount(cfg.MaxRetries)
	client.SetRetryWaitTime(cfg.RetryWaitTime)
	client.SetRetryMaxWaitTime(cfg.RetryMaxWaitTime)
	client.SetHeader("User-Agent", cfg.UserAgent)
	for key, value := range cfg.CustomHeaders {
		client.SetHeader(key, value)
	}
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	// Retry on network errors, server errors (5xx) and rate limits (429).
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r.StatusCode() >= 500 || r.StatusCode() == http.StatusTooManyRequests
	})

	if cfg.EnableTracing {
		client.SetTransport(otelhttp.NewTransport(http.DefaultTransport))
	}

	var cb *gobreaker.CircuitBreaker
	if cfg.CircuitBreakerEnabled {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "errorhandler-transport",
			MaxRequests: cfg.CircuitBreakerMaxRequests,
			Interval:    cfg.CircuitBreakerTimeout,
			Timeout:     cfg.CircuitBreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.CircuitBreakerFailureThreshold
			},
		})
	}

	var rl *rate.Limiter
	if cfg.EnableRateLimit {
		rl = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	var tracer trace.Tracer
	if cfg.EnableTracing {
		tracer = otel.Tracer("errorhandler-go-sdk")
	}

	c := &Client{
		client:         client,
		config:         cfg,
		circuitBreaker: cb,
		rateLimiter:    rl,
		tracer:         tracer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do executes one request. On a completed exchange with status >= 400 the
// returned error is a *StatusError carrying the code and raw body; on a
// network-level failure the underlying error is wrapped and stays
// inspectable with errors.As.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, fmt.Sprintf("HTTP %s", method))
		defer span.End()
		span.SetAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		)
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	if c.circuitBreaker != nil {
		result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.execute(ctx, method, path, body)
		})
		if err != nil {
			recordSpanError(span, err)
			return nil, err
		}
		return result.(*Response), nil
	}

	resp, err := c.execute(ctx, method, path, body)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) execute(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	req := c.client.R().SetContext(ctx)
	req.SetHeader("X-Request-ID", uuid.NewString())
	if c.authProvider != nil {
		if header := c.authProvider(); header != "" {
			req.SetHeader("Authorization", header)
		}
	}

	if body != nil {
		req.SetBody(body)
		req.SetHeader("Content-Type", "application/json")
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	if resp.StatusCode() >= 400 {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.Body()}
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}, nil
}

func recordSpanError(span trace.Span, err error) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.Bool("error", true))
	span.RecordError(err)
}
