package errorhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Morteza-Sakiyan/ErrorHandler/pkg/auth"
	"github.com/Morteza-Sakiyan/ErrorHandler/pkg/config"
	"github.com/Morteza-Sakiyan/ErrorHandler/pkg/observability"
	"github.com/Morteza-Sakiyan/ErrorHandler/pkg/transport"
)

// StatusError is the HTTP failure the transport layer produces.
var _ HTTPFailure = (*transport.StatusError)(nil)

// Client is the SDK entry point. Every failed call comes back as a
// *CallError carrying the classified Outcome, so call sites switch on
// the outcome status instead of probing raw transport errors.
type Client struct {
	config     *config.Config
	transport  *transport.Client
	classifier *Classifier
	registry   *Registry
	auth       *auth.Manager
	logger     *observability.Logger
	metrics    *observability.MetricsCollector
	tracer     *observability.Tracer

	Users   *UsersManager
	Reports *ReportsManager
}

// Option configures the Client.
type Option func(*Client)

// WithRegistry supplies a pre-populated shape registry. Without it the
// client starts with an empty one.
func WithRegistry(reg *Registry) Option {
	return func(c *Client) { c.registry = reg }
}

// WithLogger replaces the default logger.
func WithLogger(l *observability.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics replaces the default metrics collector.
func WithMetrics(m *observability.MetricsCollector) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client from cfg. A nil cfg loads configuration from
// file and environment.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}
	} else if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Client{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.logger == nil {
		c.logger = observability.NewLogger(cfg.ServiceName, cfg.ServiceVersion, cfg.LogLevel, cfg.LogJSON)
	}
	if c.metrics == nil {
		c.metrics = observability.NewMetricsCollector(cfg.ServiceName, cfg.EnableMetrics, nil)
	}
	c.tracer = observability.NewTracer(cfg.ServiceName, cfg.EnableTracing)

	c.auth = auth.NewManager(cfg.APIKey)
	c.transport = transport.NewClient(cfg, transport.WithAuthProvider(c.auth.AuthHeader))
	c.classifier = NewClassifier(c.registry)

	c.Users = &UsersManager{client: c}
	c.Reports = &ReportsManager{client: c}
	return c, nil
}

// RegisterErrorShape appends a shape decoder consulted on every HTTP
// failure. Register shapes during startup, most specific first.
func (c *Client) RegisterErrorShape(fn DecodeFunc) {
	c.registry.Register(fn)
}

// Classify exposes the classifier for callers holding a raw transport
// error of their own.
func (c *Client) Classify(err error) Outcome {
	return c.classifier.Classify(err)
}

// Auth returns the credential manager.
func (c *Client) Auth() *auth.Manager { return c.auth }

// do runs one call and converts any failure into a *CallError.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("%s %s", method, path))
	defer span.End()

	start := time.Now()
	resp, err := c.transport.Do(ctx, method, path, body)
	if err != nil {
		c.tracer.RecordError(span, err)
		outcome := c.classifier.Classify(err)
		c.metrics.RecordRequest(method, path, "error", time.Since(start))
		c.metrics.RecordClassification(outcome.Status.String())
		c.logger.WithComponent("client").
			WithField("method", method).
			WithField("path", path).
			WithField("outcome", outcome.Status.String()).
			Debug("request failed")
		return &CallError{Outcome: outcome, cause: err}
	}

	c.metrics.RecordRequest(method, path, "success", time.Since(start))
	if result != nil && resp.StatusCode != http.StatusNoContent && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
