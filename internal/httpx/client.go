package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/voca/internal"
)

// Config holds the transport settings of one endpoint
type Config struct {
	Timeout time.Duration

	// Breaker enables the circuit breaker. It trips after BreakerFailures
	// consecutive failures and half-opens after BreakerCooldown.
	Breaker         bool
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Timeout:         10 * time.Second,
		Breaker:         true,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

// Request describes a GET against the client's base URL
type Request struct {
	Path       string
	PathParams map[string]string
	Query      map[string]string
}

// Client performs GET requests against one service
type Client struct {
	service string
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// New creates a Client for service rooted at baseURL
func New(service, baseURL string, cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	c := &Client{
		service: service,
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "voca/"+internal.Version),
		log: log.With().Str("service", service).Logger(),
	}

	if cfg.Breaker {
		c.breaker = newBreaker(service, cfg, c.log)
	}

	return c
}

// Service returns the name used in errors and logs
func (c *Client) Service() string {
	return c.service
}

// Get performs the request and returns the body of a 2xx response
func (c *Client) Get(ctx context.Context, r Request) ([]byte, error) {
	if c.breaker == nil {
		return c.get(ctx, r)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, r)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: %w", c.service, ErrCircuitOpen)
		}
		return nil, err
	}

	return body.([]byte), nil
}

func (c *Client) get(ctx context.Context, r Request) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(r.PathParams) > 0 {
		req.SetPathParams(r.PathParams)
	}
	if len(r.Query) > 0 {
		req.SetQueryParams(r.Query)
	}

	resp, err := req.Get(r.Path)
	if err != nil {
		c.log.Debug().Err(err).Str("path", r.Path).Msg("request failed")
		return nil, fmt.Errorf("%s: %w: %w", c.service, ErrTransport, err)
	}

	c.log.Debug().
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("response")

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", c.service, ErrNotFound)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{Service: c.service, Code: resp.StatusCode(), Body: snippet(resp.String())}
	}

	return resp.Body(), nil
}

func newBreaker(service string, cfg Config, log zerolog.Logger) *gobreaker.CircuitBreaker {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = DefaultConfig().BreakerFailures
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        service,
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A word missing from the dictionary or a cycle superseded by the
		// user says nothing about the health of the endpoint.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || isCanceled(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > 120 {
		return string(r[:120]) + "..."
	}
	return s
}
