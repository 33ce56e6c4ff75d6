package openrouter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
	"watchwise/business/recommendation"
	"watchwise/domain"
	"watchwise/pkg/logger"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	SiteURL     string
	SiteName    string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration

	// local budget; a refused call surfaces as a rate limit
	RequestsPerSec float64
	Burst          int

	// attempts per call, counting the first; only transport errors and
	// 502/503/504 are retried
	MaxAttempts uint
	RetryDelay  time.Duration

	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openrouter_requests_total",
			Help: "Outbound chat completion calls by result.",
		},
		[]string{"result"},
	)

	CircuitState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "openrouter_circuit_state",
			Help: "Circuit breaker state for the model provider (0 closed, 1 half-open, 2 open).",
		},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, CircuitState)
}

type Gateway struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

var _ recommendation.Gateway = (*Gateway)(nil)

func NewGateway(cfg Config) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "openrouter",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// a 429 means the provider is healthy but busy
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrRateLimited)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			CircuitState.Set(float64(to))
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Gateway{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, cfg.Burst),
		breaker: breaker,
	}
}

func (g *Gateway) RequestSuggestions(ctx context.Context, prompt string) ([]domain.ModelSuggestion, error) {
	if !g.limiter.Allow() {
		RequestsTotal.WithLabelValues("local_limited").Inc()
		return nil, &domain.RateLimitError{Local: true, RetryAfter: time.Second}
	}

	payload, err := json.Marshal(chatRequest{
		Model:       g.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	body, err := g.breaker.Execute(func() ([]byte, error) {
		return g.postWithRetry(ctx, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			RequestsTotal.WithLabelValues("circuit_open").Inc()
			return nil, fmt.Errorf("%w: circuit open: %v", domain.ErrUpstream, err)
		}
		return nil, err
	}

	suggestions, err := ParseSuggestions(body)
	if err != nil {
		RequestsTotal.WithLabelValues("malformed").Inc()
		logger.Debug("Unparseable model reply", "body", truncate(string(body), 500))
		return nil, err
	}

	RequestsTotal.WithLabelValues("ok").Inc()
	return suggestions, nil
}

func (g *Gateway) postWithRetry(ctx context.Context, payload []byte) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			var err error
			body, err = g.post(ctx, payload)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(g.cfg.MaxAttempts),
		retry.Delay(g.cfg.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Retrying model request", "attempt", int(n)+1, "error", err)
		}),
	)
	if err != nil {
		if !errors.Is(err, domain.ErrUpstream) && !errors.Is(err, domain.ErrRateLimited) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		return nil, err
	}

	return body, nil
}

func (g *Gateway) post(ctx context.Context, payload []byte) ([]byte, error) {
	url := strings.TrimRight(g.cfg.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	if g.cfg.SiteURL != "" {
		req.Header.Set("HTTP-Referer", g.cfg.SiteURL)
	}
	if g.cfg.SiteName != "" {
		req.Header.Set("X-Title", g.cfg.SiteName)
	}

	res, err := g.client.Do(req)
	if err != nil {
		RequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &upstreamError{msg: err.Error(), retryable: isTransientTransport(ctx, err)}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		RequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &upstreamError{msg: "read body: " + err.Error(), retryable: isTransientTransport(ctx, err)}
	}

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		RequestsTotal.WithLabelValues("rate_limited").Inc()
		return nil, &domain.RateLimitError{RetryAfter: parseRetryAfter(res.Header.Get("Retry-After"), time.Now())}
	case res.StatusCode < 200 || res.StatusCode > 299:
		RequestsTotal.WithLabelValues("status_" + strconv.Itoa(res.StatusCode)).Inc()
		return nil, &upstreamError{
			status:    res.StatusCode,
			msg:       truncate(string(body), 200),
			retryable: res.StatusCode == http.StatusBadGateway || res.StatusCode == http.StatusServiceUnavailable || res.StatusCode == http.StatusGatewayTimeout,
		}
	}

	return body, nil
}

type upstreamError struct {
	status    int
	msg       string
	retryable bool
}

func (e *upstreamError) Error() string {
	if e.status != 0 {
		return fmt.Sprintf("provider returned status %d: %s", e.status, e.msg)
	}
	return "provider unreachable: " + e.msg
}

func (e *upstreamError) Unwrap() error {
	return domain.ErrUpstream
}

func isRetryable(err error) bool {
	var ue *upstreamError
	return errors.As(err, &ue) && ue.retryable
}

// Timeouts are not retried; the per-call timeout is already generous and a
// second one would exceed the generation budget.
func isTransientTransport(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return false
	}
	return true
}

func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
