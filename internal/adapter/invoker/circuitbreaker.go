package invoker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"jarvis-agents/internal/domain"
)

// Default circuit breaker settings.
const (
	defaultCBMaxFailures uint32        = 5
	defaultCBTimeout     time.Duration = 30 * time.Second
	defaultCBInterval    time.Duration = 60 * time.Second
)

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures uint32 `yaml:"max_failures"`
	// Timeout is how long the circuit stays open before transitioning to half-open.
	Timeout time.Duration `yaml:"timeout"`
	// Interval is the cyclic period of the closed state for clearing failure counts.
	// If 0, failures never reset until the circuit opens.
	Interval time.Duration `yaml:"interval"`
}

// CircuitBreaker wraps an AgentInvoker so that a failing engine makes
// subsequent calls fail fast instead of piling up. Domain-level rejections
// (unknown agent, empty batch) do not count as engine failures.
type CircuitBreaker struct {
	inner   domain.AgentInvoker
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewCircuitBreaker wraps inner with a circuit breaker.
// If cfg is zero-valued, sensible defaults are used.
func NewCircuitBreaker(name string, inner domain.AgentInvoker, cfg CircuitBreakerConfig, logger *slog.Logger) *CircuitBreaker {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultCBMaxFailures
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultCBTimeout
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultCBInterval
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "invoker:" + name,
		MaxRequests: 1, // allow 1 probe in half-open state
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			// Caller mistakes must not open the circuit.
			return err == nil || domain.IsNotFound(err) ||
				errors.Is(err, domain.ErrInvalidInput) ||
				errors.Is(err, domain.ErrEmptyBatch)
		},
	})

	return &CircuitBreaker{inner: inner, breaker: cb, logger: logger}
}

// Invoke implements domain.AgentInvoker.
func (c *CircuitBreaker) Invoke(ctx context.Context, req domain.InvokeRequest) (*domain.InvokeResult, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		return c.inner.Invoke(ctx, req)
	})
	if err != nil {
		return nil, c.wrapErr(err)
	}
	return out.(*domain.InvokeResult), nil
}

// InvokeBatch implements domain.AgentInvoker.
func (c *CircuitBreaker) InvokeBatch(ctx context.Context, agentName string, records []string, trace domain.TraceMetadata) (*domain.BatchResult, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		return c.inner.InvokeBatch(ctx, agentName, records, trace)
	})
	if err != nil {
		return nil, c.wrapErr(err)
	}
	return out.(*domain.BatchResult), nil
}

func (c *CircuitBreaker) wrapErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrInvokerOverload, err)
	}
	return err
}
