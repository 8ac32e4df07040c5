package domain

import (
	"errors"
	"fmt"
)

// Category sentinels. Wrap with NewDomainError to add operation context.
var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrDuplicate    = fmt.Errorf("duplicate")
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrUnavailable  = fmt.Errorf("unavailable")
)

// Sentinel errors for the domain layer.
var (
	ErrAgentNotFound    = fmt.Errorf("agent not found")
	ErrToolNotFound     = fmt.Errorf("tool not found")
	ErrSessionNotFound  = fmt.Errorf("session not found")
	ErrSchemaNotFound   = fmt.Errorf("no output schema configured for agent")
	ErrNotBatchEnabled  = fmt.Errorf("agent is not enabled for batch processing")
	ErrEmptyBatch       = fmt.Errorf("records must not be empty")
	ErrConfigLoad       = fmt.Errorf("failed to load configuration")
	ErrHistoryStore     = fmt.Errorf("history store failed")
	ErrInvokerFailure   = fmt.Errorf("agent invocation failed")
	ErrInvokerOverload  = fmt.Errorf("invoker rejecting calls")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "Registry.Get")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAgentNotFound) ||
		errors.Is(err, ErrToolNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}
