// Package shared holds tools usable by any domain agent, currently the data
// validation helpers (email, phone, URL).
package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"go.opentelemetry.io/otel/trace"

	"jarvis-agents/internal/adapter/tool"
	"jarvis-agents/internal/domain"
)

// RegisterValidationTools registers every shared validation tool.
func RegisterValidationTools(registry *tool.Registry, logger *slog.Logger) error {
	tools := []domain.Tool{
		NewEmailValidator(logger),
		NewPhoneValidator(logger),
		NewURLValidator(logger),
	}
	for _, t := range tools {
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type emailParams struct {
	Email string `json:"email"`
}

// EmailValidator checks email address format.
type EmailValidator struct {
	logger *slog.Logger
}

func NewEmailValidator(logger *slog.Logger) *EmailValidator {
	return &EmailValidator{logger: logger}
}

func (t *EmailValidator) Name() string        { return "validate_email" }
func (t *EmailValidator) Description() string { return "Validate email address format." }

func (t *EmailValidator) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"email": {
					"type": "string",
					"description": "Email address to validate"
				}
			},
			"required": ["email"]
		}`),
	}
}

func (t *EmailValidator) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.validate_email", t.logger, params,
		func(_ context.Context, _ trace.Span, p emailParams) (any, error) {
			if emailRe.MatchString(p.Email) {
				return fmt.Sprintf("Valid email address: %s", p.Email), nil
			}
			return fmt.Sprintf(
				"Invalid email address: %s. Please provide a valid email format (e.g., user@example.com)",
				p.Email), nil
		})
}

var phoneSeparatorRe = regexp.MustCompile(`[\s\-()+.]`)
var phoneDigitsRe = regexp.MustCompile(`^\d{10,15}$`)

type phoneParams struct {
	Phone string `json:"phone"`
}

// PhoneValidator checks phone number format. Accepts separators and country
// codes: (123) 456-7890, 123-456-7890, 1234567890, +1-123-456-7890.
type PhoneValidator struct {
	logger *slog.Logger
}

func NewPhoneValidator(logger *slog.Logger) *PhoneValidator {
	return &PhoneValidator{logger: logger}
}

func (t *PhoneValidator) Name() string        { return "validate_phone" }
func (t *PhoneValidator) Description() string { return "Validate phone number format." }

func (t *PhoneValidator) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"phone": {
					"type": "string",
					"description": "Phone number to validate"
				}
			},
			"required": ["phone"]
		}`),
	}
}

func (t *PhoneValidator) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.validate_phone", t.logger, params,
		func(_ context.Context, _ trace.Span, p phoneParams) (any, error) {
			cleaned := phoneSeparatorRe.ReplaceAllString(p.Phone, "")
			if phoneDigitsRe.MatchString(cleaned) {
				return fmt.Sprintf("Valid phone number: %s (normalized: %s)", p.Phone, cleaned), nil
			}
			return fmt.Sprintf(
				"Invalid phone number: %s. Please provide a valid phone number (e.g., 123-456-7890 or +1-123-456-7890)",
				p.Phone), nil
		})
}

type urlParams struct {
	URL string `json:"url"`
}

// URLValidator checks URL structure, requiring an http or https scheme and a
// host.
type URLValidator struct {
	logger *slog.Logger
}

func NewURLValidator(logger *slog.Logger) *URLValidator {
	return &URLValidator{logger: logger}
}

func (t *URLValidator) Name() string        { return "validate_url" }
func (t *URLValidator) Description() string { return "Validate URL format." }

func (t *URLValidator) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"url": {
					"type": "string",
					"description": "URL to validate"
				}
			},
			"required": ["url"]
		}`),
	}
}

func (t *URLValidator) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.validate_url", t.logger, params,
		func(_ context.Context, _ trace.Span, p urlParams) (any, error) {
			parsed, err := url.Parse(p.URL)
			if err != nil || parsed.Scheme == "" || parsed.Host == "" {
				return fmt.Sprintf(
					"Invalid URL: %s. Please provide a complete URL with protocol (e.g., https://example.com)",
					p.URL), nil
			}
			if parsed.Scheme != "http" && parsed.Scheme != "https" {
				return fmt.Sprintf("URL has non-standard scheme: %s. Expected http or https.", parsed.Scheme), nil
			}
			return fmt.Sprintf("Valid URL: %s", p.URL), nil
		})
}
