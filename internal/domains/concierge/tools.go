package concierge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"jarvis-agents/internal/adapter/tool"
	"jarvis-agents/internal/domain"
	"jarvis-agents/internal/domains/shared"
	"jarvis-agents/internal/infra/config"
)

// DefaultCity is used when a weather request omits the location.
const DefaultCity = "London"

// DefaultJokeCategory is used when a joke request omits the category.
const DefaultJokeCategory = "general"

// RegisterTools registers the concierge tool set plus the shared validation
// tools into the registry. The defaults can be overridden through the
// config's domain section (default_city, default_joke_category).
func RegisterTools(registry *tool.Registry, cfg *config.Config, logger *slog.Logger) error {
	city := cfg.DomainValue("default_city", DefaultCity)
	category := cfg.DomainValue("default_joke_category", DefaultJokeCategory)

	tools := []domain.Tool{
		&jokeTool{defaultCategory: category, logger: logger},
		&structuredJokeTool{defaultCategory: category, logger: logger},
		&jokeCategoriesTool{},
		&weatherTool{defaultCity: city, logger: logger},
		&forecastTool{defaultCity: city, logger: logger},
		shared.NewEmailValidator(logger),
	}
	for _, t := range tools {
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}

type jokeParams struct {
	Category string `json:"category"`
}

type jokeTool struct {
	defaultCategory string
	logger          *slog.Logger
}

func (t *jokeTool) Name() string { return "tell_joke" }
func (t *jokeTool) Description() string {
	return "Tell a joke from the specified category (programming, general, knock-knock, dad-joke)."
}

func (t *jokeTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"category": {
					"type": "string",
					"description": "The joke category (programming, general, knock-knock, dad-joke)"
				}
			}
		}`),
	}
}

func (t *jokeTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.tell_joke", t.logger, params,
		func(_ context.Context, _ trace.Span, p jokeParams) (any, error) {
			category := p.Category
			if category == "" {
				category = t.defaultCategory
			}
			joke, err := GetJoke(category)
			if err != nil {
				return tool.ErrResult("%v", err)
			}
			return fmt.Sprintf("%s (Category: %s, Rating: %d/5)",
				joke.JokeText, joke.Category, joke.Rating), nil
		})
}

// structuredJokeTool is the JSON twin of tell_joke, for agents that declare
// a structured output schema.
type structuredJokeTool struct {
	defaultCategory string
	logger          *slog.Logger
}

func (t *structuredJokeTool) Name() string { return "tell_joke_structured" }
func (t *structuredJokeTool) Description() string {
	return "Tell a joke and return it as structured JSON (joke_text, category, rating)."
}

func (t *structuredJokeTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"category": {
					"type": "string",
					"description": "The joke category (programming, general, knock-knock, dad-joke)"
				}
			}
		}`),
	}
}

func (t *structuredJokeTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.tell_joke_structured", t.logger, params,
		func(_ context.Context, _ trace.Span, p jokeParams) (any, error) {
			category := p.Category
			if category == "" {
				category = t.defaultCategory
			}
			joke, err := GetJoke(category)
			if err != nil {
				return tool.ErrResult("%v", err)
			}
			return joke, nil
		})
}

type jokeCategoriesTool struct{}

func (t *jokeCategoriesTool) Name() string { return "get_joke_categories" }
func (t *jokeCategoriesTool) Description() string {
	return "Get the list of available joke categories."
}

func (t *jokeCategoriesTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  json.RawMessage(`{"type": "object", "properties": {}}`),
	}
}

func (t *jokeCategoriesTool) Execute(context.Context, json.RawMessage) (*domain.ToolResult, error) {
	return tool.TextResult(
		"Available joke categories: " + strings.Join(ListCategories(), ", ")), nil
}

type weatherParams struct {
	Location string `json:"location"`
}

type weatherTool struct {
	defaultCity string
	logger      *slog.Logger
}

func (t *weatherTool) Name() string { return "get_weather" }
func (t *weatherTool) Description() string {
	return "Get current weather information for a location."
}

func (t *weatherTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"location": {
					"type": "string",
					"description": "The location to get weather for (e.g., \"San Francisco\", \"New York\")"
				}
			}
		}`),
	}
}

func (t *weatherTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.get_weather", t.logger, params,
		func(_ context.Context, _ trace.Span, p weatherParams) (any, error) {
			location := p.Location
			if location == "" {
				location = t.defaultCity
			}
			w, err := GetWeather(location)
			if err != nil {
				return tool.ErrResult("%v", err)
			}
			return fmt.Sprintf("Weather in %s: %s, %d°%s",
				w.Location, w.Conditions, w.Temperature.Value,
				strings.ToUpper(w.Temperature.Unit[:1])), nil
		})
}

type forecastParams struct {
	Location string `json:"location"`
	Days     int    `json:"days"`
}

type forecastTool struct {
	defaultCity string
	logger      *slog.Logger
}

func (t *forecastTool) Name() string { return "get_forecast" }
func (t *forecastTool) Description() string {
	return "Get weather forecast for a location, up to 7 days."
}

func (t *forecastTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"location": {
					"type": "string",
					"description": "The location to get forecast for"
				},
				"days": {
					"type": "integer",
					"description": "Number of days to forecast (default: 3, max: 7)"
				}
			}
		}`),
	}
}

func (t *forecastTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.get_forecast", t.logger, params,
		func(_ context.Context, _ trace.Span, p forecastParams) (any, error) {
			location := p.Location
			if location == "" {
				location = t.defaultCity
			}
			days := p.Days
			if days == 0 {
				days = 3
			}
			f, err := GetForecast(location, days)
			if err != nil {
				return tool.ErrResult("%v", err)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Weather forecast for %s:", f.Location)
			for i, day := range f.Days {
				fmt.Fprintf(&b, "\n  Day %d: %s", i+1, day)
			}
			return b.String(), nil
		})
}
