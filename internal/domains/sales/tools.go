package sales

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"jarvis-agents/internal/adapter/tool"
	"jarvis-agents/internal/domain"
	"jarvis-agents/internal/domains/shared"
	"jarvis-agents/internal/infra/config"
)

// RegisterTools registers the sales tool set plus the shared validation
// tools. The lead service is shared so qualification and lookup agree.
func RegisterTools(registry *tool.Registry, _ *config.Config, logger *slog.Logger) error {
	leads := NewLeadService()
	toolset := []domain.Tool{
		&qualifyLeadTool{leads: leads, logger: logger},
		&leadScoreTool{leads: leads, logger: logger},
		&catalogTool{logger: logger},
		&recommendTool{logger: logger},
		&inventoryTool{logger: logger},
		shared.NewEmailValidator(logger),
		shared.NewURLValidator(logger),
	}
	for _, t := range toolset {
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}

type qualifyLeadParams struct {
	Company  string `json:"company"`
	Budget   string `json:"budget"`
	Timeline string `json:"timeline"`
	TeamSize int    `json:"team_size"`
}

type qualifyLeadTool struct {
	leads  *LeadService
	logger *slog.Logger
}

func (t *qualifyLeadTool) Name() string { return "qualify_lead" }
func (t *qualifyLeadTool) Description() string {
	return "Qualify a new sales lead and compute its score and category."
}

func (t *qualifyLeadTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"company": {
					"type": "string",
					"description": "Company name"
				},
				"budget": {
					"type": "string",
					"description": "Budget range or amount"
				},
				"timeline": {
					"type": "string",
					"description": "Timeline for decision/implementation"
				},
				"team_size": {
					"type": "integer",
					"description": "Number of team members/users (default: 1)"
				}
			},
			"required": ["company", "budget", "timeline"]
		}`),
	}
}

func (t *qualifyLeadTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.qualify_lead", t.logger, params,
		func(_ context.Context, _ trace.Span, p qualifyLeadParams) (any, error) {
			if p.Company == "" {
				return tool.ErrResult("company is required")
			}
			return t.leads.Qualify(p.Company, p.Budget, p.Timeline, p.TeamSize), nil
		})
}

type leadScoreParams struct {
	LeadID string `json:"lead_id"`
}

type leadScoreTool struct {
	leads  *LeadService
	logger *slog.Logger
}

func (t *leadScoreTool) Name() string { return "get_lead_score" }
func (t *leadScoreTool) Description() string {
	return "Get qualification details for a previously qualified lead."
}

func (t *leadScoreTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"lead_id": {
					"type": "string",
					"description": "Unique identifier for the lead (e.g., LEAD-5001)"
				}
			},
			"required": ["lead_id"]
		}`),
	}
}

func (t *leadScoreTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.get_lead_score", t.logger, params,
		func(_ context.Context, _ trace.Span, p leadScoreParams) (any, error) {
			lead, err := t.leads.Get(p.LeadID)
			if err != nil {
				return tool.ErrResult("%v", err)
			}
			return lead, nil
		})
}

type catalogParams struct {
	Category string `json:"category"`
}

type catalogTool struct {
	logger *slog.Logger
}

func (t *catalogTool) Name() string { return "get_product_catalog" }
func (t *catalogTool) Description() string {
	return "Get the product catalog, optionally filtered by category."
}

func (t *catalogTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"category": {
					"type": "string",
					"enum": ["Enterprise", "SMB", "Starter"],
					"description": "Filter by category, omit for all products"
				}
			}
		}`),
	}
}

func (t *catalogTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.get_product_catalog", t.logger, params,
		func(_ context.Context, _ trace.Span, p catalogParams) (any, error) {
			return GetCatalog(p.Category), nil
		})
}

type recommendParams struct {
	Requirements string `json:"requirements"`
	MaxResults   int    `json:"max_results"`
}

type recommendTool struct {
	logger *slog.Logger
}

func (t *recommendTool) Name() string { return "recommend_products" }
func (t *recommendTool) Description() string {
	return "Recommend products based on customer requirements."
}

func (t *recommendTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"requirements": {
					"type": "string",
					"description": "Customer requirements description"
				},
				"max_results": {
					"type": "integer",
					"description": "Maximum number of recommendations to return (default: 3)"
				}
			},
			"required": ["requirements"]
		}`),
	}
}

func (t *recommendTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.recommend_products", t.logger, params,
		func(_ context.Context, _ trace.Span, p recommendParams) (any, error) {
			recs := Recommend(p.Requirements, p.MaxResults)
			if len(recs) == 0 {
				return "No products matched the stated requirements", nil
			}
			return recs, nil
		})
}

type inventoryParams struct {
	ProductID string `json:"product_id"`
}

type inventoryTool struct {
	logger *slog.Logger
}

func (t *inventoryTool) Name() string { return "check_inventory" }
func (t *inventoryTool) Description() string {
	return "Check inventory and availability for a specific product."
}

func (t *inventoryTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"product_id": {
					"type": "string",
					"description": "Unique product identifier (e.g., PROD-ENT-001)"
				}
			},
			"required": ["product_id"]
		}`),
	}
}

func (t *inventoryTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.check_inventory", t.logger, params,
		func(_ context.Context, _ trace.Span, p inventoryParams) (any, error) {
			inv, err := CheckInventory(p.ProductID)
			if err != nil {
				return tool.ErrResult("%v", err)
			}
			return inv, nil
		})
}
