package customersupport

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"jarvis-agents/internal/adapter/tool"
	"jarvis-agents/internal/domain"
	"jarvis-agents/internal/domains/shared"
	"jarvis-agents/internal/infra/config"
)

// RegisterTools registers the customer support tool set plus the shared
// validation tools. The ticket service is shared by all ticket tools so
// every agent sees the same tickets.
func RegisterTools(registry *tool.Registry, _ *config.Config, logger *slog.Logger) error {
	tickets := NewTicketService()
	toolset := []domain.Tool{
		&createTicketTool{tickets: tickets, logger: logger},
		&updateTicketTool{tickets: tickets, logger: logger},
		&searchTicketsTool{tickets: tickets, logger: logger},
		&kbSearchTool{logger: logger},
		&kbArticleTool{logger: logger},
		&kbCategoriesTool{},
		shared.NewEmailValidator(logger),
		shared.NewPhoneValidator(logger),
	}
	for _, t := range toolset {
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}

type createTicketParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type createTicketTool struct {
	tickets *TicketService
	logger  *slog.Logger
}

func (t *createTicketTool) Name() string { return "create_ticket" }
func (t *createTicketTool) Description() string {
	return "Create a new support ticket."
}

func (t *createTicketTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {
					"type": "string",
					"description": "Brief title/subject of the ticket"
				},
				"description": {
					"type": "string",
					"description": "Detailed description of the issue"
				},
				"priority": {
					"type": "string",
					"enum": ["low", "medium", "high", "urgent"],
					"description": "Priority level (default: medium)"
				}
			},
			"required": ["title", "description"]
		}`),
	}
}

func (t *createTicketTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.create_ticket", t.logger, params,
		func(_ context.Context, _ trace.Span, p createTicketParams) (any, error) {
			if p.Title == "" || p.Description == "" {
				return tool.ErrResult("title and description are required")
			}
			return t.tickets.Create(p.Title, p.Description, p.Priority), nil
		})
}

type updateTicketParams struct {
	TicketID string `json:"ticket_id"`
	Status   string `json:"status"`
}

type updateTicketTool struct {
	tickets *TicketService
	logger  *slog.Logger
}

func (t *updateTicketTool) Name() string { return "update_ticket" }
func (t *updateTicketTool) Description() string {
	return "Update the status of an existing support ticket."
}

func (t *updateTicketTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"ticket_id": {
					"type": "string",
					"description": "Unique identifier for the ticket"
				},
				"status": {
					"type": "string",
					"enum": ["open", "in-progress", "resolved", "closed"],
					"description": "New status"
				}
			},
			"required": ["ticket_id", "status"]
		}`),
	}
}

func (t *updateTicketTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.update_ticket", t.logger, params,
		func(_ context.Context, _ trace.Span, p updateTicketParams) (any, error) {
			updated, err := t.tickets.Update(p.TicketID, p.Status)
			if err != nil {
				return tool.ErrResult("%v", err)
			}
			return updated, nil
		})
}

type searchTicketsParams struct {
	Query string `json:"query"`
}

type searchTicketsTool struct {
	tickets *TicketService
	logger  *slog.Logger
}

func (t *searchTicketsTool) Name() string { return "search_tickets" }
func (t *searchTicketsTool) Description() string {
	return "Search tickets by keyword or ID."
}

func (t *searchTicketsTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {
					"type": "string",
					"description": "Search query (matches against ticket_id, title, description)"
				}
			},
			"required": ["query"]
		}`),
	}
}

func (t *searchTicketsTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.search_tickets", t.logger, params,
		func(_ context.Context, _ trace.Span, p searchTicketsParams) (any, error) {
			hits := t.tickets.Search(p.Query)
			if len(hits) == 0 {
				return "No tickets matched " + p.Query, nil
			}
			return hits, nil
		})
}

type kbSearchParams struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type kbSearchTool struct {
	logger *slog.Logger
}

func (t *kbSearchTool) Name() string { return "search_knowledge_base" }
func (t *kbSearchTool) Description() string {
	return "Search the knowledge base for relevant articles."
}

func (t *kbSearchTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {
					"type": "string",
					"description": "Search query string"
				},
				"max_results": {
					"type": "integer",
					"description": "Maximum number of results to return (default: 5)"
				}
			},
			"required": ["query"]
		}`),
	}
}

func (t *kbSearchTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.search_knowledge_base", t.logger, params,
		func(_ context.Context, _ trace.Span, p kbSearchParams) (any, error) {
			hits := SearchKnowledgeBase(p.Query, p.MaxResults)
			if len(hits) == 0 {
				return "No knowledge base articles matched " + p.Query, nil
			}
			return hits, nil
		})
}

type kbArticleParams struct {
	ArticleID string `json:"article_id"`
}

type kbArticleTool struct {
	logger *slog.Logger
}

func (t *kbArticleTool) Name() string { return "get_article" }
func (t *kbArticleTool) Description() string {
	return "Get the full content of a specific knowledge base article."
}

func (t *kbArticleTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"article_id": {
					"type": "string",
					"description": "Unique identifier for the article (e.g., KB001)"
				}
			},
			"required": ["article_id"]
		}`),
	}
}

func (t *kbArticleTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return tool.Execute(ctx, "tool.get_article", t.logger, params,
		func(_ context.Context, _ trace.Span, p kbArticleParams) (any, error) {
			a, err := GetArticle(p.ArticleID)
			if err != nil {
				return tool.ErrResult("%v", err)
			}
			return a, nil
		})
}

type kbCategoriesTool struct{}

func (t *kbCategoriesTool) Name() string { return "list_article_categories" }
func (t *kbCategoriesTool) Description() string {
	return "List the available knowledge base article categories."
}

func (t *kbCategoriesTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  json.RawMessage(`{"type": "object", "properties": {}}`),
	}
}

func (t *kbCategoriesTool) Execute(context.Context, json.RawMessage) (*domain.ToolResult, error) {
	return tool.TextResult(
		"Available categories: " + strings.Join(ListArticleCategories(), ", ")), nil
}
