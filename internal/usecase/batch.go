package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"jarvis-agents/internal/agentcfg"
	"jarvis-agents/internal/domain"
)

// Batch runs a list of plain-string prompts through one batch-enabled agent.
// The gate lives here so every channel rejects bad batch requests the same
// way before anything crosses the invoker boundary.
type Batch struct {
	appName string
	meta    *agentcfg.Meta
	invoker domain.AgentInvoker
	logger  *slog.Logger
}

// NewBatch builds the batch use case for one domain application.
func NewBatch(appName string, meta *agentcfg.Meta, inv domain.AgentInvoker, logger *slog.Logger) *Batch {
	return &Batch{appName: appName, meta: meta, invoker: inv, logger: logger}
}

// Run gates and executes one batch. agentName must be declared batch_enabled
// and records must be non-empty.
func (b *Batch) Run(ctx context.Context, agentName string, records []string, userID string) (*domain.BatchResult, error) {
	if _, err := b.meta.Lookup(agentName); err != nil {
		return nil, err
	}

	enabled := b.meta.BatchEnabled()
	if !contains(enabled, agentName) {
		return nil, domain.NewDomainError("Batch.Run", domain.ErrNotBatchEnabled,
			fmt.Sprintf("agent %q; valid batch-enabled agents: %s", agentName, strings.Join(enabled, ", ")))
	}
	if len(records) == 0 {
		return nil, domain.WrapOp("Batch.Run", domain.ErrEmptyBatch)
	}

	sessionID := uuid.NewString()
	trace := domain.NewTraceMetadata(
		sessionID,
		fmt.Sprintf("%s_%s-batch_invoker", b.appName, agentName),
		userID,
		b.appName, agentName, "batch",
	)

	b.logger.Info("batch starting",
		"agent", agentName, "records", len(records), "user_id", userID, "session", sessionID)

	result, err := b.invoker.InvokeBatch(ctx, agentName, records, trace)
	if err != nil {
		return nil, err
	}

	b.logger.Info("batch finished",
		"agent", agentName, "run_id", result.RunID,
		"succeeded", len(result.Successes()), "failed", len(result.Failures()))
	return result, nil
}

// BatchAgents lists the agents that accept batch runs.
func (b *Batch) BatchAgents() []string {
	return b.meta.BatchEnabled()
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
