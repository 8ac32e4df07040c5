// Package invoker provides implementations of domain.AgentInvoker. The real
// agent execution engine lives outside this repository; Local is the
// self-contained stand-in used by the demo domains and the test suite.
package invoker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"jarvis-agents/internal/adapter/tool"
	"jarvis-agents/internal/agentcfg"
	"jarvis-agents/internal/domain"
	"jarvis-agents/internal/infra/tracer"
)

// toolDirectiveRe matches inputs of the form "tool:<name> {json args}".
// The Local invoker has no language model behind it, so tool execution is
// driven explicitly instead of being chosen by reasoning.
var toolDirectiveRe = regexp.MustCompile(`^tool:([a-z][a-z0-9_]*)\s*(\{.*\})?$`)

// Local is an offline AgentInvoker. It resolves agents against the loaded
// declarations, executes explicit tool directives through the tool registry
// and echoes everything else. Deterministic apart from tool-internal
// randomness, which makes it suitable for tests and demos.
type Local struct {
	meta    *agentcfg.Meta
	tools   *tool.Registry
	logger  *slog.Logger
	workers int
}

// NewLocal builds a Local invoker. workers bounds batch concurrency; values
// below 1 are clamped to 1.
func NewLocal(meta *agentcfg.Meta, tools *tool.Registry, logger *slog.Logger, workers int) *Local {
	if workers < 1 {
		workers = 1
	}
	return &Local{meta: meta, tools: tools, logger: logger, workers: workers}
}

// Invoke runs a single request against the named agent.
func (l *Local) Invoke(ctx context.Context, req domain.InvokeRequest) (*domain.InvokeResult, error) {
	ctx, span := tracer.StartSpan(ctx, "invoker.local")
	defer span.End()
	span.SetAttributes(tracer.MetadataAttrs(req.Trace)...)

	def, err := l.meta.Lookup(req.AgentName)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	agentTools, err := l.tools.Subset(def.Tools)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, domain.WrapOp("Local.Invoke", err)
	}

	result := &domain.InvokeResult{
		AgentName: def.Name,
		SessionID: req.SessionID,
	}

	input := strings.TrimSpace(req.Content)
	if m := toolDirectiveRe.FindStringSubmatch(input); m != nil {
		if err := l.runTool(ctx, agentTools, m[1], m[2], result); err != nil {
			tracer.RecordError(span, err)
			return nil, err
		}
	} else {
		result.Content = fmt.Sprintf("%s: %s", def.Name, describe(def, input))
	}

	if err := l.fillStructured(def.Name, result); err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	tracer.SetOK(span)
	return result, nil
}

func (l *Local) runTool(ctx context.Context, tools *tool.Registry, name, rawArgs string, result *domain.InvokeResult) error {
	t, err := tools.Get(name)
	if err != nil {
		return err
	}
	if rawArgs == "" {
		rawArgs = "{}"
	}

	call := domain.ToolCall{
		ID:        ulid.Make().String(),
		Name:      name,
		Arguments: json.RawMessage(rawArgs),
	}
	result.ToolCalls = append(result.ToolCalls, call)

	out, err := t.Execute(ctx, call.Arguments)
	if err != nil {
		return domain.WrapOp("Local.Invoke", fmt.Errorf("%w: %v", domain.ErrInvokerFailure, err))
	}
	if out.IsError {
		return domain.NewDomainError("Local.Invoke", domain.ErrInvokerFailure, out.Content)
	}
	result.Content = out.Content
	return nil
}

// fillStructured parses the response as JSON when the agent declares an
// output schema, and validates it against that schema.
func (l *Local) fillStructured(agentName string, result *domain.InvokeResult) error {
	if _, err := l.meta.SchemaFor(agentName); err != nil {
		return nil // no schema declared
	}

	var structured map[string]any
	if err := json.Unmarshal([]byte(result.Content), &structured); err != nil {
		return domain.NewDomainError("Local.Invoke", domain.ErrInvokerFailure,
			fmt.Sprintf("agent %q declares an output schema but produced non-JSON output", agentName))
	}
	if err := l.meta.ValidateOutput(agentName, structured); err != nil {
		return err
	}
	result.Structured = structured
	return nil
}

func describe(def domain.AgentDef, input string) string {
	if def.Description != "" {
		return fmt.Sprintf("%s (input: %q)", def.Description, input)
	}
	return fmt.Sprintf("received %q", input)
}

// InvokeBatch fans records out over a bounded worker pool. Results keep
// record order regardless of completion order; a failed record never aborts
// the rest of the batch.
func (l *Local) InvokeBatch(ctx context.Context, agentName string, records []string, trace domain.TraceMetadata) (*domain.BatchResult, error) {
	ctx, span := tracer.StartSpan(ctx, "invoker.local.batch")
	defer span.End()
	span.SetAttributes(tracer.MetadataAttrs(trace)...)
	span.SetAttributes(tracer.IntAttr("batch.records", len(records)))

	if _, err := l.meta.Lookup(agentName); err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}
	if len(records) == 0 {
		err := domain.WrapOp("Local.InvokeBatch", domain.ErrEmptyBatch)
		tracer.RecordError(span, err)
		return nil, err
	}

	result := &domain.BatchResult{
		RunID:   ulid.Make().String(),
		Agent:   agentName,
		Results: make([]domain.BatchRecord, len(records)),
	}

	sem := make(chan struct{}, l.workers)
	var wg sync.WaitGroup
	for i, input := range records {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rec := domain.BatchRecord{Index: i, Input: input}
			res, err := l.Invoke(ctx, domain.InvokeRequest{
				AgentName: agentName,
				SessionID: trace.SessionID,
				Content:   input,
				Trace:     trace,
			})
			if err != nil {
				rec.Error = err.Error()
			} else {
				rec.Output = res.Content
				rec.Success = true
			}
			result.Results[i] = rec
		}(i, input)
	}
	wg.Wait()

	l.logger.Info("batch complete",
		"run_id", result.RunID,
		"agent", agentName,
		"total", result.Total(),
		"failed", len(result.Failures()))
	tracer.SetOK(span)
	return result, nil
}
