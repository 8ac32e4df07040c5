// Package app wires one domain application together: config, logging,
// tracing, agent declarations, the tool registry and the invoker. Every
// domain binary under cmd/ is a thin shell around app.Main.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"jarvis-agents/internal/adapter/history"
	"jarvis-agents/internal/adapter/invoker"
	"jarvis-agents/internal/adapter/tool"
	"jarvis-agents/internal/agentcfg"
	"jarvis-agents/internal/domain"
	"jarvis-agents/internal/infra/config"
	"jarvis-agents/internal/infra/logger"
	"jarvis-agents/internal/infra/tracer"
	"jarvis-agents/internal/usecase"
)

// Domain describes one runnable domain application.
type Domain struct {
	// Name is the snake_case application name, e.g. "customer_support".
	Name string
	// ConfigDir is the subdirectory under the agent config root holding this
	// domain's agents.yaml, e.g. "customer-support".
	ConfigDir string
	// Description is a one-line summary shown in usage output.
	Description string
	// RegisterTools installs this domain's tools into the registry.
	RegisterTools func(*tool.Registry, *config.Config, *slog.Logger) error
}

// Main parses arguments and dispatches to a subcommand. It is the body of
// every domain binary's main function and exits the process on failure.
func Main(d Domain) {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			showUsage(d)
			return
		}
	}

	var err error
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		err = runServe(d, os.Args[1:])
	} else {
		cmd, args := os.Args[1], os.Args[2:]
		switch cmd {
		case "serve":
			err = runServe(d, args)
		case "invoke":
			err = runInvoke(d, args)
		case "batch":
			err = runBatch(d, args)
		case "agents":
			err = runAgents(d, args)
		case "schema":
			err = runSchema(d, args)
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\nRun '%s --help' for usage information.\n", cmd, d.Name)
			os.Exit(1)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", d.Name, err)
		os.Exit(1)
	}
}

// env holds the components every subcommand needs.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	meta     *agentcfg.Meta
	registry *tool.Registry
	invoker  domain.AgentInvoker
	cleanup  func()
}

// buildEnv loads config and stands the core components up. The returned
// cleanup closes the logger and flushes the tracer.
func buildEnv(d Domain, cfgPath string) (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.App.Name = d.Name

	log, logCloser, err := logger.New(cfg.App, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	ctx := context.Background()
	tracerShutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		logCloser()
		return nil, fmt.Errorf("tracer: %w", err)
	}
	cleanup := func() {
		tracerShutdown(ctx)
		logCloser()
	}

	meta, err := agentcfg.Load(filepath.Join(agentcfg.Dir(cfg), d.ConfigDir))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("agents: %w", err)
	}

	registry := tool.NewRegistry(log)
	if err := d.RegisterTools(registry, cfg, log); err != nil {
		cleanup()
		return nil, fmt.Errorf("tools: %w", err)
	}

	local := invoker.NewLocal(meta, registry, log, cfg.Batch.Workers)
	inv := invoker.NewCircuitBreaker(d.Name, local, invoker.CircuitBreakerConfig{}, log)

	return &env{
		cfg:      cfg,
		logger:   log,
		meta:     meta,
		registry: registry,
		invoker:  inv,
		cleanup:  cleanup,
	}, nil
}

func newChat(d Domain, e *env, sessions *usecase.SessionManager) *usecase.Chat {
	return usecase.NewChat(d.Name+"_chat", e.meta, e.invoker, sessions, e.logger)
}

func newBatch(d Domain, e *env) *usecase.Batch {
	return usecase.NewBatch(d.Name, e.meta, e.invoker, e.logger)
}

func sendRequest(agent, session, user, content string) usecase.SendRequest {
	return usecase.SendRequest{AgentName: agent, SessionID: session, UserID: user, Content: content}
}

// openSessions opens the history store and the session manager on top of it.
func openSessions(e *env) (*usecase.SessionManager, func(), error) {
	if dir := filepath.Dir(e.cfg.History.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("history dir: %w", err)
		}
	}
	store, err := history.NewSQLiteStore(e.cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("history: %w", err)
	}

	sessions, err := usecase.NewSessionManager(store, e.cfg.History.SessionTTL, e.cfg.History.SweepSchedule, e.logger)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("sessions: %w", err)
	}
	return sessions, func() { store.Close() }, nil
}

func showUsage(d Domain) {
	fmt.Printf(`%s - %s

USAGE:
    %s [COMMAND] [FLAGS]

COMMANDS:
    serve       Run the HTTP chat server (default)
    invoke      Run one prompt against an agent and print the reply
    batch       Run a batch of records through a batch-enabled agent
    agents      List the agents this domain exposes
    schema      Print an agent's declared output schema

FLAGS:
    -h, --help       Show this help message
    --config PATH    Config file path (default: ./config.yaml)

CONFIGURATION:
    Config file: ./config.yaml
    Environment: JARVIS_AGENTS_* variables override config

EXAMPLES:
    %[3]s                                  # serve on the configured port
    %[3]s invoke --agent some_agent "hi"   # one-shot prompt
    %[3]s batch --agent some_agent --input records.txt
    %[3]s agents
`, d.Name, d.Description, d.Name)
}
