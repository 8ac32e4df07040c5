package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jarvis-agents/internal/adapter/channel"
)

// runServe starts the HTTP chat server and blocks until SIGINT or SIGTERM.
func runServe(d Domain, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "config file path")
	port := fs.Int("port", 0, "listen port (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := buildEnv(d, *cfgPath)
	if err != nil {
		return err
	}
	defer e.cleanup()

	if *port != 0 {
		e.cfg.Server.Port = *port
	}

	sessions, closeStore, err := openSessions(e)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions.Start()
	defer sessions.Stop()

	chat := newChat(d, e, sessions)
	batch := newBatch(d, e)

	srv := channel.NewServer(chat, batch, sessions, channel.Options{
		Addr:            fmt.Sprintf(":%d", e.cfg.Server.Port),
		RateLimitPerMin: e.cfg.Server.RateLimitPerMin,
		RateLimitBurst:  e.cfg.Server.RateLimitBurst,
	}, e.logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	e.logger.Info("domain application started",
		"app", d.Name,
		"addr", srv.Addr(),
		"agents", len(e.meta.List()),
		"tools", len(e.registry.List()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	e.logger.Info("shutting down", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
