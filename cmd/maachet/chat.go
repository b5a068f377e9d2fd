package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/goetz-markgraf/maach-et/internal/config"
	"github.com/goetz-markgraf/maach-et/internal/preflight"
	"github.com/goetz-markgraf/maach-et/internal/prompt"
	"github.com/goetz-markgraf/maach-et/internal/provider"
	"github.com/goetz-markgraf/maach-et/internal/runner"
	"github.com/goetz-markgraf/maach-et/internal/telemetry"
	"github.com/goetz-markgraf/maach-et/internal/ui"
	"github.com/goetz-markgraf/maach-et/memory"
	"github.com/goetz-markgraf/maach-et/tools"
)

func runChat(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	applyEnvironment(cfg)

	// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		select {
		case <-sigch:
			fmt.Println("\nExiting...")
			cancel()
		case <-ctx.Done():
		}
	}()

	term, err := ui.New(os.Stdout, os.Stderr, ui.Options{Render: cfg.UI.Render, WordWrap: cfg.UI.WordWrap})
	if err != nil {
		logger.Warn("falling back to plain output", zap.Error(err))
	}

	p, err := provider.New(ctx, cfg.ProviderSettings())
	if err != nil {
		return err
	}
	name, modelName, _ := provider.ParseModel(cfg.Model)
	term.Info("Using LLM Provider: %s", name)
	term.Info("Using Model: %s", modelName)

	lines := runner.ReadLines(ctx, os.Stdin, logger)

	if cfg.Preflight {
		ok, err := preflight.Confirm(ctx, preflight.New(".", logger), lines, os.Stdout)
		if err != nil {
			logger.Warn("git check failed", zap.Error(err))
		} else if !ok {
			return nil
		}
	}

	store, err := openStore(cfg.History)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	history, err := startHistory(store, resume)
	if err != nil {
		return err
	}
	if resume && store != nil {
		term.Info("Resumed %d turns", history.Len())
	}

	defs := tools.Registry()
	system := prompt.Build(defs)
	r := runner.New(p, defs)
	r.System = &system
	r.Log = history
	r.Store = store
	r.View = term
	r.Logger = logger
	r.ErrorPolicy = cfg.ErrorPolicy()
	r.MaxToolFeeds = cfg.Tools.MaxConsecutive

	state, err := r.Run(ctx, lines)
	if state == runner.Exit {
		term.Info("Goodbye!")
	}
	term.Info("Conversation history length: %d", history.Len())
	if err != nil {
		return errSessionFailed
	}
	return nil
}

// applyEnvironment hands settings to packages that read the environment.
func applyEnvironment(c *config.Config) {
	setenv := func(k, v string) {
		if v == "" {
			return
		}
		if err := os.Setenv(k, v); err != nil {
			logger.Warn("setenv failed", zap.String("key", k), zap.Error(err))
		}
	}
	setenv("MAACHET_READ_ROOT", c.Tools.ReadRoot)
	setenv("MAACHET_WRITE_ROOT", c.Tools.WriteRoot)
	setenv("MAACHET_ARTIFACTS_DIR", c.Telemetry.Dir)
	telemetry.SetLogger(logger)
	if c.Telemetry.Enabled {
		telemetry.Enable(true)
	}
}

func openStore(h config.HistoryConfig) (memory.Store, error) {
	switch h.Backend {
	case "json":
		return memory.NewJSONStore(h.Path), nil
	case "sqlite":
		return memory.OpenSQLiteStore(h.Path)
	}
	return nil, nil
}

// startHistory returns the stored conversation when resuming; otherwise it
// clears the store so the new session is persisted from its first turn.
func startHistory(store memory.Store, resume bool) (*memory.Log, error) {
	history := memory.NewLog()
	if store == nil {
		return history, nil
	}
	if !resume {
		if err := store.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset history: %w", err)
		}
		return history, nil
	}
	turns, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	history.Append(turns...)
	return history, nil
}
