package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"countdown_tui/internal"
	"countdown_tui/internal/config"
	"countdown_tui/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (default: user config dir)")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("program failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	m, err := internal.NewModel(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Error("failed to close journal", slog.String("error", err.Error()))
		}
	}()

	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := timer.New(cfg.TickInterval)
	ticks.Start(ctx, func() { p.Send(internal.MsgTick{}) })
	defer ticks.Stop()

	logger.Info("started", slog.Duration("tick", ticks.Interval()))
	_, err = p.Run()
	return err
}

// newLogger writes to cfg.LogFile, since the terminal belongs to the UI.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})
	return slog.New(handler), closeFn, nil
}
