package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"calcpad/internal/config"
	"calcpad/internal/observability"
	"calcpad/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "calc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := observability.InitFileLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		return err
	}
	defer observability.SyncLogger()

	logger := observability.Logger.With(zap.String("component", "tui"))
	logger.Info("calculator started")

	// Run owns the terminal: it enters the alternate screen and enables
	// mouse reporting, and restores both before returning.
	p := tea.NewProgram(tui.New(logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		logger.Info("calculator stopped", zap.String("display", m.State().Display()))
	}
	return nil
}
