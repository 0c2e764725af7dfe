package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/config"
)

// LogFlags override the log block of the config file.
type LogFlags struct {
	LogFile  string `help:"Write logs to this file (overrides config)"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides config)"`
}

func (f LogFlags) apply(cfg *config.Config) {
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
}

// setupLogger opens the log file. The terminal belongs to the table talk,
// so nothing is logged to it.
func setupLogger(cfg *config.Config, prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
		Level:           level,
	})
	return logger, file, nil
}

// setupSignalHandler returns a context cancelled on interrupt.
func setupSignalHandler(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func loadConfig(path string, flags LogFlags) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
