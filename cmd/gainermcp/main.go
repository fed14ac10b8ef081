// Command gainermcp serves browser automation tools over MCP stdio.
//
// On start it launches one headless Chromium session that lives for the whole
// process; the open_url, describe_page, and execute_plan tools all operate on
// that session. Logs go to stderr because stdout belongs to the transport.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/quotelab/gainermcp/pkg/browser"
	"github.com/quotelab/gainermcp/pkg/config"
	"github.com/quotelab/gainermcp/pkg/logging"
	"github.com/quotelab/gainermcp/pkg/mcptools"
)

const sessionName = "default"

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "gainermcp: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	manager := browser.NewSessionManager()
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := manager.Shutdown(); err != nil {
			logger.Warn("shutdown failed", zap.Error(err))
		} else {
			logger.Info("playwright stopped")
		}
	}()

	session, err := manager.StartSession(sessionName, cfg.Browser.SessionOptions())
	if err != nil {
		return err
	}
	logger.Info("playwright started",
		zap.Bool("headless", session.Headless),
		zap.Float64("page_timeout_ms", cfg.Browser.PageTimeoutMs))

	// Tear the browser down on SIGINT/SIGTERM; ServeStdio returns when
	// stdin closes, so a signal just forces the same path.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("signal received, shutting down", zap.String("signal", sig.String()))
		manager.Shutdown()
		os.Exit(0)
	}()

	srv := mcptools.NewServer(mcptools.Config{
		Name:         cfg.Server.Name,
		Version:      cfg.Server.Version,
		NavTimeoutMs: cfg.Browser.NavTimeoutMs,
	}, session, logger)

	return srv.ServeStdio()
}
