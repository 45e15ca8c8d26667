package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/checkers-client/internal/config"
	"github.com/DoyleJ11/checkers-client/internal/conn"
	"github.com/DoyleJ11/checkers-client/internal/logging"
	"github.com/DoyleJ11/checkers-client/internal/session"
	"github.com/DoyleJ11/checkers-client/internal/tui"
)

// The TUI owns the terminal, so its logs go to a file unless LOG_FILE says
// otherwise.
const tuiLogFile = "checkers-client.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "checkers:", err)
		os.Exit(1)
	}
}

func run() error {
	headless := flag.Bool("headless", false, "log state changes instead of drawing the terminal UI")
	envFile := flag.String("env", ".env", "dotenv file to load if present")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		return fmt.Errorf("load %s: %w", *envFile, err)
	}
	cfg := config.Load()
	if *headless {
		cfg.Headless = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.Headless && cfg.LogFile == "" {
		cfg.LogFile = tuiLogFile
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	commit, dirty := buildVersion()
	logger.Info("starting",
		zap.String("commit", commit),
		zap.Bool("dirty", dirty),
		zap.String("server", cfg.ServerURL),
		zap.Bool("headless", cfg.Headless),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := conn.New(cfg.ConnOptions(), logger)
	// Handlers are registered here, before the socket opens.
	sess := session.New(ctx, client, logger)

	if err := client.Connect(ctx); err != nil {
		sess.Stop()
		logger.Error("connect failed", zap.Error(err))
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Quitting the front-end ends the process.
		defer stop()
		if cfg.Headless {
			return runHeadless(gctx, sess, logger)
		}
		return tui.Run(gctx, sess)
	})
	g.Go(func() error {
		<-gctx.Done()
		sess.Stop()
		<-sess.Done()
		return nil
	})

	err = multierr.Append(g.Wait(), client.Close())
	logger.Info("stopped", zap.Error(err))
	return err
}
