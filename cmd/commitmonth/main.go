package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gnomegl/commitmonth/internal/auth"
	appcli "github.com/gnomegl/commitmonth/internal/cli"
	"github.com/gnomegl/commitmonth/internal/config"
	"github.com/gnomegl/commitmonth/internal/logger"
	"github.com/gnomegl/commitmonth/internal/service"
	"github.com/gnomegl/commitmonth/internal/storage"
	"github.com/gnomegl/commitmonth/internal/utils"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func runApp(c *cli.Context) error {
	// the reporting month and recency cutoff both come from this instant
	now := time.Now()

	cfg, err := config.ParseConfig(c)
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := auth.SetupGitHubClient(ctx, cfg)
	if err != nil {
		return err
	}

	orch := service.NewOrchestrator(client, cfg, now, os.Stdout)

	if cfg.DatabaseURL != "" {
		store, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		orch.WithStore(store)
	}

	color.Blue("Scanning %s for commits by %s", cfg.Org, cfg.Username)
	result, err := orch.Run(ctx)
	if err != nil {
		logger.Error("Scan aborted", zap.String("org", cfg.Org), zap.Error(err))
		return err
	}

	color.Green("Wrote %d commits to %s", result.CSVRows, result.CSVPath)
	return nil
}

func main() {
	app := appcli.NewApp(utils.GetVersion(), runApp)

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
