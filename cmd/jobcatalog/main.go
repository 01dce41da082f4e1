package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/chriseyebagha/job-application-tracker/internal/app"
	"github.com/chriseyebagha/job-application-tracker/internal/config"
	"github.com/chriseyebagha/job-application-tracker/internal/logging"
)

func main() {
	backfill := flag.Bool("backfill", false, "widen the fetch window to the configured backfill span")
	daemon := flag.Bool("daemon", false, "keep running on the configured interval instead of exiting after one pass")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger, app.Options{Backfill: *backfill})
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := application.Run
	if *daemon {
		run = application.RunForever
	}

	if err := run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
