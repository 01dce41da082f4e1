// Package app wires configuration, adapters, and use cases into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/chriseyebagha/job-application-tracker/internal/catalog"
	"github.com/chriseyebagha/job-application-tracker/internal/config"
	"github.com/chriseyebagha/job-application-tracker/internal/extract"
	"github.com/chriseyebagha/job-application-tracker/internal/infrastructure/gcal"
	"github.com/chriseyebagha/job-application-tracker/internal/infrastructure/gmail"
	"github.com/chriseyebagha/job-application-tracker/internal/infrastructure/googleauth"
	"github.com/chriseyebagha/job-application-tracker/internal/infrastructure/scheduler"
	"github.com/chriseyebagha/job-application-tracker/internal/infrastructure/storage"
	"github.com/chriseyebagha/job-application-tracker/internal/infrastructure/telegram"
	"github.com/chriseyebagha/job-application-tracker/internal/logging"
	"github.com/chriseyebagha/job-application-tracker/internal/ports"
	"github.com/chriseyebagha/job-application-tracker/internal/source"
	"github.com/chriseyebagha/job-application-tracker/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	archive  *storage.PostgresArchive
	db       *sql.DB
}

// Options tune a single invocation.
type Options struct {
	// Backfill widens the fetch window to cfg.Fetch.BackfillDays for
	// catching up after a gap or seeding a fresh catalog.
	Backfill bool
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	creds := googleauth.Credentials{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		Dir:          cfg.Google.CredentialsDir,
	}

	registry := source.NewRegistry()
	registry.Register(gmail.NewProvider(creds, baseLogger.With("component", "gmail")))

	msgSource := source.NewAccountSource(registry, cfg.Accounts, cfg.Fetch.MaxResults,
		baseLogger.With("component", "source"))

	rules := extract.DefaultRules().WithCompanyOverrides(cfg.Overrides)
	extractor := extract.NewExtractor(rules, cfg.TrustAllAccounts())
	merger := catalog.NewMerger(catalog.IdentityMode(cfg.Catalog.IdentityMode))

	store := storage.NewHTMLStore(cfg.Catalog.Path, cfg.Catalog.TemplatePath,
		baseLogger.With("component", "store"))

	var (
		db      *sql.DB
		archive *storage.PostgresArchive
	)
	if cfg.Database.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open archive database: %w", err)
		}
		archive = storage.NewPostgresArchive(db)
	}

	var calendar ports.CalendarChecker
	if cfg.Calendar.Enabled {
		calendar = gcal.NewChecker(creds, cfg.Calendar.TokenFile, cfg.Calendar.LookaheadDays)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	windowDays := cfg.Fetch.WindowDays
	if opts.Backfill {
		windowDays = cfg.Fetch.BackfillDays
	}

	var archivePort ports.CatalogArchive
	if archive != nil {
		archivePort = archive
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:    msgSource,
		Extractor: extractor,
		Merger:    merger,
		Store:     store,
		Archive:   archivePort,
		Calendar:  calendar,
		Notifier:  notifier,
		Logger:    baseLogger.With("component", "pipeline"),
		Window:    time.Duration(windowDays) * 24 * time.Hour,
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: pipeline,
		archive:  archive,
		db:       db,
	}, nil
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	if a.archive != nil {
		if err := a.archive.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	now := time.Now().In(a.cfg.Scheduler.Location())
	return a.pipeline.Run(ctx, now)
}

// RunForever drives the pipeline on the configured interval until the
// context is cancelled.
func (a *Application) RunForever(ctx context.Context) error {
	if a.archive != nil {
		if err := a.archive.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	interval := time.Duration(a.cfg.Scheduler.IntervalHours) * time.Hour
	driver := scheduler.NewIntervalScheduler(interval)
	runner := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return runner.Stop(context.Background())
}

// Close releases owned resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
