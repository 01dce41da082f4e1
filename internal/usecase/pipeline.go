// Package usecase orchestrates the fetch, extract, merge, and persist
// workflow over the driven adapters.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chriseyebagha/job-application-tracker/internal/catalog"
	"github.com/chriseyebagha/job-application-tracker/internal/domain"
	"github.com/chriseyebagha/job-application-tracker/internal/extract"
	"github.com/chriseyebagha/job-application-tracker/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source    ports.MessageSource
	Extractor *extract.Extractor
	Merger    *catalog.Merger
	Store     ports.CatalogStore
	Archive   ports.CatalogArchive
	Calendar  ports.CalendarChecker
	Notifier  ports.Notifier
	Logger    *slog.Logger
	Window    time.Duration
}

// Pipeline implements the catalog-update workflow.
type Pipeline struct {
	source    ports.MessageSource
	extractor *extract.Extractor
	merger    *catalog.Merger
	store     ports.CatalogStore
	archive   ports.CatalogArchive
	calendar  ports.CalendarChecker
	notifier  ports.Notifier
	logger    *slog.Logger
	window    time.Duration
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:    deps.Source,
		extractor: deps.Extractor,
		merger:    deps.Merger,
		store:     deps.Store,
		archive:   deps.Archive,
		calendar:  deps.Calendar,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
		window:    deps.Window,
	}
}

// Run fetches messages since now minus the window, extracts application
// records, merges them into the stored catalog, and persists the result.
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	if p.source == nil || p.extractor == nil || p.merger == nil || p.store == nil {
		return fmt.Errorf("pipeline missing required dependencies")
	}

	since := now.Add(-p.window)
	messages, err := p.source.FetchSince(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch messages: %w", err)
	}
	p.debug("messages fetched", "count", len(messages), "since", since.Format("2006-01-02"))

	existing, err := p.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrCorruptCatalog) {
			return fmt.Errorf("load catalog: %w", err)
		}
		p.warn("catalog unreadable, starting fresh", "error", err)
		existing = nil
	}

	candidates := p.extractAll(messages)
	p.debug("candidates extracted", "count", len(candidates))

	merged, stats := p.merger.Merge(existing, candidates)

	p.fillInterviewDates(ctx, merged)

	if err := p.store.Save(ctx, merged, now); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	if p.archive != nil {
		if err := p.archive.SaveRun(ctx, merged, now); err != nil {
			p.warn("archive run failed", "error", err)
		}
	}

	if p.notifier != nil && (stats.Added > 0 || stats.Updated > 0) {
		if err := p.notifier.PublishRunSummary(ctx, summarizeRun(merged, stats, len(messages))); err != nil {
			p.warn("publish run summary failed", "error", err)
		}
	}

	p.info("run complete", "total", len(merged), "added", stats.Added, "updated", stats.Updated)
	return nil
}

// extractAll runs the classifier over every message, enriching
// interviewing candidates with a concrete event date from the message
// text when the sender did not state one.
func (p *Pipeline) extractAll(messages []domain.Message) []domain.Application {
	var candidates []domain.Application
	for _, msg := range messages {
		app, ok := p.extractor.Extract(msg)
		if !ok {
			continue
		}
		if app.Status == domain.StatusInterviewing && app.InterviewRequestedDate == "" {
			if date, found := extract.EventDate(msg.Subject, msg.Snippet); found {
				app.InterviewRequestedDate = date
			}
		}
		candidates = append(candidates, app)
	}
	return candidates
}

// fillInterviewDates consults the calendar for interviewing records
// still missing a date. Lookup failures only log; the catalog write
// must not depend on calendar availability.
func (p *Pipeline) fillInterviewDates(ctx context.Context, apps []domain.Application) {
	if p.calendar == nil {
		return
	}
	for i := range apps {
		if apps[i].Status != domain.StatusInterviewing || apps[i].InterviewRequestedDate != "" {
			continue
		}
		date, found, err := p.calendar.UpcomingInterview(ctx, apps[i].Company)
		if err != nil {
			p.warn("calendar lookup failed", "company", apps[i].Company, "error", err)
			continue
		}
		if found {
			apps[i].InterviewRequestedDate = date
		}
	}
}

func summarizeRun(apps []domain.Application, stats domain.MergeStats, fetched int) domain.RunSummary {
	counts := map[domain.Status]int{}
	for _, app := range apps {
		counts[app.Status]++
	}

	return domain.RunSummary{
		MessagesScanned: fetched,
		Added:           stats.Added,
		Updated:         stats.Updated,
		Applied:         counts[domain.StatusApplied],
		Interviewing:    counts[domain.StatusInterviewing],
		Rejected:        counts[domain.StatusRejected],
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
