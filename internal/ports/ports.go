package ports

import (
	"context"
	"errors"
	"time"

	"github.com/chriseyebagha/job-application-tracker/internal/domain"
)

// ErrCorruptCatalog signals that the persisted catalog could not be
// decoded. Callers treat it as "no existing catalog" rather than
// failing the run.
var ErrCorruptCatalog = errors.New("catalog data is corrupt")

// MessageSource pulls already-fetched notification messages across all
// configured accounts. Implementations must return messages in a stable
// order; the merge downstream is an ordered fold.
type MessageSource interface {
	FetchSince(ctx context.Context, since time.Time) ([]domain.Message, error)
}

// CatalogStore reads and writes the persisted application catalog.
type CatalogStore interface {
	Load(ctx context.Context) ([]domain.Application, error)
	Save(ctx context.Context, apps []domain.Application, updatedAt time.Time) error
}

// CatalogArchive keeps an audit trail of merged records outside the
// primary store.
type CatalogArchive interface {
	SaveRun(ctx context.Context, apps []domain.Application, ranAt time.Time) error
}

// CalendarChecker looks up upcoming interview events for a company.
type CalendarChecker interface {
	UpcomingInterview(ctx context.Context, company string) (date string, found bool, err error)
}

// Notifier surfaces run summaries to an out-of-band channel.
type Notifier interface {
	PublishRunSummary(ctx context.Context, sum domain.RunSummary) error
}

// Scheduler controls when catalog update runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
