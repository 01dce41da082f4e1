package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/chriseyebagha/job-application-tracker/internal/catalog"
	"github.com/chriseyebagha/job-application-tracker/internal/domain"
	"github.com/chriseyebagha/job-application-tracker/internal/ports"
)

// PostgresArchive mirrors each run's catalog into a relational table so
// history survives catalog rebuilds. Records are keyed by normalized
// company name plus role.
type PostgresArchive struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.CatalogArchive = (*PostgresArchive)(nil)

func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS application_records (
    company_key              TEXT NOT NULL,
    role                     TEXT NOT NULL,
    company                  TEXT NOT NULL,
    applied_date             TEXT NOT NULL,
    account                  TEXT NOT NULL,
    status                   TEXT NOT NULL,
    interview_requested_date TEXT NOT NULL DEFAULT '',
    updated_at               TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (company_key, role)
)`

// EnsureSchema creates the archive table when missing.
func (a *PostgresArchive) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, archiveSchema); err != nil {
		return fmt.Errorf("ensure archive schema: %w", err)
	}
	return nil
}

// SaveRun upserts every record from the run. Later rows win on
// conflicting keys, matching the catalog's own merge direction.
func (a *PostgresArchive) SaveRun(ctx context.Context, apps []domain.Application, ranAt time.Time) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	for _, app := range apps {
		query, args, err := a.upsertSQL(app, ranAt)
		if err != nil {
			return fmt.Errorf("build archive upsert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("archive %s: %w", app.Company, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}
	return nil
}

func (a *PostgresArchive) upsertSQL(app domain.Application, ranAt time.Time) (string, []interface{}, error) {
	return a.sb.
		Insert("application_records").
		Columns("company_key", "role", "company", "applied_date",
			"account", "status", "interview_requested_date", "updated_at").
		Values(catalog.NormalizeCompany(app.Company), app.Role, app.Company,
			app.Date, app.Account, string(app.Status), app.InterviewRequestedDate, ranAt).
		Suffix(`ON CONFLICT (company_key, role) DO UPDATE SET
			company = EXCLUDED.company,
			applied_date = EXCLUDED.applied_date,
			account = EXCLUDED.account,
			status = EXCLUDED.status,
			interview_requested_date = EXCLUDED.interview_requested_date,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
}
