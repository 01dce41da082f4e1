// Package storage persists the application catalog. The primary store
// is a self-contained HTML document with the records embedded as a JSON
// array; an optional Postgres archive keeps an audit trail.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/chriseyebagha/job-application-tracker/internal/domain"
	"github.com/chriseyebagha/job-application-tracker/internal/ports"
)

var catalogDataExpr = regexp.MustCompile(`const applications = (\[[\s\S]*?\]);`)

// HTMLStore reads and writes the catalog document.
type HTMLStore struct {
	path         string
	templatePath string
	logger       *slog.Logger
}

var _ ports.CatalogStore = (*HTMLStore)(nil)

// NewHTMLStore binds catalog and template paths. An empty templatePath
// uses the built-in page.
func NewHTMLStore(path, templatePath string, log *slog.Logger) *HTMLStore {
	return &HTMLStore{path: path, templatePath: templatePath, logger: log}
}

// Load parses the persisted document and decodes the embedded records.
// A missing file is an empty catalog; a document without a decodable
// record array reports ErrCorruptCatalog so callers can start fresh.
func (s *HTMLStore) Load(_ context.Context) ([]domain.Application, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCorruptCatalog, err)
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		if m := catalogDataExpr.FindStringSubmatch(script.Text()); m != nil {
			payload = m[1]
			return false
		}
		return true
	})
	if payload == "" {
		return nil, fmt.Errorf("%w: no application data in %s", ports.ErrCorruptCatalog, s.path)
	}

	var apps []domain.Application
	if err := json.Unmarshal([]byte(payload), &apps); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCorruptCatalog, err)
	}

	return apps, nil
}

// Save renders the catalog page with the full record set embedded.
func (s *HTMLStore) Save(_ context.Context, apps []domain.Application, updatedAt time.Time) error {
	tmpl, err := s.template()
	if err != nil {
		return err
	}

	if apps == nil {
		apps = []domain.Application{}
	}
	data, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return fmt.Errorf("encode applications: %w", err)
	}

	var page strings.Builder
	err = tmpl.Execute(&page, map[string]string{
		"ApplicationsJSON": string(data),
		"LastUpdated":      updatedAt.Format("Jan 2, 2006 3:04 PM"),
	})
	if err != nil {
		return fmt.Errorf("render catalog: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(page.String()), 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", s.path, err)
	}

	if s.logger != nil {
		s.logger.Debug("catalog saved", "path", s.path, "records", len(apps))
	}
	return nil
}

func (s *HTMLStore) template() (*template.Template, error) {
	if s.templatePath == "" {
		return template.Must(template.New("catalog").Parse(defaultTemplate)), nil
	}

	raw, err := os.ReadFile(s.templatePath)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", s.templatePath, err)
	}
	tmpl, err := template.New("catalog").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", s.templatePath, err)
	}
	return tmpl, nil
}

// defaultTemplate renders a minimal sortable table. The script block
// deliberately keeps the `const applications = [...]` shape that Load
// scans for.
const defaultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Job Applications</title>
<style>
body { font-family: -apple-system, Helvetica, Arial, sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #ddd; }
th { background: #f5f5f5; }
.status-Applied { color: #555; }
.status-Interviewing { color: #0a7d32; font-weight: 600; }
.status-Rejected { color: #b00020; }
footer { margin-top: 1rem; color: #888; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Job Applications</h1>
<table id="apps">
<thead><tr><th>Company</th><th>Role</th><th>Date</th><th>Account</th><th>Status</th><th>Interview Requested</th></tr></thead>
<tbody></tbody>
</table>
<footer>Last updated: <span id="updated"></span></footer>
<script>
const applications = {{.ApplicationsJSON}};
const lastUpdated = "{{.LastUpdated}}";
const tbody = document.querySelector("#apps tbody");
for (const app of applications) {
  const row = document.createElement("tr");
  for (const value of [app.company, app.role, app.date, app.account, app.status, app.interviewRequestedDate || ""]) {
    const cell = document.createElement("td");
    cell.textContent = value;
    row.appendChild(cell);
  }
  row.querySelector("td:nth-child(5)").className = "status-" + app.status;
  tbody.appendChild(row);
}
document.querySelector("#updated").textContent = lastUpdated;
</script>
</body>
</html>
`
