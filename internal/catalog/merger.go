// Package catalog reconciles freshly extracted application records
// against the persisted catalog without regressing known facts.
package catalog

import (
	"regexp"
	"strings"

	"github.com/chriseyebagha/job-application-tracker/internal/domain"
)

// IdentityMode selects what makes two records "the same application".
type IdentityMode string

const (
	// IdentityCompany treats company equivalence alone as identity.
	IdentityCompany IdentityMode = "company"
	// IdentityCompanyRole additionally requires the same role. Useful
	// when tracking several openings at one employer.
	IdentityCompanyRole IdentityMode = "company-role"
)

var nonAlnumExpr = regexp.MustCompile(`[^a-z0-9]`)

// Merger folds candidate records into an existing catalog.
type Merger struct {
	mode IdentityMode
}

// NewMerger builds a merger; an unrecognized mode falls back to
// company-only identity.
func NewMerger(mode IdentityMode) *Merger {
	if mode != IdentityCompanyRole {
		mode = IdentityCompany
	}
	return &Merger{mode: mode}
}

// Merge processes candidates in input order against a copy of the
// existing catalog. For each candidate it either reconciles the first
// equivalent record in place or appends a new one, so duplicates within
// a single batch collapse onto the first occurrence. The input slices
// are not modified.
func (m *Merger) Merge(existing, candidates []domain.Application) ([]domain.Application, domain.MergeStats) {
	merged := make([]domain.Application, len(existing))
	copy(merged, existing)

	var stats domain.MergeStats
	for _, cand := range candidates {
		idx := m.findMatch(merged, cand)
		if idx < 0 {
			merged = append(merged, cand)
			stats.Added++
			continue
		}
		if m.reconcile(&merged[idx], cand) {
			stats.Updated++
		}
	}

	return merged, stats
}

func (m *Merger) findMatch(records []domain.Application, cand domain.Application) int {
	for i, rec := range records {
		if !SameCompany(rec.Company, cand.Company) {
			continue
		}
		if m.mode == IdentityCompanyRole && !strings.EqualFold(rec.Role, cand.Role) {
			continue
		}
		return i
	}
	return -1
}

// reconcile applies the candidate to an existing record. Status only
// moves up, a known role is never overwritten, and an interview date is
// only filled when absent. Reports whether a status or role changed;
// the address-to-name company upgrade is not counted.
func (m *Merger) reconcile(rec *domain.Application, cand domain.Application) bool {
	changed := false

	if cand.Status.Priority() > rec.Status.Priority() {
		rec.Status = cand.Status
		changed = true
	}

	if cand.InterviewRequestedDate != "" && rec.InterviewRequestedDate == "" {
		rec.InterviewRequestedDate = cand.InterviewRequestedDate
	}

	if rec.Role == domain.UnknownRole && cand.Role != domain.UnknownRole {
		rec.Role = cand.Role
		changed = true
	}

	if strings.Contains(rec.Company, "@") && !strings.Contains(cand.Company, "@") {
		rec.Company = cand.Company
	}

	return changed
}

// SameCompany reports whether two company strings identify the same
// employer: equal ignoring case, equal after stripping non-alphanumeric
// characters, or one is a sender address whose domain contains the
// other's normalized name.
func SameCompany(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return true
	}
	if NormalizeCompany(a) == NormalizeCompany(b) {
		return true
	}

	if strings.Contains(la, "@") && !strings.Contains(lb, "@") {
		return addressMatchesName(la, b)
	}
	if strings.Contains(lb, "@") && !strings.Contains(la, "@") {
		return addressMatchesName(lb, a)
	}
	return false
}

// NormalizeCompany lowercases and strips everything non-alphanumeric,
// so "Launch Darkly!" and "launchdarkly" compare equal.
func NormalizeCompany(name string) string {
	return nonAlnumExpr.ReplaceAllString(strings.ToLower(name), "")
}

func addressMatchesName(address, name string) bool {
	parts := strings.SplitN(address, "@", 2)
	if len(parts) != 2 || parts[1] == "" {
		return false
	}
	norm := NormalizeCompany(name)
	return norm != "" && strings.Contains(parts[1], norm)
}
