package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriseyebagha/job-application-tracker/internal/domain"
)

func TestMergeAppendsNewRecords(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompany)

	existing := []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusApplied},
	}
	candidates := []domain.Application{
		{Company: "Figma", Role: "Data Analyst", Status: domain.StatusApplied},
	}

	merged, stats := m.Merge(existing, candidates)
	require.Len(t, merged, 2)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, "Figma", merged[1].Company)
}

func TestMergeStatusOnlyMovesUp(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompany)

	existing := []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusInterviewing},
	}

	// A later Applied-status message must not demote the record.
	merged, stats := m.Merge(existing, []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusApplied},
	})
	assert.Equal(t, domain.StatusInterviewing, merged[0].Status)
	assert.Equal(t, 0, stats.Updated)

	// Rejected outranks Interviewing.
	merged, stats = m.Merge(merged, []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusRejected},
	})
	assert.Equal(t, domain.StatusRejected, merged[0].Status)
	assert.Equal(t, 1, stats.Updated)
}

func TestMergeIsIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompany)

	existing := []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Date: "Jan 2, 2026", Status: domain.StatusInterviewing, InterviewRequestedDate: "Jan 5, 2026"},
	}

	merged, stats := m.Merge(existing, existing)
	assert.Equal(t, existing, merged)
	assert.Equal(t, domain.MergeStats{}, stats)
}

func TestMergeFillsInterviewDateOnce(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompany)

	existing := []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusInterviewing},
	}

	merged, _ := m.Merge(existing, []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusInterviewing, InterviewRequestedDate: "Jan 5, 2026"},
	})
	assert.Equal(t, "Jan 5, 2026", merged[0].InterviewRequestedDate)

	// A different date later never overwrites the first.
	merged, _ = m.Merge(merged, []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusInterviewing, InterviewRequestedDate: "Jan 9, 2026"},
	})
	assert.Equal(t, "Jan 5, 2026", merged[0].InterviewRequestedDate)
}

func TestMergeUpgradesUnknownRole(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompany)

	existing := []domain.Application{
		{Company: "Stripe", Role: domain.UnknownRole, Status: domain.StatusApplied},
	}

	merged, stats := m.Merge(existing, []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusApplied},
	})
	assert.Equal(t, "Data Engineer", merged[0].Role)
	assert.Equal(t, 1, stats.Updated)

	// A known role is never replaced by a different one.
	merged, stats = m.Merge(merged, []domain.Application{
		{Company: "Stripe", Role: "Analytics Engineer", Status: domain.StatusApplied},
	})
	assert.Equal(t, "Data Engineer", merged[0].Role)
	assert.Equal(t, 0, stats.Updated)
}

func TestMergeUpgradesAddressCompany(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompany)

	existing := []domain.Application{
		{Company: "no-reply@robinhood.com", Role: domain.UnknownRole, Status: domain.StatusApplied},
	}

	merged, _ := m.Merge(existing, []domain.Application{
		{Company: "Robinhood", Role: domain.UnknownRole, Status: domain.StatusInterviewing},
	})
	require.Len(t, merged, 1)
	assert.Equal(t, "Robinhood", merged[0].Company)
	assert.Equal(t, domain.StatusInterviewing, merged[0].Status)
}

func TestMergeCollapsesInBatchDuplicates(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompany)

	merged, stats := m.Merge(nil, []domain.Application{
		{Company: "Figma", Role: domain.UnknownRole, Status: domain.StatusApplied},
		{Company: "Figma", Role: "Data Analyst", Status: domain.StatusInterviewing},
	})
	require.Len(t, merged, 1)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, "Data Analyst", merged[0].Role)
	assert.Equal(t, domain.StatusInterviewing, merged[0].Status)
}

func TestMergeCompanyRoleMode(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompanyRole)

	existing := []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusApplied},
	}

	merged, stats := m.Merge(existing, []domain.Application{
		{Company: "Stripe", Role: "Analytics Engineer", Status: domain.StatusApplied},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, 1, stats.Added)
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	t.Parallel()

	m := NewMerger(IdentityCompany)

	existing := []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusApplied},
	}

	_, _ = m.Merge(existing, []domain.Application{
		{Company: "Stripe", Role: "Data Engineer", Status: domain.StatusRejected},
	})
	assert.Equal(t, domain.StatusApplied, existing[0].Status)
}

func TestSameCompany(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want bool
	}{
		{"Stripe", "stripe", true},
		{"Launch Darkly!", "launchdarkly", true},
		{"no-reply@robinhood.com", "Robinhood", true},
		{"Robinhood", "no-reply@robinhood.com", true},
		{"no-reply@robinhood.com", "Stripe", false},
		{"Stripe", "Figma", false},
		{"no-reply@robinhood.com", "!!!", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SameCompany(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestNormalizeCompany(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "launchdarkly", NormalizeCompany("Launch Darkly!"))
	assert.Equal(t, "", NormalizeCompany("!!!"))
}
