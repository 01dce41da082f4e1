package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{"Your interview is scheduled for Monday December 1, 2025", "Dec 1, 2025"},
		{"Interview on Dec 5, 2025 with the data team", "Dec 5, 2025"},
		{"Confirmed: phone screen December 1, 2025 at 10am", "Dec 1, 2025"},
	}

	for _, tc := range cases {
		got, ok := EventDate(tc.text, "")
		require.True(t, ok, "text %q", tc.text)
		assert.Equal(t, tc.want, got)
	}
}

func TestEventDateScansSnippet(t *testing.T) {
	t.Parallel()

	got, ok := EventDate("Interview confirmation", "We look forward to seeing you on Jan 9, 2026.")
	require.True(t, ok)
	assert.Equal(t, "Jan 9, 2026", got)
}

func TestEventDateAbsent(t *testing.T) {
	t.Parallel()

	_, ok := EventDate("Let's chat soon", "No concrete slot yet.")
	assert.False(t, ok)
}
