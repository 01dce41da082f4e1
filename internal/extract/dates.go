package extract

import (
	"regexp"
	"time"
)

// Textual date shapes seen in scheduling mail, most specific first.
var eventDateExprs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w{3,9}\s+\w{3,9}\s+\d{1,2},?\s+\d{4})`), // Mon Dec 1, 2025
	regexp.MustCompile(`(?i)(\w{3,9}\s+\d{1,2},?\s+\d{4})`),          // Dec 1, 2025
	regexp.MustCompile(`(?i)@\s+(\w{3,9}\s+\d{1,2},?\s+\d{4})`),      // @ Dec 1, 2025
}

var eventDateLayouts = []string{
	"Mon Jan 2, 2006",
	"Mon Jan 2 2006",
	"Monday Jan 2, 2006",
	"Monday January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
}

// EventDate scans message text for an explicit calendar-style date and
// returns it re-formatted as "Jan 2, 2006". Used to annotate interview
// records when the scheduling mail names the slot directly.
func EventDate(subject, snippet string) (string, bool) {
	fullText := subject + " " + snippet

	for _, expr := range eventDateExprs {
		m := expr.FindStringSubmatch(fullText)
		if m == nil {
			continue
		}
		for _, layout := range eventDateLayouts {
			if parsed, err := time.Parse(layout, m[1]); err == nil {
				return parsed.Format("Jan 2, 2006"), true
			}
		}
	}

	return "", false
}
