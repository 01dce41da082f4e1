package domain

// Message is a single already-fetched notification email. Dates arrive
// pre-formatted by the source ("Jan 2, 2006"); an empty Date means the
// header could not be parsed.
type Message struct {
	Subject string
	Snippet string
	From    string
	Date    string
	Account string
}

// Status tracks how far an application has progressed.
type Status string

const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusRejected     Status = "Rejected"
)

// Priority orders statuses for merge decisions: a merge only ever moves
// a record to a higher-priority status.
func (s Status) Priority() int {
	switch s {
	case StatusRejected:
		return 3
	case StatusInterviewing:
		return 2
	case StatusApplied:
		return 1
	default:
		return 0
	}
}

// UnknownRole is the sentinel used when no role could be extracted.
const UnknownRole = "Unknown Role"

// Application is one extracted or cataloged job application. The same
// shape serves both as the transient extraction result and as the
// persisted catalog record; a Company containing "@" is a raw sender
// address standing in for a name not yet learned.
type Application struct {
	Company                string `json:"company"`
	Role                   string `json:"role"`
	Date                   string `json:"date"`
	Account                string `json:"account"`
	Status                 Status `json:"status"`
	InterviewRequestedDate string `json:"interviewRequestedDate,omitempty"`
}

// MergeStats summarizes one merge pass over the catalog.
type MergeStats struct {
	Added   int
	Updated int
}

// RunSummary is the outcome of one full pipeline run, handed to
// notifiers for out-of-band reporting.
type RunSummary struct {
	MessagesScanned int
	Added           int
	Updated         int
	Applied         int
	Interviewing    int
	Rejected        int
}
