// Package extract derives structured application records from raw
// notification messages using ordered heuristic rules. Extraction is a
// pure function of the message and the configured rule tables.
package extract

import (
	"strings"

	"github.com/chriseyebagha/job-application-tracker/internal/domain"
)

// Extractor classifies one message at a time. Construct once and share;
// it holds no mutable state.
type Extractor struct {
	rules    Rules
	trustAll map[string]bool
}

// NewExtractor builds an extractor from a rule set. Accounts listed in
// trustAllAccounts are known a priori to carry only job mail, so their
// messages bypass relevance scoring entirely.
func NewExtractor(rules Rules, trustAllAccounts []string) *Extractor {
	trusted := make(map[string]bool, len(trustAllAccounts))
	for _, acct := range trustAllAccounts {
		trusted[strings.ToLower(acct)] = true
	}
	return &Extractor{rules: rules, trustAll: trusted}
}

// Extract maps a message to a candidate application record. The second
// return value is false when the message is vetoed or scores as not
// job-related.
func (e *Extractor) Extract(msg domain.Message) (domain.Application, bool) {
	fullText := strings.ToLower(msg.Subject + " " + msg.Snippet)
	fromLower := strings.ToLower(msg.From)

	// Graduate-admissions mail is an absolute veto, ahead of scoring.
	if e.isGraduateRecruiting(fullText, fromLower) {
		return domain.Application{}, false
	}

	trusted := e.trustAll[strings.ToLower(msg.Account)]
	jobRelated := true
	if !trusted {
		score := e.relevanceScore(fullText, fromLower)
		if score < 0 {
			return domain.Application{}, false
		}
		jobRelated = containsAny(fullText, e.rules.JobKeywords)
		if !jobRelated && score == 0 {
			return domain.Application{}, false
		}
	}

	company := e.extractCompany(msg.Subject, msg.From)
	role := extractRole(msg.Subject, msg.Snippet)

	status := domain.StatusApplied
	interviewRequested := ""

	if jobRelated && hasDirectScheduling(fullText) && !containsAny(fullText, e.rules.PassiveSignals) {
		status = domain.StatusInterviewing
	} else if containsAny(fullText, e.rules.RejectionPhrases) {
		status = domain.StatusRejected
	}

	// Scheduling vendors mail on behalf of the employer, so the sender
	// name is useless; recover the company from the text instead.
	if containsAny(fromLower, e.rules.SchedulingVendors) {
		if vendorCo, ok := vendorCompany(msg.Subject, fullText); ok {
			company = vendorCo
			status = domain.StatusInterviewing
			interviewRequested = msg.Date
		}
	}

	// Calendar-invite style subjects are structural evidence of an
	// interview regardless of wording.
	subjectLower := strings.ToLower(msg.Subject)
	if strings.Contains(subjectLower, "invitation") &&
		(strings.Contains(subjectLower, "interview") || strings.Contains(subjectLower, "screen")) {
		status = domain.StatusInterviewing
		interviewRequested = msg.Date
	}

	return domain.Application{
		Company:                company,
		Role:                   role,
		Date:                   msg.Date,
		Account:                localPart(msg.Account),
		Status:                 status,
		InterviewRequestedDate: interviewRequested,
	}, true
}

func (e *Extractor) isGraduateRecruiting(fullText, fromLower string) bool {
	if containsAny(fullText, e.rules.ExclusionPhrases) {
		return true
	}
	if strings.Contains(fullText, "mba") &&
		(strings.Contains(fullText, "application deadline") || strings.Contains(fullText, "apply now")) {
		return true
	}
	return strings.Contains(fromLower, "admissions")
}

func (e *Extractor) relevanceScore(fullText, fromLower string) int {
	score := 0
	if containsAny(fromLower, e.rules.ATSDomains) {
		score += 3
	}
	if containsAny(fromLower, e.rules.JobSenderPrefixes) {
		score += 2
	}
	if containsAny(fromLower, e.rules.NonJobSenderPrefixes) {
		score -= 3
	}
	if containsAny(fullText, e.rules.FinancialKeywords) {
		score -= 3
	}
	return score
}

// extractCompany derives a display name from the sender, preferring an
// explicit "Thank you for applying to X" subject when present.
func (e *Extractor) extractCompany(subject, from string) string {
	company := from
	if idx := strings.Index(from, "<"); idx > 0 {
		name := strings.TrimSpace(from[:idx])
		name = strings.ReplaceAll(name, `"`, "")
		name = strings.Replace(name, "Recruiting", "", 1)
		name = strings.Replace(name, "Careers", "", 1)
		name = strings.Replace(name, "Team", "", 1)
		company = strings.TrimSpace(name)
	}

	if m := thankYouForApplyExpr.FindStringSubmatch(subject); m != nil {
		extracted := strings.TrimSpace(m[1])
		extracted = strings.TrimSuffix(extracted, "!")
		extracted = strings.TrimSuffix(extracted, ".")
		extracted = strings.TrimSuffix(extracted, ".")
		company = extracted
	}

	if override, ok := e.rules.CompanyOverrides[company]; ok {
		company = override
	}

	return company
}

// extractRole walks the subject patterns first, then the smaller
// snippet set, returning UnknownRole when nothing validates.
func extractRole(subject, snippet string) string {
	for _, pattern := range subjectRolePatterns {
		m := pattern.FindStringSubmatch(subject)
		if m == nil || m[1] == "" {
			continue
		}
		cleaned := cleanRole(m[1])
		if validRole(cleaned, subjectRoleKeywords) {
			return titleCase(cleaned)
		}
	}

	if snippet != "" {
		for _, pattern := range snippetRolePatterns {
			m := pattern.FindStringSubmatch(snippet)
			if m == nil || m[1] == "" {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if containsAny(strings.ToLower(candidate), snippetRoleKeywords) {
				return titleCase(candidate)
			}
		}
	}

	return domain.UnknownRole
}

func cleanRole(raw string) string {
	role := strings.TrimSpace(raw)
	for _, c := range roleCleanups {
		role = c.expr.ReplaceAllString(role, c.repl)
	}
	return strings.TrimSpace(role)
}

func validRole(role string, keywords []string) bool {
	if len(role) <= 5 || len(role) >= 100 {
		return false
	}
	return containsAny(strings.ToLower(role), keywords)
}

// hasDirectScheduling detects active interview-scheduling language, as
// opposed to promises to be in touch later.
func hasDirectScheduling(fullText string) bool {
	if strings.Contains(fullText, "schedule") &&
		(strings.Contains(fullText, "time") || strings.Contains(fullText, "call") ||
			strings.Contains(fullText, "chat") || strings.Contains(fullText, "meeting")) {
		return true
	}
	if strings.Contains(fullText, "next step") &&
		(strings.Contains(fullText, "love to") || strings.Contains(fullText, "would like") ||
			strings.Contains(fullText, "let's") || strings.Contains(fullText, "calendar")) {
		return true
	}
	if strings.Contains(fullText, "book a time") ||
		strings.Contains(fullText, "schedule an interview") ||
		strings.Contains(fullText, "schedule a call") ||
		strings.Contains(fullText, "schedule a time") {
		return true
	}
	if strings.Contains(fullText, "interview") &&
		(strings.Contains(fullText, "calendly") || strings.Contains(fullText, "when are you available")) {
		return true
	}
	return false
}

// vendorCompany recovers the employer name from vendor-sent scheduling
// mail. Body patterns are preferred over the subject pattern.
func vendorCompany(subject, fullText string) (string, bool) {
	var capture string
	if m := vendorOpportunityExpr.FindStringSubmatch(fullText); m != nil {
		capture = m[1]
	} else if m := vendorInterviewExpr.FindStringSubmatch(fullText); m != nil {
		capture = m[1]
	} else if m := vendorSubjectExpr.FindStringSubmatch(subject); m != nil {
		capture = m[1]
	} else {
		return "", false
	}

	name := strings.TrimSpace(capture)
	name = vendorCompanyTrailer.ReplaceAllString(name, "")
	name = vendorCompanyOverrun.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)

	if name == "" || len(name) >= 50 {
		return "", false
	}
	return name, true
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func localPart(address string) string {
	if idx := strings.Index(address, "@"); idx >= 0 {
		return address[:idx]
	}
	return address
}

func titleCase(role string) string {
	words := strings.Split(role, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
