package extract

import "regexp"

// Rules carries every table the extractor consults. Instances are
// treated as immutable after construction so extractors stay safe to
// share across tests and goroutines.
type Rules struct {
	// Outbound mail domains of applicant-tracking systems; a match is a
	// strong job signal.
	ATSDomains []string

	// Sender local-part prefixes that indicate hiring mail.
	JobSenderPrefixes []string

	// Sender patterns for financial/account notifications that keep
	// slipping into job searches.
	NonJobSenderPrefixes []string

	// Body/subject phrases of financial transaction mail.
	FinancialKeywords []string

	// Presence of any of these makes a message look job-related.
	JobKeywords []string

	// Rejection wording, checked after interview signals.
	RejectionPhrases []string

	// Phrases that defer scheduling to some later point; they suppress
	// the active-scheduling classification.
	PassiveSignals []string

	// Interview-scheduling platforms that mail on behalf of the hiring
	// company, matched against the sender address.
	SchedulingVendors []string

	// Exact-match display-name corrections for known senders.
	CompanyOverrides map[string]string

	// Graduate/MBA recruitment markers; any hit vetoes the message
	// before scoring.
	ExclusionPhrases []string
}

// DefaultRules returns the canonical rule set.
func DefaultRules() Rules {
	return Rules{
		ATSDomains: []string{
			"greenhouse-mail.io",
			"greenhouse.io",
			"gh-mail",
			"lever.co",
			"hire.lever.co",
			"myworkdayjobs.com",
			"wd5.myworkdayjobs.com",
			"icims.com",
			"taleo.net",
			"jobvite.com",
			"smartrecruiters.com",
			"bamboohr.com",
			"applytojob.com",
		},
		JobSenderPrefixes: []string{
			"careers@",
			"recruiting@",
			"jobs@",
			"talent@",
			"hr@",
			"hiring@",
			"recruitment@",
		},
		NonJobSenderPrefixes: []string{
			"payments@",
			"billing@",
			"invoice@",
			"noreply@google.com",
			"no-reply@google.com",
			"statement@",
			"alerts@",
			"notifications@discover.com",
			"notifications@capitalone.com",
			"account-security-noreply@accountprotection.microsoft.com",
		},
		FinancialKeywords: []string{
			"credit card application",
			"credit limit",
			"loan application",
			"statement is ready",
			"payment received",
			"payment confirmation",
			"transaction alert",
			"balance transfer",
			"microsoft account",
			"welcome to microsoft",
		},
		JobKeywords: []string{
			"opportunity",
			"job",
			"interview",
			"application",
			"applied",
			"position",
			"role",
			"career",
			"hiring",
			"candidate",
		},
		RejectionPhrases: []string{
			"unfortunately",
			"not moving forward",
			"we have decided",
			"moving forward with other candidates",
			"filled the role",
			"won't be proceeding",
			"will not be proceeding",
			"not be proceeding",
			"not selected",
			"other candidates",
			"decided to move forward with",
			"pursue other candidates",
		},
		PassiveSignals: []string{
			"will reach out",
			"'ll reach out",
			"will contact",
			"'ll contact",
			"will be in touch",
			"'ll be in touch",
			"reviewing your application",
			"we are currently reviewing",
			"if your profile",
		},
		SchedulingVendors: []string{
			"brighthire",
		},
		CompanyOverrides: map[string]string{
			"Microsoft Account": "Microsoft",
		},
		ExclusionPhrases: []string{
			"mba program",
			"graduate program",
			"apply to our mba",
			"admissions",
		},
	}
}

// WithCompanyOverrides returns a copy of the rules with extra sender
// corrections layered over the defaults.
func (r Rules) WithCompanyOverrides(extra map[string]string) Rules {
	if len(extra) == 0 {
		return r
	}
	merged := make(map[string]string, len(r.CompanyOverrides)+len(extra))
	for k, v := range r.CompanyOverrides {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	r.CompanyOverrides = merged
	return r
}

// Subject patterns for role extraction, tried in order; the first match
// surviving cleanup and validation wins.
var subjectRolePatterns = []*regexp.Regexp{
	// "Application for [role]" / "Your application for [role]"
	regexp.MustCompile(`(?i)(?:application|applied)\s+(?:for|to)\s+(?:the\s+)?(?:position\s+of\s+)?(.+?)(?:\s+(?:at|with|position|role|job)|$)`),
	// "Position: [role]" / "Role: [role]"
	regexp.MustCompile(`(?i)(?:position|role|job)\s*:\s*(.+?)(?:\s+(?:at|with|-)|$)`),
	// "[Company] - [Role] application"
	regexp.MustCompile(`(?i)-\s+(.+?)\s+(?:application|position|role)`),
	// "… as [Role] at …"
	regexp.MustCompile(`(?i)as\s+(?:a\s+)?(.+?)(?:\s+(?:at|with)|$)`),
	// Seniority-qualified titles
	regexp.MustCompile(`(?i)((?:senior|sr|lead|staff|principal|junior|jr|associate|entry[\s-]level)\s+(?:analytics?|data|business\s+intelligence|bi)\s+(?:engineer|analyst|scientist|developer))`),
	// Bare titles with optional trailing detail
	regexp.MustCompile(`(?i)((?:analytics?|data|business\s+intelligence|bi)\s+(?:engineer|analyst|scientist|developer)(?:\s+[-,]\s+.+)?)`),
	// ATS subject format: "Analytics Engineer at Company"
	regexp.MustCompile(`(?i)^(.+?)\s+at\s+\w+`),
}

// Fallback patterns run against the snippet when the subject yields
// nothing usable.
var snippetRolePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)position\s+of\s+(.+?)\s+(?:at|with)`),
	regexp.MustCompile(`(?i)role\s+of\s+(.+?)\s+(?:at|with)`),
	regexp.MustCompile(`(?i)for\s+the\s+(.+?)\s+position`),
	regexp.MustCompile(`(?i)as\s+(?:a|an)\s+(.+?)\s+(?:at|with|on)`),
}

// Validation keyword sets; the snippet fallback uses the stricter one.
var (
	subjectRoleKeywords = []string{
		"engineer", "analyst", "scientist", "developer", "manager",
		"analytics", "data", "business intelligence", "bi", "ml", "ai",
		"senior", "lead", "staff", "principal", "associate", "junior",
	}
	snippetRoleKeywords = []string{
		"engineer", "analyst", "scientist", "developer", "manager",
	}
)

// Cleanup passes applied to a raw role capture, in order.
var roleCleanups = []struct {
	expr *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\s+application$`), ""},
	{regexp.MustCompile(`(?i)^your\s+`), ""},
	{regexp.MustCompile(`(?i)^the\s+`), ""},
	{regexp.MustCompile(`(?i)^position\s+of\s+`), ""},
	{regexp.MustCompile(`(?i)\s+position$`), ""},
	{regexp.MustCompile(`(?i)\s+role$`), ""},
	{regexp.MustCompile(`(?i)\s+at\s+.+$`), ""},
	{regexp.MustCompile(`[.!,;]+$`), ""},
}

// Company capture patterns for mail sent by scheduling vendors, where
// the real employer only appears in the text.
var (
	vendorOpportunityExpr = regexp.MustCompile(`(?i)(?:opportunity|position|role)\s+at\s+([A-Z][a-zA-Z0-9\s&.'-]{1,30}?)(?:\s*[!.]|\s+as\b|\s+to\b|\s+and\b|\n|$)`)
	vendorInterviewExpr   = regexp.MustCompile(`(?i)(?:interview|call|meeting)\s+with\s+([A-Z][a-zA-Z0-9\s&.'-]{1,30}?)(?:\s*[!.\n]|$)`)
	vendorSubjectExpr     = regexp.MustCompile(`(?i)(?:interview|call)\s+with\s+([A-Z][a-zA-Z0-9\s&.'-]{1,30}?)\s*$`)

	vendorCompanyTrailer = regexp.MustCompile(`(?i)\s+(team|inc|llc|corp|corporation|you|your|the)\.?$`)
	vendorCompanyOverrun = regexp.MustCompile(`\s+[a-z]{1,3}\s.*$`)
	thankYouForApplyExpr = regexp.MustCompile(`(?i)thank you for applying to (.+)`)
)
