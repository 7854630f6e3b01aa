package privacy

import "regexp"

// Severity is the qualitative weight of a detection rule.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DetectionRule represents a single structured PII/secret detection rule.
// Rules are immutable after registry construction; compiled patterns carry
// no match-position state, so one rule set is safe to share across
// concurrent scans.
type DetectionRule struct {
	TypeID     string
	Pattern    *regexp.Regexp
	Severity   Severity
	Suggestion string
}

// KeywordRule represents a confidentiality/business-sensitivity phrase.
// Keyword findings signal document-level sensitivity and never contend
// for text spans with structured findings.
type KeywordRule struct {
	Keyword    string
	Pattern    *regexp.Regexp
	Severity   Severity
	Suggestion string
}

// Finding is one accepted, validated detection.
type Finding struct {
	TypeID     string   `json:"type"`
	Display    string   `json:"display"`
	Original   string   `json:"-"` // Never serialize raw values
	Severity   Severity `json:"severity"`
	Position   int      `json:"position"`
	Suggestion string   `json:"suggestion"`
}

// ScanResult is the aggregate output of one Detect call.
type ScanResult struct {
	HasSensitiveContent bool      `json:"hasSensitiveContent"`
	Findings            []Finding `json:"findings"`
	RiskScore           int       `json:"riskScore"`
	ShouldBlock         bool      `json:"shouldBlock"`
	ComplianceTags      []string  `json:"complianceTags"`
}
