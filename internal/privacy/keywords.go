package privacy

import "regexp"

// keywordSpec is the compact source form of the keyword registry.
type keywordSpec struct {
	phrase   string
	severity Severity
}

// Confidentiality and business-sensitivity phrases. Matching is
// case-insensitive on whole-phrase boundaries. Unlike structured rules,
// keyword hits are document-level signals and are exempt from span
// overlap resolution.
var keywordSpecs = []keywordSpec{
	{"confidential", SeverityHigh},
	{"strictly confidential", SeverityHigh},
	{"top secret", SeverityHigh},
	{"trade secret", SeverityHigh},
	{"classified", SeverityHigh},
	{"proprietary", SeverityHigh},
	{"do not share", SeverityHigh},
	{"do not distribute", SeverityHigh},
	{"internal use only", SeverityHigh},
	{"attorney-client privilege", SeverityHigh},
	{"privileged and confidential", SeverityHigh},
	{"insider information", SeverityHigh},
	{"material non-public", SeverityHigh},
	{"security vulnerability", SeverityHigh},
	{"zero-day", SeverityHigh},
	{"unreleased earnings", SeverityHigh},
	{"credentials", SeverityHigh},
	{"master password", SeverityHigh},
	{"secret key", SeverityHigh},
	{"non-disclosure", SeverityMedium},
	{"nda", SeverityMedium},
	{"internal only", SeverityMedium},
	{"restricted", SeverityMedium},
	{"need to know", SeverityMedium},
	{"embargoed", SeverityMedium},
	{"unannounced", SeverityMedium},
	{"pre-release", SeverityMedium},
	{"salary", SeverityMedium},
	{"compensation package", SeverityMedium},
	{"payroll", SeverityMedium},
	{"severance", SeverityMedium},
	{"revenue figures", SeverityMedium},
	{"financial projections", SeverityMedium},
	{"profit margin", SeverityMedium},
	{"merger", SeverityMedium},
	{"acquisition", SeverityMedium},
	{"due diligence", SeverityMedium},
	{"layoff", SeverityMedium},
	{"restructuring", SeverityMedium},
	{"patent pending", SeverityMedium},
	{"customer list", SeverityMedium},
	{"client database", SeverityMedium},
	{"source code", SeverityMedium},
	{"production database", SeverityMedium},
	{"security audit", SeverityMedium},
	{"penetration test", SeverityMedium},
	{"incident report", SeverityMedium},
	{"medical history", SeverityMedium},
	{"diagnosis", SeverityMedium},
	{"prescription", SeverityMedium},
	{"patient record", SeverityMedium},
	{"hipaa", SeverityMedium},
	{"off the record", SeverityMedium},
	{"bank details", SeverityMedium},
	{"wire transfer", SeverityMedium},
	{"internal", SeverityLow},
	{"draft", SeverityLow},
	{"preliminary", SeverityLow},
	{"budget", SeverityLow},
	{"forecast", SeverityLow},
	{"roadmap", SeverityLow},
	{"invoice", SeverityLow},
	{"quarterly results", SeverityLow},
	{"board meeting", SeverityLow},
	{"performance review", SeverityLow},
}

// defaultKeywords compiles the keyword registry. Phrases match on word
// boundaries so "internal" does not fire inside "internally".
func defaultKeywords() []KeywordRule {
	rules := make([]KeywordRule, 0, len(keywordSpecs))
	for _, spec := range keywordSpecs {
		rules = append(rules, KeywordRule{
			Keyword:    spec.phrase,
			Pattern:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(spec.phrase) + `\b`),
			Severity:   spec.severity,
			Suggestion: "This phrase suggests organization-confidential content. Review before sharing externally.",
		})
	}
	return rules
}
