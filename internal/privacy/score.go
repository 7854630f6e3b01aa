package privacy

import (
	"sort"
	"strings"
)

// Risk weight table and block threshold. Exposed as named defaults so a
// deployment can retune sensitivity through configuration without
// touching detection logic.
const (
	DefaultWeightStructuredHigh   = 30
	DefaultWeightStructuredMedium = 15
	DefaultWeightStructuredLow    = 5
	DefaultWeightEmail            = 15
	DefaultWeightKeywordHigh      = 25
	DefaultWeightKeywordMedium    = 15
	DefaultWeightKeywordLow       = 5
	DefaultBlockThreshold         = 50

	maxRiskScore = 100
)

// Compliance tags emitted by the classifier.
const (
	TagHealthData             = "health-data"
	TagPaymentData            = "payment-data"
	TagGeneralPrivacy         = "general-privacy"
	TagRegionalPrivacy        = "regional-privacy"
	TagFinancialReporting     = "financial-reporting"
	TagSecurityInfrastructure = "security-infrastructure"
)

// Weights carries the scoring model for one detector instance.
type Weights struct {
	StructuredHigh   int
	StructuredMedium int
	StructuredLow    int
	Email            int
	KeywordHigh      int
	KeywordMedium    int
	KeywordLow       int
	BlockThreshold   int
}

// DefaultWeights returns the stock scoring model.
func DefaultWeights() Weights {
	return Weights{
		StructuredHigh:   DefaultWeightStructuredHigh,
		StructuredMedium: DefaultWeightStructuredMedium,
		StructuredLow:    DefaultWeightStructuredLow,
		Email:            DefaultWeightEmail,
		KeywordHigh:      DefaultWeightKeywordHigh,
		KeywordMedium:    DefaultWeightKeywordMedium,
		KeywordLow:       DefaultWeightKeywordLow,
		BlockThreshold:   DefaultBlockThreshold,
	}
}

// score sums per-finding weights and clamps to [0, maxRiskScore]. The
// email category contributes its dedicated weight regardless of nominal
// severity; the value currently coincides with the medium weight, and we
// preserve that emergent behavior.
func (w Weights) score(findings []Finding) int {
	total := 0
	for _, f := range findings {
		switch {
		case f.TypeID == TypeEmail:
			total += w.Email
		case f.TypeID == TypeSensitiveKeyword:
			switch f.Severity {
			case SeverityHigh:
				total += w.KeywordHigh
			case SeverityMedium:
				total += w.KeywordMedium
			default:
				total += w.KeywordLow
			}
		default:
			switch f.Severity {
			case SeverityHigh:
				total += w.StructuredHigh
			case SeverityMedium:
				total += w.StructuredMedium
			default:
				total += w.StructuredLow
			}
		}
	}
	if total > maxRiskScore {
		total = maxRiskScore
	}
	if total < 0 {
		total = 0
	}
	return total
}

// tagRule maps typeID substrings to a compliance tag.
type tagRule struct {
	tag        string
	substrings []string
}

// Classification is substring-based over lowercased type IDs so related
// rule families (pan/panStandalone, aadhaar/aadhaarStandalone) share
// tags without per-type tables. A finding may contribute to several
// tags; credential types deliberately map only to
// security-infrastructure.
var tagRules = []tagRule{
	{TagHealthData, []string{"medical", "health"}},
	{TagPaymentData, []string{"creditcard", "bankaccount", "upi", "ifsc", "crypto"}},
	{TagGeneralPrivacy, []string{"email", "phone", "ssn", "passport", "license", "dateofbirth", "voter"}},
	{TagRegionalPrivacy, []string{"aadhaar", "pan", "voter", "ifsc", "gstin", "upi", "phoneindia"}},
	{TagFinancialReporting, []string{"taxid", "gstin"}},
	{TagSecurityInfrastructure, []string{"key", "token", "password", "jwt", "ssh", "connection", "credential", "secret"}},
}

// classify maps accepted findings to the set of compliance tags,
// returned sorted for deterministic output.
func classify(findings []Finding) []string {
	set := make(map[string]struct{})
	for _, f := range findings {
		if f.TypeID == TypeSensitiveKeyword {
			// Keyword hits signal sensitivity but carry no regulatory
			// category of their own.
			continue
		}
		id := strings.ToLower(f.TypeID)
		for _, rule := range tagRules {
			for _, sub := range rule.substrings {
				if strings.Contains(id, sub) {
					set[rule.tag] = struct{}{}
					break
				}
			}
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
