package privacy

import (
	"fmt"

	"github.com/promptveil/promptveil/internal/logger"
	"go.uber.org/zap"
)

// maxMatchesPerRule bounds how many hits a single rule may contribute to
// one scan. A rule that exceeds it is skipped for that scan and the
// result degrades to fewer findings rather than failing the call.
const maxMatchesPerRule = 100

// Config tunes a Detector instance. Zero values fall back to the stock
// scoring model.
type Config struct {
	Weights           Weights
	MaxMatchesPerRule int
}

// Detector is the sensitive-content detection engine. It holds only
// immutable registries after construction, so a single instance is safe
// for concurrent Detect calls.
type Detector struct {
	rules      []DetectionRule
	keywords   []KeywordRule
	weights    Weights
	maxMatches int
	logger     *logger.Logger
}

// New creates a detector with the default registries. Registry
// validation failures (empty or duplicate type IDs) are fatal: they
// would silently corrupt overlap-priority semantics, so no detector is
// served past them.
func New(cfg Config, log *logger.Logger) (*Detector, error) {
	rules := defaultRules()
	if err := validateRegistry(rules); err != nil {
		return nil, fmt.Errorf("invalid detection registry: %w", err)
	}

	weights := cfg.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	maxMatches := cfg.MaxMatchesPerRule
	if maxMatches <= 0 {
		maxMatches = maxMatchesPerRule
	}

	d := &Detector{
		rules:      rules,
		keywords:   defaultKeywords(),
		weights:    weights,
		maxMatches: maxMatches,
		logger:     log,
	}

	log.Info("Detection engine initialized",
		zap.Int("structured_rules", len(d.rules)),
		zap.Int("keyword_rules", len(d.keywords)),
		zap.Int("block_threshold", weights.BlockThreshold),
	)

	return d, nil
}

// validateRegistry rejects empty and duplicate type IDs.
func validateRegistry(rules []DetectionRule) error {
	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		if rule.TypeID == "" {
			return fmt.Errorf("rule with empty type ID")
		}
		if _, dup := seen[rule.TypeID]; dup {
			return fmt.Errorf("duplicate rule type ID: %s", rule.TypeID)
		}
		seen[rule.TypeID] = struct{}{}
	}
	return nil
}

// Detect scans text for sensitive content and returns the aggregate
// result: validated findings, a clamped 0-100 risk score, the block
// decision, and compliance tags. It is total over string input — an
// individual rule fault degrades the result, never the call.
func (d *Detector) Detect(text string) ScanResult {
	findings := make([]Finding, 0)
	claimed := newRangeSet()

	// Email runs as a dedicated pre-pass so addresses are locked in
	// before any numeric rule can carve up their spans.
	for _, rule := range d.rules {
		if rule.TypeID == TypeEmail {
			d.scanRule(rule, text, claimed, &findings)
			break
		}
	}
	for _, rule := range d.rules {
		if rule.TypeID == TypeEmail {
			continue
		}
		d.scanRule(rule, text, claimed, &findings)
	}

	d.scanKeywords(text, &findings)

	score := d.weights.score(findings)
	result := ScanResult{
		HasSensitiveContent: len(findings) > 0,
		Findings:            findings,
		RiskScore:           score,
		ShouldBlock:         score >= d.weights.BlockThreshold,
		ComplianceTags:      classify(findings),
	}

	if result.HasSensitiveContent {
		d.logger.Debug("Sensitive content detected",
			zap.Int("findings", len(findings)),
			zap.Int("risk_score", score),
			zap.Bool("should_block", result.ShouldBlock),
			zap.Strings("compliance_tags", result.ComplianceTags),
		)
	}

	return result
}

// scanRule evaluates one structured rule: leftmost non-overlapping
// pattern matches, contextual validation, then span claiming. A panic
// inside evaluation skips the rule for this scan only.
func (d *Detector) scanRule(rule DetectionRule, text string, claimed *rangeSet, findings *[]Finding) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("Rule evaluation fault, skipping rule for this scan",
				zap.String("type", rule.TypeID),
				zap.Any("fault", r),
			)
		}
	}()

	locs := rule.Pattern.FindAllStringIndex(text, d.maxMatches+1)
	if len(locs) > d.maxMatches {
		d.logger.Warn("Rule exceeded match budget, skipping rule for this scan",
			zap.String("type", rule.TypeID),
			zap.Int("budget", d.maxMatches),
		)
		return
	}

	for _, loc := range locs {
		raw := text[loc[0]:loc[1]]
		if !isValidInContext(rule.TypeID, raw, text, loc[0]) {
			continue
		}
		if !claimed.tryClaim(loc[0], loc[1], rule.TypeID) {
			continue
		}
		*findings = append(*findings, Finding{
			TypeID:     rule.TypeID,
			Display:    Mask(rule.TypeID, raw),
			Original:   raw,
			Severity:   rule.Severity,
			Position:   loc[0],
			Suggestion: rule.Suggestion,
		})
	}
}

// scanKeywords collects keyword hits. Keywords have no contextual
// validator and do not claim spans; they may overlap structured
// findings freely.
func (d *Detector) scanKeywords(text string, findings *[]Finding) {
	for _, kw := range d.keywords {
		loc := kw.Pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		raw := text[loc[0]:loc[1]]
		*findings = append(*findings, Finding{
			TypeID:     TypeSensitiveKeyword,
			Display:    raw,
			Original:   raw,
			Severity:   kw.Severity,
			Position:   loc[0],
			Suggestion: kw.Suggestion,
		})
	}
}

// RuleCount returns the number of structured rules in the registry.
func (d *Detector) RuleCount() int {
	return len(d.rules)
}

// KeywordCount returns the number of keyword rules in the registry.
func (d *Detector) KeywordCount() int {
	return len(d.keywords)
}
