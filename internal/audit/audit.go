package audit

import (
	"context"
	"time"
)

// Record is the persisted summary of one scan. It deliberately carries
// no raw or masked finding values — only type-level counts and the
// scoring outcome — so the audit trail can never become a second copy of
// the sensitive data.
type Record struct {
	ID             int64     `db:"id" json:"id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	RequestID      string    `db:"request_id" json:"request_id"`
	RiskScore      int       `db:"risk_score" json:"risk_score"`
	Blocked        bool      `db:"blocked" json:"blocked"`
	FindingCount   int       `db:"finding_count" json:"finding_count"`
	FindingTypes   string    `db:"finding_types" json:"finding_types"`     // comma-joined type IDs
	ComplianceTags string    `db:"compliance_tags" json:"compliance_tags"` // comma-joined tags
	InputLength    int       `db:"input_length" json:"input_length"`
}

// Sink receives scan summaries. Persistence is a hosting concern: the
// detection engine never writes audit records itself.
type Sink interface {
	Write(ctx context.Context, rec *Record) error
	Close() error
}

// NopSink discards records; used when auditing is disabled.
type NopSink struct{}

func (NopSink) Write(context.Context, *Record) error { return nil }
func (NopSink) Close() error                         { return nil }
