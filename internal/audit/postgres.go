package audit

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/promptveil/promptveil/internal/config"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS scan_audit (
	id              BIGSERIAL PRIMARY KEY,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	request_id      TEXT NOT NULL,
	risk_score      INTEGER NOT NULL,
	blocked         BOOLEAN NOT NULL,
	finding_count   INTEGER NOT NULL,
	finding_types   TEXT NOT NULL,
	compliance_tags TEXT NOT NULL,
	input_length    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_audit_created_at ON scan_audit (created_at);
CREATE INDEX IF NOT EXISTS idx_scan_audit_blocked ON scan_audit (blocked);`

// PostgresSink persists scan summaries to PostgreSQL.
type PostgresSink struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPostgresSink connects to the audit database and ensures the schema
// exists.
func NewPostgresSink(cfg *config.AuditConfig, logger *zap.Logger) (*PostgresSink, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	s := &PostgresSink{db: db, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("audit database ping failed: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure audit schema: %w", err)
	}

	logger.Info("Audit sink initialized",
		zap.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
		zap.Int("max_open_conns", cfg.MaxOpenConns))

	return s, nil
}

// Write inserts one scan summary.
func (s *PostgresSink) Write(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO scan_audit (request_id, risk_score, blocked, finding_count, finding_types, compliance_tags, input_length)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		rec.RequestID,
		rec.RiskScore,
		rec.Blocked,
		rec.FindingCount,
		rec.FindingTypes,
		rec.ComplianceTags,
		rec.InputLength,
	).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		s.logger.Error("Failed to write audit record",
			zap.Error(err),
			zap.String("request_id", rec.RequestID))
		return fmt.Errorf("failed to write audit record: %w", err)
	}

	return nil
}

// RecentBlocked returns the most recent blocked-scan records, newest
// first.
func (s *PostgresSink) RecentBlocked(ctx context.Context, limit int) ([]Record, error) {
	var recs []Record
	query := `SELECT * FROM scan_audit WHERE blocked ORDER BY created_at DESC LIMIT $1`
	if err := s.db.SelectContext(ctx, &recs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	return recs, nil
}

// Close releases the database pool.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}

// maskDatabaseURL hides credentials when logging the connection target.
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "postgres://***"
	}
	if u.User != nil {
		u.User = url.UserPassword("***", "***")
	}
	return u.String()
}
