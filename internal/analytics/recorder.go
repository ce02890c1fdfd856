// Package analytics persists validation outcomes to Postgres and serves
// aggregate reports over them.
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/okorotenko/email-risk/internal/logger"
	"github.com/okorotenko/email-risk/internal/metrics"
	"github.com/okorotenko/email-risk/pkg/types"
)

const insertTimeout = 5 * time.Second

// Recorder writes validation rows to the email_validations table. Writes run
// on their own goroutine and never surface errors to the validation path.
type Recorder struct {
	db *sqlx.DB
}

// NewRecorder creates a Recorder over an initialized database handle.
func NewRecorder(db *sqlx.DB) *Recorder {
	return &Recorder{db: db}
}

// Record persists one validation asynchronously. Failures are logged and
// counted, never returned.
func (r *Recorder) Record(rec types.AnalyticsRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		defer cancel()
		if err := r.insert(ctx, rec); err != nil {
			logger.Errorf("analytics write for %s failed: %v", rec.Domain, err)
			metrics.AnalyticsWriteFailures.Inc()
		}
	}()
}

func (r *Recorder) insert(ctx context.Context, rec types.AnalyticsRecord) error {
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return err
	}
	checks, err := json.Marshal(rec.Checks)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO email_validations (id, date, domain, risk_score, created_at, metadata, checks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.Date, rec.Domain, rec.RiskScore, rec.Timestamp, meta, checks)
	return err
}
