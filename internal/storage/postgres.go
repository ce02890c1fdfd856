package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/spf13/viper"
)

// Schema for the analytics store. Records are append-only; expiry, if any,
// is a retention policy applied outside this service.
const analyticsSchema = `
CREATE TABLE IF NOT EXISTS email_validations (
	id          TEXT PRIMARY KEY,
	date        DATE NOT NULL,
	domain      TEXT NOT NULL,
	risk_score  INTEGER NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	metadata    JSONB,
	checks      JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS email_validations_date_idx ON email_validations (date);
CREATE INDEX IF NOT EXISTS email_validations_domain_idx ON email_validations (domain);`

// InitPostgres connects to the analytics database and ensures the schema.
func InitPostgres(cfg *viper.Viper) (*sqlx.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.GetString("pg-host"),
		cfg.GetInt("pg-port"),
		cfg.GetString("pg-user"),
		cfg.GetString("pg-password"),
		cfg.GetString("pg-db"),
		cfg.GetString("pg-ssl"),
	)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connection verification failed: %w", err)
	}

	if _, err := db.ExecContext(ctx, analyticsSchema); err != nil {
		return nil, fmt.Errorf("schema setup failed: %w", err)
	}

	return db, nil
}
