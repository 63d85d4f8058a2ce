// Package storage archives monthly commit reports in Postgres.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/gnomegl/commitmonth/internal/logger"
	"github.com/gnomegl/commitmonth/internal/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS monthly_commits (
	id         SERIAL PRIMARY KEY,
	org        TEXT NOT NULL,
	author     TEXT NOT NULL,
	month      TEXT NOT NULL,
	date       DATE NOT NULL,
	repo       TEXT NOT NULL,
	branch     TEXT NOT NULL,
	message    TEXT NOT NULL,
	url        TEXT NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL,
	UNIQUE (org, author, repo, branch, url)
)`

const insertRecord = `
INSERT INTO monthly_commits (org, author, month, date, repo, branch, message, url, fetched_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (org, author, repo, branch, url) DO NOTHING`

// Report identifies one run's results.
type Report struct {
	Org       string
	Author    string
	Month     string
	FetchedAt time.Time
}

type Store struct {
	conn *sqlx.DB
}

// Open connects to the Postgres database at dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}
	conn.SetMaxOpenConns(4)
	conn.SetConnMaxLifetime(5 * time.Minute)
	return NewStore(conn), nil
}

func NewStore(conn *sqlx.DB) *Store {
	return &Store{conn: conn}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create monthly_commits table: %w", err)
	}
	return nil
}

// SaveRecords stores records in a single transaction. Rows already archived
// for the same org, author, repo, branch and url are left alone.
func (s *Store) SaveRecords(ctx context.Context, report Report, records []models.CommitRecord) error {
	if report.Org == "" || report.Author == "" || report.Month == "" {
		return fmt.Errorf("%w: org, author and month are required", ErrInvalidInput)
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, insertRecord)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		res, err := stmt.ExecContext(ctx,
			report.Org,
			report.Author,
			report.Month,
			rec.Date,
			rec.Repo,
			rec.Branch,
			rec.Message,
			rec.URL,
			report.FetchedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", rec.URL, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	logger.Info("Archived commit records",
		zap.String("org", report.Org),
		zap.String("month", report.Month),
		zap.Int("records", len(records)),
		zap.Int("inserted", inserted))
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
