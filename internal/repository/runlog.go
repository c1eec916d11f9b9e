package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// ScrapeRun is one recorded pipeline execution.
type ScrapeRun struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	RosterEntries int       `json:"roster_entries"`
	Rescraped     int       `json:"rescraped"`
	Failed        int       `json:"failed"`
	DailyFighter  string    `json:"daily_fighter"`
}

// RunLogRepository records scrape-run summaries for the API's run
// history. Failures here are logged and swallowed by callers: the run
// log is an audit trail, never a reason to lose scraped data.
type RunLogRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRunLogRepository(db *sql.DB, logger zerolog.Logger) *RunLogRepository {
	return &RunLogRepository{db: db, logger: logger}
}

func (r *RunLogRepository) Insert(ctx context.Context, run ScrapeRun) error {
	if run.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("generate run id: %w", err)
		}
		run.ID = id
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scrape_runs (id, started_at, finished_at, roster_entries, rescraped, failed, daily_fighter)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.FinishedAt, run.RosterEntries, run.Rescraped, run.Failed, run.DailyFighter,
	)
	if err != nil {
		return fmt.Errorf("insert scrape run: %w", err)
	}

	r.logger.Debug().
		Str("run_id", run.ID).
		Int("roster_entries", run.RosterEntries).
		Int("rescraped", run.Rescraped).
		Int("failed", run.Failed).
		Msg("scrape run recorded")
	return nil
}

func (r *RunLogRepository) ListRecent(ctx context.Context, limit int) ([]ScrapeRun, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, roster_entries, rescraped, failed, daily_fighter
		FROM scrape_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list scrape runs: %w", err)
	}
	defer rows.Close()

	var runs []ScrapeRun
	for rows.Next() {
		var run ScrapeRun
		if err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.RosterEntries, &run.Rescraped, &run.Failed, &run.DailyFighter,
		); err != nil {
			return nil, fmt.Errorf("scan scrape run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
