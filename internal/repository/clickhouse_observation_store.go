package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"EvalPull/internal/domain/models"
	pkgch "EvalPull/pkg/clickhouse"
	applogger "EvalPull/pkg/logger"
)

// CHObservationStore implements ObservationStore backed by ClickHouse.
type CHObservationStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHObservationStore(ch *pkgch.Client, table string) *CHObservationStore {
	return &CHObservationStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHObservationStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHObservationStore) LatestWindow(ctx context.Context, asset string, lookbackDays, maxRows int) ([]models.RawObservation, error) {
	start := time.Now()
	const qtpl = `
        SELECT id, asset, price, scraped_timestamp, scraped_date
        FROM %s
        WHERE asset = ? AND scraped_date >= today() - ?
        ORDER BY scraped_timestamp DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, asset, lookbackDays, maxRows)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_window query error",
				applogger.String("asset", asset),
				applogger.Int("lookback_days", lookbackDays),
				applogger.Int("limit", maxRows),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: latest window asset=%s: %v", models.ErrUpstreamUnavailable, asset, err)
	}
	defer rows.Close()

	out := make([]models.RawObservation, 0, maxRows)
	for rows.Next() {
		var o models.RawObservation
		if err := rows.Scan(&o.ID, &o.Asset, &o.Price, &o.ScrapedTimestamp, &o.ScrapedDate); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_window scan error",
					applogger.String("asset", asset),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_window rows error",
				applogger.String("asset", asset),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: rows: %v", models.ErrUpstreamUnavailable, err)
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_window ok",
			applogger.String("asset", asset),
			applogger.Int("lookback_days", lookbackDays),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHObservationStore) Since(ctx context.Context, asset string, lowerBound time.Time, limit int) ([]models.RawObservation, error) {
	start := time.Now()
	const qtpl = `
        SELECT id, asset, price, scraped_timestamp, scraped_date
        FROM %s
        WHERE asset = ? AND scraped_timestamp > ?
        ORDER BY scraped_timestamp ASC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, asset, lowerBound, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse since query error",
				applogger.String("asset", asset),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: since asset=%s: %v", models.ErrUpstreamUnavailable, asset, err)
	}
	defer rows.Close()

	out := make([]models.RawObservation, 0, limit)
	for rows.Next() {
		var o models.RawObservation
		if err := rows.Scan(&o.ID, &o.Asset, &o.Price, &o.ScrapedTimestamp, &o.ScrapedDate); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", models.ErrUpstreamUnavailable, err)
	}
	if s.l != nil {
		s.l.Info("clickhouse since ok",
			applogger.String("asset", asset),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHObservationStore) Exists(ctx context.Context, asset string) (bool, error) {
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE asset = ? LIMIT 1", s.table)
	var one int
	err := s.db.QueryRowContext(ctx, q, asset).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists asset=%s: %v", models.ErrUpstreamUnavailable, asset, err)
	}
	return true, nil
}
