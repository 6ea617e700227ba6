package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"EvalPull/internal/domain/models"
	pkgch "EvalPull/pkg/clickhouse"
	applogger "EvalPull/pkg/logger"
)

// CHPredictionStore implements PredictionStore backed by ClickHouse.
type CHPredictionStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHPredictionStore(ch *pkgch.Client, table string) *CHPredictionStore {
	return &CHPredictionStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHPredictionStore) SetLogger(l *applogger.Logger) { s.l = l }

// ForWindow loads date-eligible predictions restricted to the observation ids
// of the current label window. The id restriction is an existence filter, not
// a join: predictions outside the window stay out even when date-eligible, so
// label and prediction scope agree despite the two upstream pipelines being
// time-skewed.
func (s *CHPredictionStore) ForWindow(ctx context.Context, asset string, lookbackDays int, ids []int64) ([]models.Prediction, error) {
	if len(ids) == 0 {
		return []models.Prediction{}, nil
	}
	start := time.Now()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	q := fmt.Sprintf(`
        SELECT raw_data_id, asset, model_type, score, predicted_timestamp
        FROM %s
        WHERE asset = ? AND predicted_date >= today() - ? AND raw_data_id IN (%s)
        ORDER BY predicted_timestamp DESC
    `, s.table, placeholders)

	args := make([]interface{}, 0, len(ids)+2)
	args = append(args, asset, lookbackDays)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse predictions query error",
				applogger.String("asset", asset),
				applogger.Int("lookback_days", lookbackDays),
				applogger.Int("ids", len(ids)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: predictions asset=%s: %v", models.ErrUpstreamUnavailable, asset, err)
	}
	defer rows.Close()

	out := make([]models.Prediction, 0, len(ids))
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.RawDataID, &p.Asset, &p.ModelType, &p.Score, &p.PredictedTimestamp); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse predictions scan error",
					applogger.String("asset", asset),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", models.ErrUpstreamUnavailable, err)
	}
	if s.l != nil {
		s.l.Info("clickhouse predictions ok",
			applogger.String("asset", asset),
			applogger.Int("lookback_days", lookbackDays),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}
