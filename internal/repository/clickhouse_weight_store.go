package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"EvalPull/internal/domain/models"
	domrepo "EvalPull/internal/domain/repository"
	pkgch "EvalPull/pkg/clickhouse"
	applogger "EvalPull/pkg/logger"
)

// CHWeightStore persists computed weight sets into the
// aggregated_classifier_weight table, one row per (model, asset).
type CHWeightStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHWeightStore(ch *pkgch.Client, table string) domrepo.WeightStore {
	return &CHWeightStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHWeightStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHWeightStore) StoreBatch(ctx context.Context, weights []models.ModelWeight) error {
	if len(weights) == 0 {
		return nil
	}
	start := time.Now()
	q := fmt.Sprintf(`INSERT INTO %s
        (model_type, asset, corrected_prediction, total_predicted, accuracy, weight, computed_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`, s.table)

	for _, w := range weights {
		if _, err := s.db.ExecContext(ctx, q,
			w.ModelType,
			w.Asset,
			w.CorrectedPrediction,
			w.TotalPredicted,
			w.Accuracy,
			w.Weight,
			w.ComputedAt,
		); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_weights insert error",
					applogger.String("asset", w.Asset),
					applogger.String("model_type", w.ModelType),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store weight %s/%s: %w", w.Asset, w.ModelType, err)
		}
	}
	if s.l != nil {
		s.l.Info("clickhouse store_weights ok",
			applogger.Int("rows", len(weights)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}
