package repository

import (
	"context"
	"time"

	"EvalPull/internal/domain/models"
)

// ObservationStore provides read-only access to scraped price observations.
type ObservationStore interface {
	// LatestWindow returns observations for asset with
	// scraped_date >= today - lookbackDays, newest first, at most maxRows.
	LatestWindow(ctx context.Context, asset string, lookbackDays, maxRows int) ([]models.RawObservation, error)
	// Since returns observations with scraped_timestamp > lowerBound,
	// oldest first, at most limit. Used for forward-scanning incremental fetches.
	Since(ctx context.Context, asset string, lowerBound time.Time, limit int) ([]models.RawObservation, error)
	// Exists reports whether the asset has any rows upstream at all.
	Exists(ctx context.Context, asset string) (bool, error)
}

// PredictionStore provides read-only access to stored classifier predictions.
type PredictionStore interface {
	// ForWindow returns predictions for asset with
	// predicted_date >= today - lookbackDays whose raw_data_id is in ids.
	// Predictions for observations outside the window are excluded even if
	// otherwise date-eligible.
	ForWindow(ctx context.Context, asset string, lookbackDays int, ids []int64) ([]models.Prediction, error)
}

// WeightStore persists computed weight sets. Persistence is a caller concern;
// the evaluation pipeline itself never writes.
type WeightStore interface {
	StoreBatch(ctx context.Context, weights []models.ModelWeight) error
}

// WeightPublisher pushes freshly computed weight sets to downstream consumers.
type WeightPublisher interface {
	Publish(ctx context.Context, weights []models.ModelWeight) error
	Close() error
}

// Metrics records operational metrics for the evaluation service.
type Metrics interface {
	RecordEvaluation(asset string, rows int)
	RecordModelWeight(modelType, asset string, weight float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
