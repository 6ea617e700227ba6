package usecase

import (
	"fmt"
	"math"

	"EvalPull/internal/domain/models"
)

// SignalFromScore rounds a continuous classifier score to a discrete trading
// signal: round half away from zero, 0 => sell, 1 => buy. Scores outside
// [0,1] have no two-way mapping and are a data-quality condition.
func SignalFromScore(score float64) (models.Direction, error) {
	if score < 0 || score > 1 || math.IsNaN(score) {
		return models.DirectionUndefined, fmt.Errorf("%w: score %v outside [0,1]", models.ErrDataQuality, score)
	}
	if math.Round(score) >= 1 {
		return models.DirectionBuy, nil
	}
	return models.DirectionSell, nil
}

// JoinEvaluations pairs each labeled observation with its predictions and
// classifies every pairing as correct or wrong.
//
// The join is a left join from labels to predictions on id = raw_data_id with
// fan-out by model_type; rows missing either side, or carrying an undefined
// direction, are filtered after the join rather than excluded by the join
// condition. An out-of-range score aborts the join with ErrDataQuality
// instead of being silently coerced.
func JoinEvaluations(labels []models.Label, predictions []models.Prediction) ([]models.EvaluatedPrediction, error) {
	byObservation := make(map[int64][]models.Prediction, len(predictions))
	for _, p := range predictions {
		byObservation[p.RawDataID] = append(byObservation[p.RawDataID], p)
	}

	out := make([]models.EvaluatedPrediction, 0, len(predictions))
	for _, l := range labels {
		matches := byObservation[l.ID]
		if !l.Direction.Defined() {
			continue
		}
		for _, p := range matches {
			signal, err := SignalFromScore(p.Score)
			if err != nil {
				return nil, fmt.Errorf("evaluate %s/%s id=%d: %w", p.Asset, p.ModelType, p.RawDataID, err)
			}
			out = append(out, models.EvaluatedPrediction{
				RawDataID: l.ID,
				Asset:     l.Asset,
				ModelType: p.ModelType,
				Score:     p.Score,
				Signal:    signal,
				Direction: l.Direction,
				Correct:   signal == l.Direction,
			})
		}
	}
	return out, nil
}
