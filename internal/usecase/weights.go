package usecase

import (
	"fmt"
	"time"

	"EvalPull/internal/domain/models"
	domrepo "EvalPull/internal/domain/repository"
)

// NormalizeWeights converts accuracies into ensemble weights summing to 1
// within each normalization group.
//
// ScopeGlobal divides every accuracy by the sum over all rows, matching the
// original warehouse job; when several assets are evaluated together the
// per-asset weights are diluted and do not sum to 1. ScopePerAsset groups by
// asset first. A group whose total accuracy is zero fails with
// ErrDivisionByZero; choosing a fallback such as equal weighting is the
// caller's decision, not this function's.
func NormalizeWeights(accuracies []models.ModelAccuracy, scope domrepo.Scope) ([]models.ModelWeight, error) {
	if len(accuracies) == 0 {
		return []models.ModelWeight{}, nil
	}

	groupOf := func(a models.ModelAccuracy) string {
		if scope == domrepo.ScopePerAsset {
			return a.Asset
		}
		return ""
	}

	totals := make(map[string]float64)
	for _, a := range accuracies {
		totals[groupOf(a)] += a.Accuracy
	}
	for group, total := range totals {
		if total == 0 {
			if group == "" {
				group = "all assets"
			}
			return nil, fmt.Errorf("normalize %s: total accuracy is zero: %w", group, models.ErrDivisionByZero)
		}
	}

	now := time.Now().UTC()
	out := make([]models.ModelWeight, 0, len(accuracies))
	for _, a := range accuracies {
		out = append(out, models.ModelWeight{
			ModelType:           a.ModelType,
			Asset:               a.Asset,
			CorrectedPrediction: a.CorrectedPrediction,
			TotalPredicted:      a.TotalPredicted,
			Accuracy:            a.Accuracy,
			Weight:              a.Accuracy / totals[groupOf(a)],
			ComputedAt:          now,
		})
	}
	return out, nil
}
