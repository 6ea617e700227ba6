package usecase

import (
	"fmt"
	"sort"

	"EvalPull/internal/domain/models"
)

// AggregateAccuracy groups evaluated predictions by (model_type, asset) and
// computes per-group totals, correct counts, and the accuracy ratio.
//
// A group where every prediction was wrong still appears with accuracy 0; a
// group with no evaluated rows at all is a division by zero and surfaces as
// an error rather than a dropped or defaulted row. Output ordering is
// deterministic: asset, then model_type.
func AggregateAccuracy(evaluations []models.EvaluatedPrediction) ([]models.ModelAccuracy, error) {
	type key struct{ model, asset string }
	groups := make(map[key]*models.ModelAccuracy)
	for _, ev := range evaluations {
		k := key{model: ev.ModelType, asset: ev.Asset}
		g, ok := groups[k]
		if !ok {
			g = &models.ModelAccuracy{ModelType: ev.ModelType, Asset: ev.Asset}
			groups[k] = g
		}
		g.TotalPredicted++
		if ev.Correct {
			g.CorrectedPrediction++
		}
	}

	out := make([]models.ModelAccuracy, 0, len(groups))
	for _, g := range groups {
		if g.TotalPredicted == 0 {
			return nil, fmt.Errorf("accuracy %s/%s: %w", g.Asset, g.ModelType, models.ErrDivisionByZero)
		}
		g.Accuracy = float64(g.CorrectedPrediction) / float64(g.TotalPredicted)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Asset != out[j].Asset {
			return out[i].Asset < out[j].Asset
		}
		return out[i].ModelType < out[j].ModelType
	})
	return out, nil
}
