package usecase

import (
	"errors"
	"testing"

	"EvalPull/internal/domain/models"
	domrepo "EvalPull/internal/domain/repository"
)

func almostEqual(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestNormalizeWeightsGlobal(t *testing.T) {
	accs := []models.ModelAccuracy{
		{ModelType: "lstm", Asset: "BTCUSDT", TotalPredicted: 10, CorrectedPrediction: 8, Accuracy: 0.8},
		{ModelType: "xgboost", Asset: "BTCUSDT", TotalPredicted: 10, CorrectedPrediction: 6, Accuracy: 0.6},
	}
	weights, err := NormalizeWeights(accs, domrepo.ScopeGlobal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(weights[0].Weight, 0.8/1.4, 1e-9) {
		t.Fatalf("lstm weight: expected %v, got %v", 0.8/1.4, weights[0].Weight)
	}
	if !almostEqual(weights[1].Weight, 0.6/1.4, 1e-9) {
		t.Fatalf("xgboost weight: expected %v, got %v", 0.6/1.4, weights[1].Weight)
	}
	var sum float64
	for _, w := range weights {
		sum += w.Weight
	}
	if !almostEqual(sum, 1, 1e-9) {
		t.Fatalf("weights must sum to 1, got %v", sum)
	}
}

func TestNormalizeWeightsPerAsset(t *testing.T) {
	accs := []models.ModelAccuracy{
		{ModelType: "lstm", Asset: "BTCUSDT", Accuracy: 0.8},
		{ModelType: "xgboost", Asset: "BTCUSDT", Accuracy: 0.6},
		{ModelType: "lstm", Asset: "ETHUSDT", Accuracy: 0.5},
		{ModelType: "xgboost", Asset: "ETHUSDT", Accuracy: 0.5},
	}
	weights, err := NormalizeWeights(accs, domrepo.ScopePerAsset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sums := map[string]float64{}
	for _, w := range weights {
		sums[w.Asset] += w.Weight
	}
	for asset, sum := range sums {
		if !almostEqual(sum, 1, 1e-9) {
			t.Fatalf("asset %s weights must sum to 1, got %v", asset, sum)
		}
	}
}

func TestNormalizeWeightsGlobalDilutesAcrossAssets(t *testing.T) {
	// the reference behavior: two assets normalized together sum to 1
	// overall, not per asset
	accs := []models.ModelAccuracy{
		{ModelType: "lstm", Asset: "BTCUSDT", Accuracy: 0.8},
		{ModelType: "lstm", Asset: "ETHUSDT", Accuracy: 0.2},
	}
	weights, err := NormalizeWeights(accs, domrepo.ScopeGlobal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sum float64
	for _, w := range weights {
		if almostEqual(w.Weight, 1, 1e-9) {
			t.Fatalf("per-asset weight should be diluted, got %v for %s", w.Weight, w.Asset)
		}
		sum += w.Weight
	}
	if !almostEqual(sum, 1, 1e-9) {
		t.Fatalf("global sum must be 1, got %v", sum)
	}
}

func TestNormalizeWeightsZeroTotalAccuracy(t *testing.T) {
	accs := []models.ModelAccuracy{
		{ModelType: "lstm", Asset: "BTCUSDT", TotalPredicted: 4, Accuracy: 0},
		{ModelType: "xgboost", Asset: "BTCUSDT", TotalPredicted: 4, Accuracy: 0},
	}
	if _, err := NormalizeWeights(accs, domrepo.ScopeGlobal); !errors.Is(err, models.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestNormalizeWeightsEmpty(t *testing.T) {
	weights, err := NormalizeWeights(nil, domrepo.ScopeGlobal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weights) != 0 {
		t.Fatalf("expected empty result, got %d", len(weights))
	}
}

func TestNormalizeWeightsPreservesCounts(t *testing.T) {
	accs := []models.ModelAccuracy{
		{ModelType: "lstm", Asset: "BTCUSDT", TotalPredicted: 10, CorrectedPrediction: 8, Accuracy: 0.8},
	}
	weights, err := NormalizeWeights(accs, domrepo.ScopeGlobal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := weights[0]
	if w.TotalPredicted != 10 || w.CorrectedPrediction != 8 || w.Accuracy != 0.8 {
		t.Fatalf("accuracy columns must carry through: %+v", w)
	}
	if w.ComputedAt.IsZero() {
		t.Fatalf("computed_at must be set")
	}
}
