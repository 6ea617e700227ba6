package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"EvalPull/internal/domain/models"
	domrepo "EvalPull/internal/domain/repository"
)

type fakeObservationStore struct {
	windows map[string][]models.RawObservation
}

func (f *fakeObservationStore) LatestWindow(_ context.Context, asset string, _, maxRows int) ([]models.RawObservation, error) {
	w := f.windows[asset]
	if len(w) > maxRows {
		w = w[:maxRows]
	}
	return w, nil
}

func (f *fakeObservationStore) Since(_ context.Context, asset string, lowerBound time.Time, limit int) ([]models.RawObservation, error) {
	out := []models.RawObservation{}
	w := f.windows[asset]
	for i := len(w) - 1; i >= 0 && len(out) < limit; i-- {
		if w[i].ScrapedTimestamp.After(lowerBound) {
			out = append(out, w[i])
		}
	}
	return out, nil
}

func (f *fakeObservationStore) Exists(_ context.Context, asset string) (bool, error) {
	_, ok := f.windows[asset]
	return ok, nil
}

type fakePredictionStore struct {
	predictions map[string][]models.Prediction
}

func (f *fakePredictionStore) ForWindow(_ context.Context, asset string, _ int, ids []int64) ([]models.Prediction, error) {
	idSet := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	out := []models.Prediction{}
	for _, p := range f.predictions[asset] {
		if _, ok := idSet[p.RawDataID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// window newest first: id5 101, id4 98, id3 98, id2 100, id1 103
// labels: id5 sell, id4 undefined (tie), id3 buy, id2 buy, id1 undefined (boundary)
func testStores() (*fakeObservationStore, *fakePredictionStore) {
	base := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	prices := map[int64]float64{1: 103, 2: 100, 3: 98, 4: 98, 5: 101}
	window := make([]models.RawObservation, 0, 5)
	for id := int64(5); id >= 1; id-- {
		window = append(window, models.RawObservation{
			ID:               id,
			Asset:            "BTCUSDT",
			Price:            prices[id],
			ScrapedTimestamp: base.Add(time.Duration(id) * time.Minute),
		})
	}

	obs := &fakeObservationStore{windows: map[string][]models.RawObservation{"BTCUSDT": window}}
	preds := &fakePredictionStore{predictions: map[string][]models.Prediction{
		"BTCUSDT": {
			// lstm: correct on id5 and id3, wrong on id2 -> 2/3
			{RawDataID: 5, Asset: "BTCUSDT", ModelType: "lstm", Score: 0.2},
			{RawDataID: 3, Asset: "BTCUSDT", ModelType: "lstm", Score: 0.9},
			{RawDataID: 2, Asset: "BTCUSDT", ModelType: "lstm", Score: 0.4},
			// xgboost: wrong on id5, correct on id3 -> 1/2
			{RawDataID: 5, Asset: "BTCUSDT", ModelType: "xgboost", Score: 0.7},
			{RawDataID: 3, Asset: "BTCUSDT", ModelType: "xgboost", Score: 0.6},
		},
	}}
	return obs, preds
}

func TestEvaluateAndWeight(t *testing.T) {
	obs, preds := testStores()
	p := NewEvaluationPipeline(obs, preds, nil)

	weights, err := p.EvaluateAndWeight(context.Background(), EvaluationParams{
		Assets:          []string{"BTCUSDT"},
		LookbackDays:    1,
		EvaluationRange: 15,
		Scope:           domrepo.ScopeGlobal,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weights) != 2 {
		t.Fatalf("expected 2 weight rows, got %d", len(weights))
	}

	accLSTM := 2.0 / 3.0
	accXGB := 0.5
	total := accLSTM + accXGB
	for _, w := range weights {
		switch w.ModelType {
		case "lstm":
			if w.TotalPredicted != 3 || w.CorrectedPrediction != 2 {
				t.Fatalf("lstm counts wrong: %+v", w)
			}
			if !almostEqual(w.Weight, accLSTM/total, 1e-9) {
				t.Fatalf("lstm weight: expected %v, got %v", accLSTM/total, w.Weight)
			}
		case "xgboost":
			if w.TotalPredicted != 2 || w.CorrectedPrediction != 1 {
				t.Fatalf("xgboost counts wrong: %+v", w)
			}
			if !almostEqual(w.Weight, accXGB/total, 1e-9) {
				t.Fatalf("xgboost weight: expected %v, got %v", accXGB/total, w.Weight)
			}
		default:
			t.Fatalf("unexpected model %s", w.ModelType)
		}
	}
}

func TestEvaluateAndWeightUnknownAsset(t *testing.T) {
	obs, preds := testStores()
	p := NewEvaluationPipeline(obs, preds, nil)

	_, err := p.EvaluateAndWeight(context.Background(), EvaluationParams{Assets: []string{"DOGEUSDT"}})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEvaluateAndWeightIdempotent(t *testing.T) {
	obs, preds := testStores()
	p := NewEvaluationPipeline(obs, preds, nil)
	params := EvaluationParams{Assets: []string{"BTCUSDT"}, Scope: domrepo.ScopeGlobal}

	first, err := p.EvaluateAndWeight(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.EvaluateAndWeight(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.ModelType != b.ModelType || a.Asset != b.Asset ||
			a.TotalPredicted != b.TotalPredicted || a.CorrectedPrediction != b.CorrectedPrediction ||
			a.Accuracy != b.Accuracy || a.Weight != b.Weight {
			t.Fatalf("runs differ at %d: %+v vs %+v", i, a, b)
		}
	}
}

func TestEvaluateAndWeightZeroPolicy(t *testing.T) {
	obs, preds := testStores()
	// tft predicts only the tied observation; every row is dropped by the join
	preds.predictions["BTCUSDT"] = append(preds.predictions["BTCUSDT"],
		models.Prediction{RawDataID: 4, Asset: "BTCUSDT", ModelType: "tft", Score: 0.9})
	p := NewEvaluationPipeline(obs, preds, nil)

	weights, err := p.EvaluateAndWeight(context.Background(), EvaluationParams{
		Assets:     []string{"BTCUSDT"},
		ZeroPolicy: domrepo.ZeroPolicyExclude,
	})
	if err != nil {
		t.Fatalf("exclude policy: unexpected error: %v", err)
	}
	for _, w := range weights {
		if w.ModelType == "tft" {
			t.Fatalf("tft must be excluded, got %+v", w)
		}
	}

	_, err = p.EvaluateAndWeight(context.Background(), EvaluationParams{
		Assets:     []string{"BTCUSDT"},
		ZeroPolicy: domrepo.ZeroPolicyError,
	})
	if !errors.Is(err, models.ErrDivisionByZero) {
		t.Fatalf("error policy: expected division by zero, got %v", err)
	}
}

func TestEvaluateAndWeightMultiAssetPerAssetScope(t *testing.T) {
	obs, preds := testStores()
	// second asset mirrors the first
	obs.windows["ETHUSDT"] = cloneWindow(obs.windows["BTCUSDT"], "ETHUSDT")
	preds.predictions["ETHUSDT"] = clonePredictions(preds.predictions["BTCUSDT"], "ETHUSDT")
	p := NewEvaluationPipeline(obs, preds, nil)

	weights, err := p.EvaluateAndWeight(context.Background(), EvaluationParams{
		Assets: []string{"BTCUSDT", "ETHUSDT"},
		Scope:  domrepo.ScopePerAsset,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sums := map[string]float64{}
	for _, w := range weights {
		sums[w.Asset] += w.Weight
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(sums))
	}
	for asset, sum := range sums {
		if !almostEqual(sum, 1, 1e-9) {
			t.Fatalf("asset %s weights must sum to 1, got %v", asset, sum)
		}
	}
}

func cloneWindow(in []models.RawObservation, asset string) []models.RawObservation {
	out := make([]models.RawObservation, len(in))
	for i, o := range in {
		o.Asset = asset
		out[i] = o
	}
	return out
}

func clonePredictions(in []models.Prediction, asset string) []models.Prediction {
	out := make([]models.Prediction, len(in))
	for i, p := range in {
		p.Asset = asset
		out[i] = p
	}
	return out
}
