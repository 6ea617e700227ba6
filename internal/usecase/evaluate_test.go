package usecase

import (
	"errors"
	"math"
	"testing"

	"EvalPull/internal/domain/models"
)

func TestSignalFromScoreRounding(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Direction
	}{
		{0, models.DirectionSell},
		{0.49, models.DirectionSell},
		{0.5, models.DirectionBuy}, // half rounds away from zero
		{0.51, models.DirectionBuy},
		{1, models.DirectionBuy},
	}
	for _, c := range cases {
		got, err := SignalFromScore(c.score)
		if err != nil {
			t.Fatalf("score %v: unexpected error %v", c.score, err)
		}
		if got != c.want {
			t.Fatalf("score %v: expected %v, got %v", c.score, c.want, got)
		}
	}
}

func TestSignalFromScoreOutOfRange(t *testing.T) {
	for _, score := range []float64{-0.1, 1.1, math.NaN()} {
		if _, err := SignalFromScore(score); !errors.Is(err, models.ErrDataQuality) {
			t.Fatalf("score %v: expected data quality error, got %v", score, err)
		}
	}
}

func TestJoinEvaluationsFanOutAndFilter(t *testing.T) {
	labels := []models.Label{
		{ID: 3, Asset: "BTCUSDT", Direction: models.DirectionBuy},
		{ID: 2, Asset: "BTCUSDT", Direction: models.DirectionUndefined},
		{ID: 1, Asset: "BTCUSDT", Direction: models.DirectionSell},
	}
	predictions := []models.Prediction{
		{RawDataID: 3, Asset: "BTCUSDT", ModelType: "lstm", Score: 0.9},
		{RawDataID: 3, Asset: "BTCUSDT", ModelType: "xgboost", Score: 0.2},
		{RawDataID: 2, Asset: "BTCUSDT", ModelType: "lstm", Score: 0.8}, // undefined label, dropped
		// id 1 has no prediction: label is computed but filtered
	}

	evals, err := JoinEvaluations(labels, predictions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evals) != 2 {
		t.Fatalf("expected 2 evaluated rows, got %d", len(evals))
	}
	for _, ev := range evals {
		if ev.RawDataID != 3 {
			t.Fatalf("unexpected row for id %d", ev.RawDataID)
		}
		switch ev.ModelType {
		case "lstm":
			if !ev.Correct || ev.Result() != "correct" {
				t.Fatalf("lstm should be correct: %+v", ev)
			}
		case "xgboost":
			if ev.Correct || ev.Result() != "wrong" {
				t.Fatalf("xgboost should be wrong: %+v", ev)
			}
		default:
			t.Fatalf("unexpected model %s", ev.ModelType)
		}
	}
}

func TestJoinEvaluationsOutOfRangeScoreSurfaces(t *testing.T) {
	labels := []models.Label{{ID: 1, Asset: "BTCUSDT", Direction: models.DirectionBuy}}
	predictions := []models.Prediction{{RawDataID: 1, Asset: "BTCUSDT", ModelType: "lstm", Score: 1.5}}

	if _, err := JoinEvaluations(labels, predictions); !errors.Is(err, models.ErrDataQuality) {
		t.Fatalf("expected data quality error, got %v", err)
	}
}

func TestJoinEvaluationsNoPredictions(t *testing.T) {
	labels := []models.Label{{ID: 1, Asset: "BTCUSDT", Direction: models.DirectionBuy}}
	evals, err := JoinEvaluations(labels, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evals) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(evals))
	}
}
