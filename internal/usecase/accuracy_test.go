package usecase

import (
	"testing"

	"EvalPull/internal/domain/models"
)

func evalRows(model, asset string, correct, wrong int) []models.EvaluatedPrediction {
	out := make([]models.EvaluatedPrediction, 0, correct+wrong)
	for i := 0; i < correct; i++ {
		out = append(out, models.EvaluatedPrediction{Asset: asset, ModelType: model, Correct: true})
	}
	for i := 0; i < wrong; i++ {
		out = append(out, models.EvaluatedPrediction{Asset: asset, ModelType: model, Correct: false})
	}
	return out
}

func TestAggregateAccuracy(t *testing.T) {
	rows := append(evalRows("lstm", "BTCUSDT", 8, 2), evalRows("xgboost", "BTCUSDT", 6, 4)...)

	accs, err := AggregateAccuracy(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accs) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(accs))
	}
	// deterministic order: asset then model_type
	if accs[0].ModelType != "lstm" || accs[1].ModelType != "xgboost" {
		t.Fatalf("unexpected ordering: %+v", accs)
	}
	if accs[0].TotalPredicted != 10 || accs[0].CorrectedPrediction != 8 || accs[0].Accuracy != 0.8 {
		t.Fatalf("lstm aggregate wrong: %+v", accs[0])
	}
	if accs[1].TotalPredicted != 10 || accs[1].CorrectedPrediction != 6 || accs[1].Accuracy != 0.6 {
		t.Fatalf("xgboost aggregate wrong: %+v", accs[1])
	}
}

func TestAggregateAccuracyAllWrongKept(t *testing.T) {
	accs, err := AggregateAccuracy(evalRows("lstm", "BTCUSDT", 0, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accs) != 1 {
		t.Fatalf("all-wrong model must not be dropped, got %d groups", len(accs))
	}
	if accs[0].Accuracy != 0 || accs[0].TotalPredicted != 5 {
		t.Fatalf("expected accuracy 0 of 5, got %+v", accs[0])
	}
}

func TestAggregateAccuracyBounds(t *testing.T) {
	rows := append(evalRows("a", "BTCUSDT", 3, 1), evalRows("b", "ETHUSDT", 0, 2)...)
	accs, err := AggregateAccuracy(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range accs {
		if a.CorrectedPrediction > a.TotalPredicted {
			t.Fatalf("correct exceeds total: %+v", a)
		}
		if a.Accuracy < 0 || a.Accuracy > 1 {
			t.Fatalf("accuracy out of bounds: %+v", a)
		}
	}
}

func TestAggregateAccuracyEmpty(t *testing.T) {
	accs, err := AggregateAccuracy(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accs) != 0 {
		t.Fatalf("expected no groups, got %d", len(accs))
	}
}
