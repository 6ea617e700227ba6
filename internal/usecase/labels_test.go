package usecase

import (
	"testing"
	"time"

	"EvalPull/internal/domain/models"
)

func windowOf(prices ...float64) []models.RawObservation {
	// build a newest-first window; prices are given oldest first
	base := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	out := make([]models.RawObservation, 0, len(prices))
	for i := len(prices) - 1; i >= 0; i-- {
		out = append(out, models.RawObservation{
			ID:               int64(i + 1),
			Asset:            "BTCUSDT",
			Price:            prices[i],
			ScrapedTimestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestLabelWindowDirections(t *testing.T) {
	// ascending time: (t1,100) (t2,98) (t3,98) (t4,101)
	labels := LabelWindow(windowOf(100, 98, 98, 101))

	// labels come back newest first: t4 t3 t2 t1
	want := []models.Direction{
		models.DirectionSell,      // t4: 98-101 < 0
		models.DirectionUndefined, // t3: 98-98 tie
		models.DirectionBuy,       // t2: 100-98 > 0
		models.DirectionUndefined, // t1: no older neighbor
	}
	if len(labels) != len(want) {
		t.Fatalf("expected %d labels, got %d", len(want), len(labels))
	}
	for i, w := range want {
		if labels[i].Direction != w {
			t.Fatalf("label %d: expected %v, got %v", i, w, labels[i].Direction)
		}
	}
}

func TestLabelWindowOldestAlwaysUndefined(t *testing.T) {
	labels := LabelWindow(windowOf(5, 10, 20))
	oldest := labels[len(labels)-1]
	if oldest.Direction != models.DirectionUndefined {
		t.Fatalf("oldest row must be undefined, got %v", oldest.Direction)
	}
}

func TestLabelWindowEmpty(t *testing.T) {
	labels := LabelWindow(nil)
	if len(labels) != 0 {
		t.Fatalf("expected no labels, got %d", len(labels))
	}
}

func TestLabelWindowSingle(t *testing.T) {
	labels := LabelWindow(windowOf(42))
	if len(labels) != 1 || labels[0].Direction != models.DirectionUndefined {
		t.Fatalf("single observation must yield one undefined label, got %+v", labels)
	}
}

func TestLabelIDsCoverFullWindow(t *testing.T) {
	labels := LabelWindow(windowOf(100, 98, 98, 101))
	ids := LabelIDs(labels)
	if len(ids) != 4 {
		t.Fatalf("expected 4 ids including undefined rows, got %d", len(ids))
	}
}
