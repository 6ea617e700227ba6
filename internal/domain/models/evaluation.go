package models

import "time"

// Direction is the realized class of a price step, encoded in the same class
// space the classifiers predict in: 1 when the next-older observation's price
// was strictly greater, 0 when it was strictly lower. Boundary rows and
// unchanged prices carry DirectionUndefined and never join downstream.
type Direction int8

const (
	DirectionUndefined Direction = -1
	DirectionSell      Direction = 0
	DirectionBuy       Direction = 1
)

// Defined reports whether the label can participate in an evaluation join.
func (d Direction) Defined() bool { return d == DirectionSell || d == DirectionBuy }

// String returns the trading-side name of the class.
func (d Direction) String() string {
	switch d {
	case DirectionSell:
		return "sell"
	case DirectionBuy:
		return "buy"
	default:
		return "undefined"
	}
}

// RawObservation is one scraped price row from the warehouse. Immutable once
// written upstream; identity is ID.
type RawObservation struct {
	ID               int64     `json:"id"`
	Asset            string    `json:"asset"`
	Price            float64   `json:"price"`
	ScrapedTimestamp time.Time `json:"scraped_timestamp"`
	ScrapedDate      time.Time `json:"scraped_date"`
}

// Label is the derived ground-truth class for one observation.
type Label struct {
	ID               int64
	Asset            string
	ScrapedTimestamp time.Time
	Direction        Direction
}

// Prediction is a stored classifier output for one observation.
// Identity is (RawDataID, ModelType). Score is the probability of class 1.
type Prediction struct {
	RawDataID          int64
	Asset              string
	ModelType          string
	Score              float64
	PredictedTimestamp time.Time
}

// EvaluatedPrediction pairs a labeled observation with one model's prediction.
type EvaluatedPrediction struct {
	RawDataID int64
	Asset     string
	ModelType string
	Score     float64
	Signal    Direction
	Direction Direction
	Correct   bool
}

// Result returns the evaluation outcome as stored by the original warehouse job.
func (e EvaluatedPrediction) Result() string {
	if e.Correct {
		return "correct"
	}
	return "wrong"
}

// ModelAccuracy aggregates evaluated predictions per (model, asset).
type ModelAccuracy struct {
	ModelType           string  `json:"model_type"`
	Asset               string  `json:"asset"`
	TotalPredicted      int     `json:"total_predicted"`
	CorrectedPrediction int     `json:"corrected_prediction"`
	Accuracy            float64 `json:"accuracy"`
}

// ModelWeight is a ModelAccuracy row with its normalized ensemble weight.
type ModelWeight struct {
	ModelType           string    `json:"model_type"`
	Asset               string    `json:"asset"`
	CorrectedPrediction int       `json:"corrected_prediction"`
	TotalPredicted      int       `json:"total_predicted"`
	Accuracy            float64   `json:"accuracy"`
	Weight              float64   `json:"weight"`
	ComputedAt          time.Time `json:"computed_at"`
}
