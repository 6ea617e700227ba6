package models

// Requests for evaluation HTTP endpoints. Defined in domain for consistency and reuse.

type WeightsRequest struct {
	Assets          string `query:"assets" json:"assets" validate:"required"`
	LookbackDays    int    `query:"lookback_days" json:"lookback_days" default:"1" validate:"gte=1,lte=90"`
	EvaluationRange int    `query:"evaluation_range" json:"evaluation_range" default:"15" validate:"gte=2,lte=1000"`
	Scope           string `query:"scope" json:"scope" default:"global" validate:"oneof=global per-asset"`
	ZeroPolicy      string `query:"zero_policy" json:"zero_policy" default:"exclude" validate:"oneof=exclude error"`
	Persist         bool   `query:"persist" json:"persist"`
}

type ObservationsRequest struct {
	Asset string `query:"asset" json:"asset" validate:"required"`
	Since string `query:"since" json:"since" validate:"required"`
	Limit int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=10000"`
}
