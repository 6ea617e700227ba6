package models

import "errors"

// Domain error kinds. The pipeline surfaces these to the caller untransformed;
// no retry or fallback substitution happens below the serving boundary.
var (
	// ErrNotFound means the asset is unknown to the upstream warehouse.
	ErrNotFound = errors.New("asset not found")

	// ErrDataQuality means an input row violated its contract, e.g. a
	// prediction score outside [0,1].
	ErrDataQuality = errors.New("data quality violation")

	// ErrDivisionByZero means an accuracy or weight denominator was zero:
	// a (model, asset) group with no evaluated predictions, or a
	// normalization scope whose total accuracy is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUpstreamUnavailable means the warehouse connection or query failed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
