package repository

// Scope controls which ModelAccuracy rows normalize together.
type Scope string

const (
	// ScopeGlobal sums accuracy across every row in the run regardless of
	// asset. This is the reference behavior; with multiple assets the
	// per-asset weights then do not sum to 1.
	ScopeGlobal Scope = "global"
	// ScopePerAsset normalizes each asset's models independently.
	ScopePerAsset Scope = "per-asset"
)

// IsValidScope returns true if s is a supported normalization scope.
func IsValidScope(s Scope) bool {
	switch s {
	case ScopeGlobal, ScopePerAsset:
		return true
	default:
		return false
	}
}

// DefaultScope returns the default normalization scope.
func DefaultScope() Scope { return ScopeGlobal }

// NormalizeScope converts a raw string to a valid scope (or default).
func NormalizeScope(s string) Scope {
	if s == "" {
		return DefaultScope()
	}
	sc := Scope(s)
	if IsValidScope(sc) {
		return sc
	}
	return DefaultScope()
}

// ZeroPolicy decides what happens to a (model, asset) pair whose predictions
// all fell outside the evaluable label set.
type ZeroPolicy string

const (
	// ZeroPolicyExclude drops the pair from the weight computation.
	ZeroPolicyExclude ZeroPolicy = "exclude"
	// ZeroPolicyError surfaces the pair as a division-by-zero error.
	ZeroPolicyError ZeroPolicy = "error"
)

// NormalizeZeroPolicy converts a raw string to a valid policy (or exclude).
func NormalizeZeroPolicy(s string) ZeroPolicy {
	if ZeroPolicy(s) == ZeroPolicyError {
		return ZeroPolicyError
	}
	return ZeroPolicyExclude
}
