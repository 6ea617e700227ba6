package cache

import (
	"fmt"
	"strings"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// WeightsKey builds a cache key for one evaluation request. Every parameter
// that changes the result set is part of the key.
func WeightsKey(assets []string, lookbackDays, evaluationRange int, scope, zeroPolicy string) string {
	return fmt.Sprintf("weights:%s:%d:%d:%s:%s",
		strings.Join(assets, ","), lookbackDays, evaluationRange, scope, zeroPolicy)
}
