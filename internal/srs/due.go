package srs

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// DaysUntil rounds the distance to next up to whole days; past dates are <= 0.
func DaysUntil(next, now time.Time) int {
	return int(math.Ceil(float64(next.Sub(now)) / float64(day)))
}

func IsDueNow(next, now time.Time) bool {
	return !next.After(now)
}

// IsNearFuture reports whether next falls within NearFutureThreshold days.
func IsNearFuture(next, now time.Time) bool {
	return IsNearFutureWithin(next, now, NearFutureThreshold)
}

func IsNearFutureWithin(next, now time.Time, days int) bool {
	d := DaysUntil(next, now)
	return d > 0 && d <= days
}
