package dedup

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultWindowMinutes = 60
	DefaultGridKm        = 1.0

	// km spanned by one degree at the equator
	kmPerDegree = 111.32
)

// TimeBucketKey floors t to the window boundary and encodes it as a sortable
// string (minutes are zeroed by the floor for the default 60-minute window).
// Reports straddling a boundary land in different buckets; accepted policy.
func TimeBucketKey(t time.Time, windowMinutes int) string {
	if windowMinutes <= 0 {
		windowMinutes = DefaultWindowMinutes
	}
	floored := t.UTC().Truncate(time.Duration(windowMinutes) * time.Minute)
	return floored.Format("200601021504")
}

// SpatialBucketKey collapses coordinates onto a gridKm-sized cell. The
// latitude delta is constant; the longitude delta widens by 1/cos(lat) so
// cells stay roughly square away from the equator.
func SpatialBucketKey(lat, lng, gridKm float64) string {
	if gridKm <= 0 {
		gridKm = DefaultGridKm
	}
	dLat := gridKm / kmPerDegree
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01 // polar degenerate cells
	}
	dLng := dLat / cosLat
	return fmt.Sprintf("%d_%d", int(math.Round(lat/dLat)), int(math.Round(lng/dLng)))
}

// GroupingKey is the canonical document ID: deterministic, so concurrent
// reporters in the same cell/hour race for the same document.
func GroupingKey(t time.Time, lat, lng float64, windowMinutes int, gridKm float64) string {
	return TimeBucketKey(t, windowMinutes) + "__" + SpatialBucketKey(lat, lng, gridKm)
}
