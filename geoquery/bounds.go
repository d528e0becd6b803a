package geoquery

import (
	"sort"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// Bound is one contiguous geohash string range. A circle never maps to a
// single prefix range, so queries fan out over several disjoint bounds.
type Bound struct {
	Start string
	End   string
}

// minCellDimensionKM is the smaller side of a geohash cell per precision.
// Odd precisions are square, even ones are twice as wide as tall.
var minCellDimensionKM = []float64{
	0,       // unused
	5000,    // 1
	625,     // 2
	156,     // 3
	19.5,    // 4
	4.89,    // 5
	0.61,    // 6
	0.153,   // 7
	0.0191,  // 8
	0.00477, // 9
}

// precisionForRadius picks the finest precision whose cells are still at
// least radius wide, so a 3x3 block around the center cell always covers the
// circle.
func precisionForRadius(radiusM float64) int {
	precision := 1
	for p := 2; p < len(minCellDimensionKM); p++ {
		if minCellDimensionKM[p]*1000 >= radiusM {
			precision = p
		}
	}
	return precision
}

// CoverCircle computes geohash range bounds covering a circle. The center
// cell and its eight neighbors are each turned into a prefix range; this
// over-approximates, so callers must exact-filter by true distance.
func CoverCircle(lat, lng, radiusM float64) []Bound {
	precision := precisionForRadius(radiusM)
	center := geohash.EncodeWithPrecision(lat, lng, precision)

	top := geohash.CalculateAdjacent(center, "top")
	bottom := geohash.CalculateAdjacent(center, "bottom")
	cells := []string{
		center,
		top,
		bottom,
		geohash.CalculateAdjacent(center, "left"),
		geohash.CalculateAdjacent(center, "right"),
		geohash.CalculateAdjacent(top, "left"),
		geohash.CalculateAdjacent(top, "right"),
		geohash.CalculateAdjacent(bottom, "left"),
		geohash.CalculateAdjacent(bottom, "right"),
	}

	seen := make(map[string]bool, len(cells))
	bounds := make([]Bound, 0, len(cells))
	for _, cell := range cells {
		if cell == "" || seen[cell] {
			continue
		}
		seen[cell] = true
		// "~" sorts after the whole geohash alphabet, so [cell, cell+"~"]
		// spans every hash extending this prefix
		bounds = append(bounds, Bound{Start: cell, End: cell + "~"})
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i].Start < bounds[j].Start })
	return bounds
}
