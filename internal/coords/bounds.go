package coords

import "math"

// Interval is a closed range; both endpoints are valid values.
type Interval struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the interval, endpoints included.
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

// Center returns the interval midpoint.
func (i Interval) Center() float64 {
	return (i.Min + i.Max) / 2
}

// Bounds is the geographic bounding box that defines a plausible coordinate.
// It is a value type so tests can run the engine against synthetic boxes.
type Bounds struct {
	Lat Interval
	Lon Interval
}

// BrazilBounds covers the Brazilian territory with margin.
func BrazilBounds() Bounds {
	return Bounds{
		Lat: Interval{Min: -35.0, Max: 6.0},
		Lon: Interval{Min: -75.0, Max: -30.0},
	}
}

// CenterDistance returns the Manhattan distance from (lat, lon) to the box
// center, used as the final tie-break between otherwise equal candidates.
func (b Bounds) CenterDistance(lat, lon float64) float64 {
	return math.Abs(lat-b.Lat.Center()) + math.Abs(lon-b.Lon.Center())
}
