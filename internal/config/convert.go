package config

import (
	"github.com/aerodados/aeromapa/internal/column"
	"github.com/aerodados/aeromapa/internal/coords"
)

// Bounds converts the configured box into the engine's value type.
func (b BoundsConfig) Bounds() coords.Bounds {
	return coords.Bounds{
		Lat: coords.Interval{Min: b.LatMin, Max: b.LatMax},
		Lon: coords.Interval{Min: b.LonMin, Max: b.LonMax},
	}
}

// Options converts the configured resolver thresholds.
func (r ResolverConfig) Options() column.Options {
	return column.Options{Floor: r.ThresholdFloor, Divisor: r.ThresholdDivisor}
}
