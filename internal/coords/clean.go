package coords

// Status classifies the outcome of cleaning one coordinate pair. Every value
// other than StatusOK is a data condition reported back to the caller, never
// an error: a malformed row must not abort a batch.
type Status string

const (
	StatusOK            Status = "ok"
	StatusMissingLat    Status = "missing_lat"
	StatusMissingLon    Status = "missing_lon"
	StatusMissingLatLon Status = "missing_lat_lon"
	StatusInvalidLat    Status = "invalid_lat"
	StatusInvalidLon    Status = "invalid_lon"
	StatusOutOfRange    Status = "out_of_range"
)

// Result is the engine's sole output per input pair. Lat and Lon are set iff
// Status is StatusOK; Swapped, ScaleLat and ScaleLon are meaningful only then.
type Result struct {
	Lat      float64
	Lon      float64
	Status   Status
	Swapped  bool
	ScaleLat int
	ScaleLon int
}

// OK reports whether the pair produced a usable coordinate.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Corrected reports whether any scale or orientation fix was applied.
func (r Result) Corrected() bool {
	return r.OK() && (r.Swapped || r.ScaleLat > 0 || r.ScaleLon > 0)
}

// Cleaner reconciles raw latitude/longitude text against a bounding box.
// It is stateless and safe for concurrent use across rows.
type Cleaner struct {
	bounds Bounds
	maxExp int
}

// NewCleaner builds a cleaner for the given bounding box. maxExp caps the
// scale-correction search; values outside [0, MaxScaleExponent] fall back to
// MaxScaleExponent.
func NewCleaner(bounds Bounds, maxExp int) *Cleaner {
	if maxExp < 0 || maxExp > MaxScaleExponent {
		maxExp = MaxScaleExponent
	}
	return &Cleaner{bounds: bounds, maxExp: maxExp}
}

// candidate is one geometrically valid reconstruction of the input pair.
type candidate struct {
	score   int
	dist    float64
	swapped bool
	lat     float64
	lon     float64
	pLat    int
	pLon    int
}

// less orders candidates by the composite tie-break key: least total scale
// correction (a swap counts as one extra point), then proximity to the box
// center. Strictly smaller only; equal keys keep the earlier candidate so
// the enumeration order (not-swapped first, exponents ascending) decides.
func (c candidate) less(o candidate) bool {
	if c.score != o.score {
		return c.score < o.score
	}
	return c.dist < o.dist
}

// Clean turns one raw (latitude, longitude) text pair into a Result.
//
// Blank handling takes precedence over parsing, and a latitude parse failure
// is reported even when the longitude is unparsable too. Otherwise the
// cleaner searches both orientations crossed with all scale corrections for
// each axis and keeps the reconstruction with the smallest composite key.
func (c *Cleaner) Clean(rawLat, rawLon string) Result {
	latBlank := IsBlank(rawLat)
	lonBlank := IsBlank(rawLon)

	switch {
	case latBlank && lonBlank:
		return Result{Status: StatusMissingLatLon}
	case latBlank:
		return Result{Status: StatusMissingLat}
	case lonBlank:
		return Result{Status: StatusMissingLon}
	}

	latVal, latOK := ParseDecimal(rawLat)
	lonVal, lonOK := ParseDecimal(rawLon)
	if !latOK {
		return Result{Status: StatusInvalidLat}
	}
	if !lonOK {
		return Result{Status: StatusInvalidLon}
	}

	var best candidate
	found := false

	for _, swapped := range []bool{false, true} {
		latSrc, lonSrc := latVal, lonVal
		if swapped {
			latSrc, lonSrc = lonVal, latVal
		}

		for _, latCand := range ScaleCandidates(latSrc, c.maxExp) {
			if !c.bounds.Lat.Contains(latCand.Value) {
				continue
			}
			for _, lonCand := range ScaleCandidates(lonSrc, c.maxExp) {
				if !c.bounds.Lon.Contains(lonCand.Value) {
					continue
				}

				score := latCand.Exponent + lonCand.Exponent
				if swapped {
					score++
				}
				cand := candidate{
					score:   score,
					dist:    c.bounds.CenterDistance(latCand.Value, lonCand.Value),
					swapped: swapped,
					lat:     latCand.Value,
					lon:     lonCand.Value,
					pLat:    latCand.Exponent,
					pLon:    lonCand.Exponent,
				}
				if !found || cand.less(best) {
					best = cand
					found = true
				}
			}
		}
	}

	if !found {
		return Result{Status: StatusOutOfRange}
	}
	return Result{
		Lat:      best.lat,
		Lon:      best.lon,
		Status:   StatusOK,
		Swapped:  best.swapped,
		ScaleLat: best.pLat,
		ScaleLon: best.pLon,
	}
}
