package coords

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrazilCleaner() *Cleaner {
	return NewCleaner(BrazilBounds(), MaxScaleExponent)
}

func TestCleanBlankPrecedence(t *testing.T) {
	c := newBrazilCleaner()

	assert.Equal(t, StatusMissingLatLon, c.Clean("", "").Status)
	assert.Equal(t, StatusMissingLatLon, c.Clean("  ", " ").Status)
	assert.Equal(t, StatusMissingLat, c.Clean("", "-46.63").Status)
	assert.Equal(t, StatusMissingLon, c.Clean("-23.55", "").Status)

	// Blank beats unparsable on the other axis.
	assert.Equal(t, StatusMissingLat, c.Clean("", "not a number").Status)
}

func TestCleanInvalidOrder(t *testing.T) {
	c := newBrazilCleaner()

	assert.Equal(t, StatusInvalidLat, c.Clean("abc", "-46.63").Status)
	assert.Equal(t, StatusInvalidLon, c.Clean("-23.55", "abc").Status)
	// Latitude failure wins when both are unparsable.
	assert.Equal(t, StatusInvalidLat, c.Clean("abc", "def").Status)
}

func TestCleanWellFormedPair(t *testing.T) {
	c := newBrazilCleaner()

	res := c.Clean("-23.55", "-46.63")
	require.Equal(t, StatusOK, res.Status)
	assert.InDelta(t, -23.55, res.Lat, 1e-9)
	assert.InDelta(t, -46.63, res.Lon, 1e-9)
	assert.False(t, res.Swapped)
	assert.Equal(t, 0, res.ScaleLat)
	assert.Equal(t, 0, res.ScaleLon)
	assert.False(t, res.Corrected())
}

func TestCleanCommaDecimalSeparator(t *testing.T) {
	c := newBrazilCleaner()

	res := c.Clean("-23,55", "-46,63")
	require.Equal(t, StatusOK, res.Status)
	assert.InDelta(t, -23.55, res.Lat, 1e-9)
	assert.InDelta(t, -46.63, res.Lon, 1e-9)
	assert.False(t, res.Swapped)
	assert.Equal(t, 0, res.ScaleLat)
	assert.Equal(t, 0, res.ScaleLon)
}

func TestCleanScaleCorrection(t *testing.T) {
	c := newBrazilCleaner()

	res := c.Clean("-22175", "-4312")
	require.Equal(t, StatusOK, res.Status)
	assert.InDelta(t, -22.175, res.Lat, 1e-9)
	assert.InDelta(t, -43.12, res.Lon, 1e-9)
	assert.Equal(t, 3, res.ScaleLat)
	assert.Equal(t, 2, res.ScaleLon)
	assert.False(t, res.Swapped)
	assert.True(t, res.Corrected())
}

func TestCleanSwapDetection(t *testing.T) {
	c := newBrazilCleaner()

	res := c.Clean("-46.63", "-23.55")
	require.Equal(t, StatusOK, res.Status)
	assert.True(t, res.Swapped)
	assert.InDelta(t, -23.55, res.Lat, 1e-9)
	assert.InDelta(t, -46.63, res.Lon, 1e-9)
	assert.Equal(t, 0, res.ScaleLat)
	assert.Equal(t, 0, res.ScaleLon)
}

func TestCleanOutOfRange(t *testing.T) {
	c := newBrazilCleaner()

	res := c.Clean("40.0", "-46.63")
	assert.Equal(t, StatusOutOfRange, res.Status)
	assert.Zero(t, res.Lat)
	assert.Zero(t, res.Lon)
	assert.False(t, res.OK())
}

func TestCleanTieBreakPrefersNotSwapped(t *testing.T) {
	c := newBrazilCleaner()

	// -33 and -34 are valid in both slots, so both orientations survive at
	// zero scale; the swap penalty must decide.
	res := c.Clean("-33", "-34")
	require.Equal(t, StatusOK, res.Status)
	assert.False(t, res.Swapped)
	assert.InDelta(t, -33, res.Lat, 1e-9)
	assert.InDelta(t, -34, res.Lon, 1e-9)

	res = c.Clean("-34", "-33")
	require.Equal(t, StatusOK, res.Status)
	assert.False(t, res.Swapped)
	assert.InDelta(t, -34, res.Lat, 1e-9)
	assert.InDelta(t, -33, res.Lon, 1e-9)
}

func TestCleanTieBreakPrefersLeastScaling(t *testing.T) {
	c := newBrazilCleaner()

	// -3.2 is valid as-is for latitude; dividing further would still land in
	// range, but exponent 0 must win.
	res := c.Clean("-3.2", "-51.9")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, 0, res.ScaleLat)
	assert.Equal(t, 0, res.ScaleLon)
	assert.InDelta(t, -3.2, res.Lat, 1e-9)
}

func TestCleanIdempotence(t *testing.T) {
	c := newBrazilCleaner()

	inputs := [][2]string{
		{"-23.55", "-46.63"},
		{"-22175", "-4312"},
		{"-46.63", "-23.55"},
		{"-3,117", "-60,025"},
	}
	for _, in := range inputs {
		first := c.Clean(in[0], in[1])
		require.Equal(t, StatusOK, first.Status, "input %v", in)

		again := c.Clean(
			strconv.FormatFloat(first.Lat, 'f', -1, 64),
			strconv.FormatFloat(first.Lon, 'f', -1, 64),
		)
		require.Equal(t, StatusOK, again.Status, "input %v", in)
		assert.False(t, again.Swapped)
		assert.Equal(t, 0, again.ScaleLat)
		assert.Equal(t, 0, again.ScaleLon)
		assert.InDelta(t, first.Lat, again.Lat, 1e-9)
		assert.InDelta(t, first.Lon, again.Lon, 1e-9)
	}
}

func TestCleanDeterminism(t *testing.T) {
	c := newBrazilCleaner()

	first := c.Clean("-33", "-34")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, c.Clean("-33", "-34"))
	}
}

func TestCleanSyntheticBounds(t *testing.T) {
	// A small synthetic box exercises the engine independently of the
	// Brazilian constants.
	b := Bounds{
		Lat: Interval{Min: 10, Max: 20},
		Lon: Interval{Min: 100, Max: 110},
	}
	c := NewCleaner(b, MaxScaleExponent)

	res := c.Clean("15", "105")
	require.Equal(t, StatusOK, res.Status)
	assert.False(t, res.Swapped)

	// 1500 needs two divisions by ten to reach 15.
	res = c.Clean("1500", "105")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, 2, res.ScaleLat)
	assert.InDelta(t, 15, res.Lat, 1e-9)

	// Swap is the only valid reading here.
	res = c.Clean("105", "15")
	require.Equal(t, StatusOK, res.Status)
	assert.True(t, res.Swapped)
	assert.InDelta(t, 15, res.Lat, 1e-9)
	assert.InDelta(t, 105, res.Lon, 1e-9)

	res = c.Clean("50", "105")
	assert.Equal(t, StatusOutOfRange, res.Status)
}
