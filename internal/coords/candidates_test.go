package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleCandidates(t *testing.T) {
	got := ScaleCandidates(-22175, MaxScaleExponent)
	require.Len(t, got, 7)

	assert.Equal(t, ScaleCandidate{Value: -22175, Exponent: 0}, got[0])
	assert.InDelta(t, -2217.5, got[1].Value, 1e-9)
	assert.InDelta(t, -22.175, got[3].Value, 1e-9)
	assert.InDelta(t, -0.022175, got[6].Value, 1e-9)

	for i, c := range got {
		assert.Equal(t, i, c.Exponent)
	}
}

func TestScaleCandidatesZeroExponentOnly(t *testing.T) {
	got := ScaleCandidates(1.5, 0)
	require.Len(t, got, 1)
	assert.Equal(t, ScaleCandidate{Value: 1.5, Exponent: 0}, got[0])
}

func TestIntervalContains(t *testing.T) {
	iv := Interval{Min: -35, Max: 6}
	assert.True(t, iv.Contains(-35)) // closed on both ends
	assert.True(t, iv.Contains(6))
	assert.True(t, iv.Contains(0))
	assert.False(t, iv.Contains(6.0001))
	assert.False(t, iv.Contains(-35.0001))
}

func TestBrazilBoundsCenter(t *testing.T) {
	b := BrazilBounds()
	assert.InDelta(t, -14.5, b.Lat.Center(), 1e-9)
	assert.InDelta(t, -52.5, b.Lon.Center(), 1e-9)
	assert.InDelta(t, 0, b.CenterDistance(-14.5, -52.5), 1e-9)
	assert.InDelta(t, 2, b.CenterDistance(-13.5, -51.5), 1e-9)
}
