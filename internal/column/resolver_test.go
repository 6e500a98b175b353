package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"latitude", "latitud", 1},
		{"municipio", "municipios", 1},
		{"lat", "lon", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestResolverExactNormalizedMatch(t *testing.T) {
	r := NewResolver([]string{"Latitude", "Longitude"}, DefaultOptions())

	col, ok := r.Resolve("latitude")
	require.True(t, ok)
	assert.Equal(t, "Latitude", col)

	col, ok = r.Resolve("LONGITUDE")
	require.True(t, ok)
	assert.Equal(t, "Longitude", col)
}

func TestResolverFuzzyMatch(t *testing.T) {
	r := NewResolver([]string{"Operacao Noturna", "Municipio", "UF"}, DefaultOptions())

	// One accent-free edit away after normalization.
	col, ok := r.Resolve("Operação Noturnas")
	require.True(t, ok)
	assert.Equal(t, "Operacao Noturna", col)
}

func TestResolverRejectsDistantMatch(t *testing.T) {
	r := NewResolver([]string{"Latitude"}, DefaultOptions())

	_, ok := r.Resolve("xyz_unrelated_very_long_label")
	assert.False(t, ok)
}

func TestResolverShortLabelThresholdIsLoose(t *testing.T) {
	// Known edge case: a 3-character label has threshold max(2, 0) = 2,
	// nearly its own length, so "lat" reaches "Latitude"-like short names
	// aggressively. Documented behavior, tunable via Options.
	r := NewResolver([]string{"lot"}, DefaultOptions())
	col, ok := r.Resolve("lat")
	require.True(t, ok)
	assert.Equal(t, "lot", col)

	strict := NewResolver([]string{"lot"}, Options{Floor: 0, Divisor: 5})
	_, ok = strict.Resolve("lat")
	assert.False(t, ok)
}

func TestResolverEmptyInputs(t *testing.T) {
	r := NewResolver(nil, DefaultOptions())
	_, ok := r.Resolve("anything")
	assert.False(t, ok)

	r = NewResolver([]string{"Nome"}, DefaultOptions())
	_, ok = r.Resolve("")
	assert.False(t, ok)
	_, ok = r.Resolve("??!")
	assert.False(t, ok)
}

func TestResolveFirst(t *testing.T) {
	r := NewResolver([]string{"Lat Geo Point", "Long Geo Point", "Nome"}, DefaultOptions())

	col, ok := r.ResolveFirst([]string{"latgeopoint", "latitude", "lat"})
	require.True(t, ok)
	assert.Equal(t, "Lat Geo Point", col)

	_, ok = r.ResolveFirst([]string{"elevationfield", "altitudemeters"})
	assert.False(t, ok)
}

func TestResolverDuplicateNormalizedNamesFirstWins(t *testing.T) {
	r := NewResolver([]string{"Município", "MUNICIPIO"}, DefaultOptions())
	col, ok := r.Resolve("municipio")
	require.True(t, ok)
	assert.Equal(t, "Município", col)
}
