package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("\t\n"))
	assert.True(t, IsBlank("  ")) // non-breaking spaces
	assert.False(t, IsBlank("0"))
	assert.False(t, IsBlank(" x "))
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"plain", "-23.55", -23.55, true},
		{"comma separator", "-23,55", -23.55, true},
		{"positive sign", "+5.5", 5.5, true},
		{"integer", "-22175", -22175, true},
		{"internal spaces", "- 23 , 55", -23.55, true},
		{"nbsp inside", "-23 .55", -23.55, true},
		{"leading dot", ".5", 0.5, true},
		{"negative leading dot", "-.5", -0.5, true},
		{"surrounding text", "aprox. -23.55 graus", -23.55, true},
		{"degrees unit", "-46.63°W", -46.63, true},
		{"no number", "indisponível", 0, false},
		{"blank", "   ", 0, false},
		{"empty", "", 0, false},
		{"lone sign", "-", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecimal(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseDecimalEmbeddedFallbackTakesFirstNumber(t *testing.T) {
	got, ok := ParseDecimal("-22.9/-43.2")
	assert.True(t, ok)
	assert.InDelta(t, -22.9, got, 1e-9)
}
