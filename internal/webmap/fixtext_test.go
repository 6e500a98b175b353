package webmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixTextMojibake(t *testing.T) {
	// "São Paulo" read once too often as latin1.
	assert.Equal(t, "São Paulo", FixText("SÃ£o Paulo"))
	assert.Equal(t, "Operação", FixText("OperaÃ§Ã£o"))
}

func TestFixTextCleanInputUnchanged(t *testing.T) {
	assert.Equal(t, "Campo de Marte", FixText("  Campo de Marte "))
	assert.Equal(t, "Brasília", FixText("Brasília"))
}

func TestFixTextDropsReplacementRune(t *testing.T) {
	assert.Equal(t, "Maring", FixText("Maring�"))
}

func TestHasVFRIFR(t *testing.T) {
	assert.True(t, HasVFRIFR("VFR/IFR"))
	assert.True(t, HasVFRIFR("vfr / ifr diurna"))
	assert.True(t, HasVFRIFR("  VFR/IFR  "))
	assert.False(t, HasVFRIFR("VFR"))
	assert.False(t, HasVFRIFR(""))
}

func TestHasToken(t *testing.T) {
	assert.True(t, HasToken("Aberto - Interditado parcialmente", "Interditado"))
	assert.True(t, HasToken("INTERDITADO", "interditado"))
	assert.False(t, HasToken("Aberto", "Interditado"))
	assert.False(t, HasToken("Aberto", ""))
}
