// Package dataset describes the known ANAC aerodrome listings and how to
// recognize them from file names.
package dataset

import (
	"path/filepath"
	"strings"

	"github.com/aerodados/aeromapa/internal/column"
)

// Config describes one aerodrome dataset: how to recognize its files and how
// to present its records on the map.
type Config struct {
	Key              string
	Label            string
	FilenameHints    []string
	PopupFields      []string
	DefaultColor     string
	AltColor         string
	NightOpsField    string
	InterdictedField string
	InterdictedToken string
}

// Registry holds the built-in dataset configs, in match priority order.
var Registry = []Config{
	{
		Key:           "privados",
		Label:         "Aerodromos Privados",
		FilenameHints: []string{"aerodromosprivados", "privados"},
		PopupFields: []string{
			"Nome",
			"Município",
			"UF",
			"Operação Diurna",
			"Operação Noturna",
			"Superfície 1",
			"Link Portaria",
		},
		DefaultColor:  "#C46A4A", // terracota
		AltColor:      "#00B6C7", // ciano
		NightOpsField: "Operação Noturna",
	},
	{
		Key:           "publicos",
		Label:         "Aerodromos Publicos",
		FilenameHints: []string{"aerodromospublicos", "publicos"},
		PopupFields: []string{
			"Nome",
			"Município",
			"UF",
			"Operação Diurna",
			"Operação Noturna",
			"Situação",
			"Link Portaria",
		},
		DefaultColor:     "#F4C430", // amarelo
		AltColor:         "#7E57C2", // violeta
		NightOpsField:    "Operação Noturna",
		InterdictedField: "Situação",
		InterdictedToken: "Interditado",
	},
}

// Match finds the registry config whose filename hints appear in the
// normalized stem of path. The boolean is false for unrecognized files.
func Match(path string) (Config, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	norm := column.Normalize(stem)
	for _, cfg := range Registry {
		for _, hint := range cfg.FilenameHints {
			if hint != "" && strings.Contains(norm, hint) {
				return cfg, true
			}
		}
	}
	return Config{}, false
}

// Generic builds a fallback config for files that match no registry entry,
// keyed by the file stem.
func Generic(path string) Config {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Config{
		Key:           strings.ToLower(stem),
		Label:         stem,
		PopupFields:   []string{"UF"},
		DefaultColor:  "#4C78A8",
		AltColor:      "#4C78A8",
		NightOpsField: "Operação Noturna",
	}
}
