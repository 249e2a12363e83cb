package engine

import (
	"math"
	"strings"

	"github.com/Arkcutt12/calculadora-presupuestos-laser/config"
)

// thicknessToleranceMM absorbs text-to-number rounding in upstream
// thickness values.
const thicknessToleranceMM = 0.05

// FindMaterial looks up a catalog entry by name, thickness and color.
// Name and color are compared case-insensitively; thickness numerically
// within ±0.05 mm. Entries whose thickness is not numeric are skipped.
func FindMaterial(cfg *config.Config, material string, thicknessMM float64, color string) (*config.MaterialSpec, error) {
	for i := range cfg.Materials {
		m := &cfg.Materials[i]
		if !m.Thickness.Valid {
			continue
		}
		if !strings.EqualFold(m.Material, material) {
			continue
		}
		if !strings.EqualFold(m.Color, color) {
			continue
		}
		if math.Abs(m.Thickness.Value-thicknessMM) <= thicknessToleranceMM {
			return m, nil
		}
	}
	return nil, &MaterialNotFoundError{
		Material:  material,
		Thickness: thicknessMM,
		Color:     color,
		Available: cfg.AvailableMaterials(),
	}
}
