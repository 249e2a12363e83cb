package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBudget(t *testing.T) {
	cfg := testConfig()
	res, err := Aggregate(cfg, testJob())
	require.NoError(t, err)

	out := FormatBudget(res, cfg.MarginPercent)

	assert.Contains(t, out, "PRESUPUESTO CORTE LASER")
	assert.Contains(t, out, "Material: Contrachapado 4mm light-wood")
	assert.Contains(t, out, "Margen (50%):")
	assert.Contains(t, out, "TOTAL:")
	assert.Contains(t, out, "Desglose por capas:")
	assert.Contains(t, out, "corte exterior")
	assert.Contains(t, out, "Corte - Velocidad: 100% (300 mm/s)")
}

func TestFormatMaterialNotFound(t *testing.T) {
	err := &MaterialNotFoundError{
		Material:  "Corcho",
		Thickness: 2,
		Color:     "Natural",
		Available: []string{"MDF 3mm Natural", "Contrachapado 4mm light-wood"},
	}

	out := FormatMaterialNotFound(err)

	assert.Contains(t, out, "Material no encontrado: Corcho 2mm Natural")
	assert.Contains(t, out, "Materiales disponibles:")
	assert.Contains(t, out, "  - MDF 3mm Natural")
}
