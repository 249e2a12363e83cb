package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Arkcutt12/calculadora-presupuestos-laser/config"
)

func TestResolveProcessParams_MaterialValues(t *testing.T) {
	mat := &config.MaterialSpec{
		Material:      "MDF",
		CutSpeedPct:   config.Num(40),
		LaserPowerPct: config.Num(85),
		AirBar:        config.Num(0.6),
	}

	p := ResolveProcessParams(mat)

	assert.Equal(t, 40.0, p.Cut.SpeedPct)
	assert.Equal(t, 85.0, p.Cut.PowerPct)
	assert.Equal(t, 0.6, p.Cut.AirBar)
	assert.Equal(t, 1.05, p.Cut.OverheadFactor)
}

func TestResolveProcessParams_NonNumericSpeedFallsBack(t *testing.T) {
	mat := &config.MaterialSpec{Material: "MDF"} // no numeric fields

	p := ResolveProcessParams(mat)

	assert.Equal(t, 25.0, p.Cut.SpeedPct)
	assert.Equal(t, 90.0, p.Cut.PowerPct)
	assert.Equal(t, 0.8, p.Cut.AirBar)
}

func TestResolveProcessParams_EngraveDefaultsIgnoreCutSpeed(t *testing.T) {
	mat := &config.MaterialSpec{Material: "MDF", CutSpeedPct: config.Num(1200)}

	p := ResolveProcessParams(mat)

	// engrave parameters are fixed defaults, never the material's cut speed
	assert.Equal(t, 60.0, p.Engrave.SpeedPct)
	assert.Equal(t, 30.0, p.Engrave.PowerPct)
	assert.Equal(t, 0.4, p.Engrave.AirBar)
	assert.Equal(t, 0.25, p.Engrave.HatchSpacingMM)
	assert.Equal(t, 1.2, p.Engrave.FillOverheadFactor)
}

func TestResolveProcessParams_PartialOverrides(t *testing.T) {
	speed := 55.0
	hatch := 0.1
	mat := &config.MaterialSpec{
		Material:      "Metacrilato",
		CutSpeedPct:   config.Num(40),
		LaserPowerPct: config.Num(80),
		ProcessParams: &config.ProcessOverrides{
			Cut:     &config.CutOverride{SpeedPct: &speed},
			Engrave: &config.EngraveOverride{HatchSpacingMM: &hatch},
		},
	}

	p := ResolveProcessParams(mat)

	// overridden fields change
	assert.Equal(t, 55.0, p.Cut.SpeedPct)
	assert.Equal(t, 0.1, p.Engrave.HatchSpacingMM)
	// everything else keeps its resolved default
	assert.Equal(t, 80.0, p.Cut.PowerPct)
	assert.Equal(t, 60.0, p.Engrave.SpeedPct)
	assert.Equal(t, 1.2, p.Engrave.FillOverheadFactor)
}
