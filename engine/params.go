package engine

import "github.com/Arkcutt12/calculadora-presupuestos-laser/config"

// Built-in process defaults. Engrave defaults are fixed values, never
// derived from the material's cut speed.
const (
	defaultCutSpeedPct = 25
	defaultCutPowerPct = 90
	defaultCutAirBar   = 0.8
	cutOverheadFactor  = 1.05

	defaultEngraveSpeedPct    = 60
	defaultEngravePowerPct    = 30
	defaultEngraveAirBar      = 0.4
	defaultHatchSpacingMM     = 0.25
	defaultFillOverheadFactor = 1.2

	outlineOverheadFactor = 1.08
)

// CutParams are the resolved cut-operation parameters for one material.
type CutParams struct {
	SpeedPct       float64
	PowerPct       float64
	AirBar         float64
	OverheadFactor float64
}

// EngraveParams are the resolved engrave-operation parameters.
type EngraveParams struct {
	SpeedPct           float64
	PowerPct           float64
	AirBar             float64
	HatchSpacingMM     float64
	FillOverheadFactor float64
}

// ProcessParams bundle the parameters for every operation kind. Derived per
// calculation from a MaterialSpec; never mutated afterwards.
type ProcessParams struct {
	Cut     CutParams
	Engrave EngraveParams
}

// ResolveProcessParams builds the parameter set for a material: catalog
// defaults first, then any per-operation overrides the entry carries.
// Overrides are partial; only the supplied fields replace the defaults.
func ResolveProcessParams(mat *config.MaterialSpec) ProcessParams {
	p := ProcessParams{
		Cut: CutParams{
			SpeedPct:       defaultCutSpeedPct,
			PowerPct:       defaultCutPowerPct,
			AirBar:         defaultCutAirBar,
			OverheadFactor: cutOverheadFactor,
		},
		Engrave: EngraveParams{
			SpeedPct:           defaultEngraveSpeedPct,
			PowerPct:           defaultEngravePowerPct,
			AirBar:             defaultEngraveAirBar,
			HatchSpacingMM:     defaultHatchSpacingMM,
			FillOverheadFactor: defaultFillOverheadFactor,
		},
	}

	if mat.CutSpeedPct.Valid {
		p.Cut.SpeedPct = mat.CutSpeedPct.Value
	}
	if mat.LaserPowerPct.Valid {
		p.Cut.PowerPct = mat.LaserPowerPct.Value
	}
	if mat.AirBar.Valid {
		p.Cut.AirBar = mat.AirBar.Value
	}

	if pp := mat.ProcessParams; pp != nil {
		if c := pp.Cut; c != nil {
			setIf(&p.Cut.SpeedPct, c.SpeedPct)
			setIf(&p.Cut.PowerPct, c.PowerPct)
			setIf(&p.Cut.AirBar, c.AirBar)
			setIf(&p.Cut.OverheadFactor, c.OverheadFactor)
		}
		if e := pp.Engrave; e != nil {
			setIf(&p.Engrave.SpeedPct, e.SpeedPct)
			setIf(&p.Engrave.PowerPct, e.PowerPct)
			setIf(&p.Engrave.AirBar, e.AirBar)
			setIf(&p.Engrave.HatchSpacingMM, e.HatchSpacingMM)
			setIf(&p.Engrave.FillOverheadFactor, e.FillOverheadFactor)
		}
	}

	return p
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
