package engine

import "math"

// OperationKind identifies the laser operation a layer describes.
type OperationKind string

const (
	KindCutOutside     OperationKind = "cut_outside"
	KindCutInside      OperationKind = "cut_inside"
	KindEngraveOutline OperationKind = "engrave_outline"
	KindEngraveFill    OperationKind = "engrave_fill"
)

// referenceSpeedMMS is the feed rate at 100% speed.
const referenceSpeedMMS = 300.0

// Layer is one geometric operation extracted from a design.
type Layer struct {
	Name           string        `json:"name"`
	Kind           OperationKind `json:"type"`
	LengthM        float64       `json:"length_m"`
	AreaM2         float64       `json:"area_m2,omitempty"`
	HatchSpacingMM float64       `json:"hatch_spacing_mm,omitempty"`
}

// LayerBreakdown is the per-layer entry of a quote result.
type LayerBreakdown struct {
	Name    string        `json:"name"`
	Kind    OperationKind `json:"type"`
	LengthM float64       `json:"length_m"`
	AreaM2  float64       `json:"area_m2"`
	TimeMin float64       `json:"time_min"`
}

// speedMPerMin converts a speed percentage to meters per minute.
// 100% corresponds to 300 mm/s.
func speedMPerMin(speedPct float64) float64 {
	mmPerSec := (speedPct / 100.0) * referenceSpeedMMS
	return (mmPerSec * 60.0) / 1000.0
}

// EstimateLayerTime computes the machine time for one layer.
//
// Cut kinds divide path length by the cut feed rate and apply the cut
// overhead factor. Engrave outlines use the engrave feed rate with a fixed
// 1.08 overhead. Engrave fills convert the covered area to an equivalent
// raster length via the hatch spacing, then price it like an outline with
// the fill overhead factor.
//
// An unrecognized kind yields zero time and passes through unchanged; the
// frontend normalizer instead defaults unknown layer names to cut_outside.
// The two policies are deliberately different: the normalizer bills
// unrecognized upstream names conservatively, while the time model has no
// formula to apply to a kind it does not know.
func EstimateLayerTime(layer Layer, params ProcessParams) LayerBreakdown {
	name := layer.Name
	if name == "" {
		name = string(layer.Kind)
	}
	bd := LayerBreakdown{
		Name:    name,
		Kind:    layer.Kind,
		LengthM: round(layer.LengthM, 4),
		AreaM2:  round(layer.AreaM2, 4),
	}

	switch layer.Kind {
	case KindCutOutside, KindCutInside:
		v := speedMPerMin(params.Cut.SpeedPct)
		if v > 0 {
			bd.TimeMin = round((layer.LengthM/v)*params.Cut.OverheadFactor, 3)
		}

	case KindEngraveOutline:
		v := speedMPerMin(params.Engrave.SpeedPct)
		if v > 0 {
			bd.TimeMin = round((layer.LengthM/v)*outlineOverheadFactor, 3)
		}

	case KindEngraveFill:
		spacing := layer.HatchSpacingMM
		if spacing <= 0 {
			spacing = params.Engrave.HatchSpacingMM
		}
		if spacing <= 0 {
			spacing = defaultHatchSpacingMM
		}
		totalLengthM := layer.AreaM2 / (spacing / 1000.0)
		bd.LengthM = round(totalLengthM, 4)
		v := speedMPerMin(params.Engrave.SpeedPct)
		if v > 0 {
			bd.TimeMin = round((totalLengthM/v)*params.Engrave.FillOverheadFactor, 3)
		}
	}

	return bd
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
