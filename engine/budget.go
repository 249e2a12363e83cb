package engine

import (
	"fmt"
	"strconv"

	"github.com/Arkcutt12/calculadora-presupuestos-laser/config"
)

// Job is the canonical calculation input. JSON keys follow the historical
// job documents.
type Job struct {
	Material       string         `json:"material"`
	Thickness      float64        `json:"grosor"`
	Color          string         `json:"color"`
	MaterialAreaM2 float64        `json:"material_area_m2"`
	Layers         []Layer        `json:"layers"`
	Client         map[string]any `json:"cliente,omitempty"`
	RequestNumber  string         `json:"numero_solicitud,omitempty"`

	// Frontend carries upstream metadata when the job came through the
	// normalizer; echoed on the result for the document renderer.
	Frontend *FrontendInfo `json:"frontend_info,omitempty"`
}

// FrontendInfo is the customer/request metadata passed through unchanged
// for the document renderer.
type FrontendInfo struct {
	Client        map[string]any `json:"Cliente"`
	Order         map[string]any `json:"Pedido"`
	RequestNumber string         `json:"numero_solicitud"`
	TotalLengthMM any            `json:"longitud_total_mm"`
	FileQuality   map[string]any `json:"calidad_archivo"`
	Pickup        map[string]any `json:"recogida"`
	Urgent        bool           `json:"urgente"`
}

// ProcessDisplay is one operation's parameter set formatted for display.
type ProcessDisplay struct {
	Speed        string `json:"velocidad"`
	Power        string `json:"potencia"`
	Air          string `json:"aire"`
	HatchSpacing string `json:"hatch_spacing_mm,omitempty"`
}

// QuoteResult is the output of one aggregation. Monetary values are rounded
// to 2 decimals at this boundary, not during accumulation.
type QuoteResult struct {
	Material       *config.MaterialSpec      `json:"material"`
	CuttingTimeMin float64                   `json:"tiempo_corte_minutos"`
	CuttingCost    float64                   `json:"coste_corte"`
	MaterialCost   float64                   `json:"coste_material"`
	Subtotal       float64                   `json:"subtotal"`
	Margin         float64                   `json:"margen_beneficio"`
	Total          float64                   `json:"total"`
	Layers         []LayerBreakdown          `json:"layers"`
	ProcessParams  map[string]ProcessDisplay `json:"parametros_corte"`
	Frontend       *FrontendInfo             `json:"frontend_info,omitempty"`
}

// Aggregate computes a full quote for one job against a configuration
// snapshot: material lookup, per-layer times in input order, cost
// aggregation and margin.
func Aggregate(cfg *config.Config, job Job) (*QuoteResult, error) {
	mat, err := FindMaterial(cfg, job.Material, job.Thickness, job.Color)
	if err != nil {
		return nil, err
	}

	params := ResolveProcessParams(mat)

	var totalTime float64
	breakdown := make([]LayerBreakdown, 0, len(job.Layers))
	for _, layer := range job.Layers {
		bd := EstimateLayerTime(layer, params)
		breakdown = append(breakdown, bd)
		totalTime += bd.TimeMin
	}

	cuttingCost := totalTime * cfg.RatePerMinute
	materialCost := sheetCost(job.MaterialAreaM2, mat)

	subtotal := cuttingCost + materialCost
	margin := subtotal * (cfg.MarginPercent / 100.0)
	total := subtotal + margin

	return &QuoteResult{
		Material:       mat,
		CuttingTimeMin: round(totalTime, 2),
		CuttingCost:    round(cuttingCost, 2),
		MaterialCost:   materialCost,
		Subtotal:       round(subtotal, 2),
		Margin:         round(margin, 2),
		Total:          round(total, 2),
		Layers:         breakdown,
		ProcessParams:  displayParams(params),
		Frontend:       job.Frontend,
	}, nil
}

// sheetCost prices material usage as a fraction of a sheet. Usage is
// deliberately not rounded up to whole sheets.
func sheetCost(areaM2 float64, mat *config.MaterialSpec) float64 {
	if mat.SheetAreaM2 <= 0 {
		return 0
	}
	sheets := areaM2 / mat.SheetAreaM2
	return round(sheets*mat.SheetPrice, 2)
}

func displayParams(p ProcessParams) map[string]ProcessDisplay {
	return map[string]ProcessDisplay{
		"cut": {
			Speed: fmtSpeed(p.Cut.SpeedPct),
			Power: fmtNum(p.Cut.PowerPct) + "%",
			Air:   fmtNum(p.Cut.AirBar) + " bar",
		},
		"engrave": {
			Speed:        fmtSpeed(p.Engrave.SpeedPct),
			Power:        fmtNum(p.Engrave.PowerPct) + "%",
			Air:          fmtNum(p.Engrave.AirBar) + " bar",
			HatchSpacing: fmtNum(p.Engrave.HatchSpacingMM) + " mm",
		},
	}
}

func fmtSpeed(speedPct float64) string {
	mms := round((speedPct/100.0)*referenceSpeedMMS, 1)
	return fmt.Sprintf("%s%% (%s mm/s)", fmtNum(speedPct), fmtNum(mms))
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
