package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
)

// FlexFloat is a numeric field that tolerates the free-text values the
// historical configuration documents carry ("4", "no especificado", 3.5).
// Valid is false when the field was absent or not parseable as a number.
type FlexFloat struct {
	Value float64
	Valid bool
}

func Num(v float64) FlexFloat {
	return FlexFloat{Value: v, Valid: true}
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	f.Value = 0
	f.Valid = false

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		f.Value = num
		f.Valid = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// null, objects, arrays: treated as absent
		return nil
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		f.Value = v
		f.Valid = true
	}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// CutOverride carries per-material cut parameter overrides. Only the fields
// present in the document replace the resolved defaults.
type CutOverride struct {
	SpeedPct       *float64 `json:"speed_pct,omitempty"`
	PowerPct       *float64 `json:"power_pct,omitempty"`
	AirBar         *float64 `json:"air_bar,omitempty"`
	OverheadFactor *float64 `json:"overhead_factor,omitempty"`
}

// EngraveOverride carries per-material engrave parameter overrides.
type EngraveOverride struct {
	SpeedPct           *float64 `json:"speed_pct,omitempty"`
	PowerPct           *float64 `json:"power_pct,omitempty"`
	AirBar             *float64 `json:"air_bar,omitempty"`
	HatchSpacingMM     *float64 `json:"hatch_spacing_mm,omitempty"`
	FillOverheadFactor *float64 `json:"fill_overhead_factor,omitempty"`
}

type ProcessOverrides struct {
	Cut     *CutOverride     `json:"cut,omitempty"`
	Engrave *EngraveOverride `json:"engrave,omitempty"`
}

// SheetDimensions are the physical sheet dimensions some catalog entries
// carry alongside the sheet area.
type SheetDimensions struct {
	WidthMM  float64 `json:"ancho"`
	HeightMM float64 `json:"alto"`
}

// MaterialSpec is one catalog entry. The JSON keys are fixed by the legacy
// configuration documents and must not change.
type MaterialSpec struct {
	Material      string            `json:"material"`
	Thickness     FlexFloat         `json:"grosor"`
	Color         string            `json:"color"`
	SheetPrice    float64           `json:"precio_plancha"`
	SheetAreaM2   float64           `json:"tamaño_plancha"`
	SheetDims     *SheetDimensions  `json:"dimensiones_plancha_mm,omitempty"`
	CutSpeedPct   FlexFloat         `json:"velocidad_corte"`
	LaserPowerPct FlexFloat         `json:"potencia_laser"`
	AirBar        FlexFloat         `json:"fuerza_aire"`
	ProcessParams *ProcessOverrides `json:"process_params,omitempty"`
}

// Label formats the entry the way the materials list reports it,
// e.g. "MDF 3mm Natural".
func (m *MaterialSpec) Label() string {
	grosor := "?"
	if m.Thickness.Valid {
		grosor = strconv.FormatFloat(m.Thickness.Value, 'f', -1, 64)
	}
	return m.Material + " " + grosor + "mm " + m.Color
}

// Config is the full configuration document.
type Config struct {
	RatePerMinute float64        `json:"tarifa_por_minuto"`
	MarginPercent float64        `json:"margen_beneficio"`
	Materials     []MaterialSpec `json:"materiales"`
}

// AvailableMaterials lists every catalog entry formatted for display.
func (c *Config) AvailableMaterials() []string {
	out := make([]string, 0, len(c.Materials))
	for i := range c.Materials {
		out = append(out, c.Materials[i].Label())
	}
	return out
}

// Clone returns a deep copy safe to mutate without touching the snapshot it
// was taken from.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Materials = make([]MaterialSpec, len(c.Materials))
	for i := range c.Materials {
		cp.Materials[i] = cloneMaterial(&c.Materials[i])
	}
	return &cp
}

func cloneMaterial(m *MaterialSpec) MaterialSpec {
	cp := *m
	if m.SheetDims != nil {
		d := *m.SheetDims
		cp.SheetDims = &d
	}
	if m.ProcessParams != nil {
		pp := &ProcessOverrides{}
		if m.ProcessParams.Cut != nil {
			cut := *m.ProcessParams.Cut
			cut.SpeedPct = cloneFloat(m.ProcessParams.Cut.SpeedPct)
			cut.PowerPct = cloneFloat(m.ProcessParams.Cut.PowerPct)
			cut.AirBar = cloneFloat(m.ProcessParams.Cut.AirBar)
			cut.OverheadFactor = cloneFloat(m.ProcessParams.Cut.OverheadFactor)
			pp.Cut = &cut
		}
		if m.ProcessParams.Engrave != nil {
			eng := *m.ProcessParams.Engrave
			eng.SpeedPct = cloneFloat(m.ProcessParams.Engrave.SpeedPct)
			eng.PowerPct = cloneFloat(m.ProcessParams.Engrave.PowerPct)
			eng.AirBar = cloneFloat(m.ProcessParams.Engrave.AirBar)
			eng.HatchSpacingMM = cloneFloat(m.ProcessParams.Engrave.HatchSpacingMM)
			eng.FillOverheadFactor = cloneFloat(m.ProcessParams.Engrave.FillOverheadFactor)
			pp.Engrave = &eng
		}
		cp.ProcessParams = pp
	}
	return cp
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Default returns the built-in configuration used when no document exists.
func Default() *Config {
	return &Config{
		RatePerMinute: 0.8,
		MarginPercent: 50,
		Materials: []MaterialSpec{
			{Material: "MDF", Thickness: Num(3), Color: "Natural", SheetPrice: 15.50, SheetAreaM2: 1.44, CutSpeedPct: Num(1200), LaserPowerPct: Num(80), AirBar: Num(0.8)},
			{Material: "MDF", Thickness: Num(6), Color: "Natural", SheetPrice: 22.00, SheetAreaM2: 1.44, CutSpeedPct: Num(800), LaserPowerPct: Num(90), AirBar: Num(0.8)},
			{Material: "Acrílico", Thickness: Num(3), Color: "Transparente", SheetPrice: 25.00, SheetAreaM2: 1.44, CutSpeedPct: Num(600), LaserPowerPct: Num(70), AirBar: Num(0.6)},
			{Material: "Acrílico", Thickness: Num(5), Color: "Transparente", SheetPrice: 35.00, SheetAreaM2: 1.44, CutSpeedPct: Num(400), LaserPowerPct: Num(80), AirBar: Num(0.6)},
			{Material: "Contrachapado", Thickness: Num(4), Color: "light-wood", SheetPrice: 18.00, SheetAreaM2: 1.44, CutSpeedPct: Num(1000), LaserPowerPct: Num(85), AirBar: Num(0.8)},
		},
	}
}

// Load reads the configuration document at path. A missing document is
// created from the built-in defaults; an unreadable or malformed one falls
// back to the defaults without touching the file.
func Load(path string) *Config {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if saveErr := Save(cfg, path); saveErr != nil {
			log.Printf("config: could not write default document %s: %v", path, saveErr)
		}
		return cfg
	}
	if err != nil {
		log.Printf("config: could not read %s, using defaults: %v", path, err)
		return Default()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("config: could not parse %s, using defaults: %v", path, err)
		return Default()
	}
	return &cfg
}

// Save writes the configuration document to path.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
