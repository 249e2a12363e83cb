package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat_Unmarshal(t *testing.T) {
	var doc struct {
		A FlexFloat `json:"a"`
		B FlexFloat `json:"b"`
		C FlexFloat `json:"c"`
		D FlexFloat `json:"d"`
		E FlexFloat `json:"e"`
	}
	raw := `{"a": 3, "b": "4", "c": "3,5", "d": "No especificado", "e": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.True(t, doc.A.Valid)
	assert.Equal(t, 3.0, doc.A.Value)
	assert.True(t, doc.B.Valid)
	assert.Equal(t, 4.0, doc.B.Value)
	assert.True(t, doc.C.Valid)
	assert.Equal(t, 3.5, doc.C.Value)
	assert.False(t, doc.D.Valid)
	assert.False(t, doc.E.Valid)
}

func TestMaterialSpec_Label(t *testing.T) {
	m := MaterialSpec{Material: "MDF", Thickness: Num(2.5), Color: "Natural"}
	assert.Equal(t, "MDF 2.5mm Natural", m.Label())
}

func TestLoad_MissingDocumentWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laser_config.json")

	cfg := Load(path)
	require.NotEmpty(t, cfg.Materials)
	assert.Equal(t, 0.8, cfg.RatePerMinute)
	assert.Equal(t, 50.0, cfg.MarginPercent)

	// the default set was persisted
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var reread Config
	require.NoError(t, json.Unmarshal(data, &reread))
	assert.Len(t, reread.Materials, len(cfg.Materials))
}

func TestLoad_MalformedDocumentFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laser_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	cfg := Load(path)
	assert.Equal(t, 0.8, cfg.RatePerMinute)
	assert.NotEmpty(t, cfg.Materials)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laser_config.json")
	hatch := 0.1
	orig := &Config{
		RatePerMinute: 1.2,
		MarginPercent: 40,
		Materials: []MaterialSpec{
			{
				Material:    "Metacrilato",
				Thickness:   Num(5),
				Color:       "Lila",
				SheetPrice:  35,
				SheetAreaM2: 0.6,
				SheetDims:   &SheetDimensions{WidthMM: 600, HeightMM: 1000},
				CutSpeedPct: Num(40),
				ProcessParams: &ProcessOverrides{
					Engrave: &EngraveOverride{HatchSpacingMM: &hatch},
				},
			},
		},
	}
	require.NoError(t, Save(orig, path))

	cfg := Load(path)
	require.Len(t, cfg.Materials, 1)
	m := cfg.Materials[0]
	assert.Equal(t, "Metacrilato", m.Material)
	assert.Equal(t, 0.6, m.SheetAreaM2)
	require.NotNil(t, m.SheetDims)
	assert.Equal(t, 600.0, m.SheetDims.WidthMM)
	require.NotNil(t, m.ProcessParams.Engrave.HatchSpacingMM)
	assert.Equal(t, 0.1, *m.ProcessParams.Engrave.HatchSpacingMM)
}

func TestStore_UpdateInstallsNewSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laser_config.json")
	store := NewStore(path)

	before := store.Snapshot()
	beforeRate := before.RatePerMinute

	require.NoError(t, store.Update(func(cfg *Config) {
		cfg.RatePerMinute = 9.99
		cfg.Materials = append(cfg.Materials, MaterialSpec{Material: "Cartón", Thickness: Num(2), Color: "Gris"})
	}))

	// the old snapshot is untouched
	assert.Equal(t, beforeRate, before.RatePerMinute)
	assert.NotContains(t, before.AvailableMaterials(), "Cartón 2mm Gris")

	after := store.Snapshot()
	assert.Equal(t, 9.99, after.RatePerMinute)
	assert.Contains(t, after.AvailableMaterials(), "Cartón 2mm Gris")

	// and the change was persisted
	reloaded := Load(path)
	assert.Equal(t, 9.99, reloaded.RatePerMinute)
}

func TestConfig_CloneIsDeep(t *testing.T) {
	speed := 50.0
	cfg := &Config{
		Materials: []MaterialSpec{
			{Material: "MDF", Thickness: Num(3), ProcessParams: &ProcessOverrides{Cut: &CutOverride{SpeedPct: &speed}}},
		},
	}

	cp := cfg.Clone()
	*cp.Materials[0].ProcessParams.Cut.SpeedPct = 99
	cp.Materials[0].Material = "Otro"

	assert.Equal(t, 50.0, *cfg.Materials[0].ProcessParams.Cut.SpeedPct)
	assert.Equal(t, "MDF", cfg.Materials[0].Material)
}
