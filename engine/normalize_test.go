package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestNormalize_LegacyShape(t *testing.T) {
	raw := decodePayload(t, `{
		"Cliente": {
			"Nombre y Apellidos": "Iván Hierro",
			"Mail": "ivan@example.com"
		},
		"Pedido": {
			"Número de solicitud": "DXF500098",
			"Longitud vector total": "64.712 m",
			"Area material": "1553733.0625720571 mm²",
			"Solicitud urgente": true,
			"¿Quién proporciona el material?": {
				"proveedor": "Arkcutt",
				"Material seleccionado": "Contrachapado",
				"Grosor": "4",
				"Color": "light-wood"
			},
			"Capas": [
				{"nombre": "corte interior", "longitud_m": 4.87736},
				{"nombre": "1_LimiteMaterial", "longitud_m": 11.46048},
				{"nombre": "corte exterior", "longitud_m": 44.97235},
				{"nombre": "2_Gravado", "longitud_m": 3.40193}
			],
			"Datos Recogida": {"tipo": "Recogida en tienda", "ciudad_seleccionada": "Barcelona"}
		}
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "Contrachapado", job.Material)
	assert.Equal(t, 4.0, job.Thickness)
	assert.Equal(t, "light-wood", job.Color)
	assert.InDelta(t, 1.5537330625, job.MaterialAreaM2, 1e-9)
	assert.Equal(t, "DXF500098", job.RequestNumber)

	require.Len(t, job.Layers, 4)
	assert.Equal(t, KindCutInside, job.Layers[0].Kind)
	assert.Equal(t, KindEngraveOutline, job.Layers[1].Kind)
	assert.Equal(t, KindCutOutside, job.Layers[2].Kind)
	assert.Equal(t, KindCutOutside, job.Layers[3].Kind)
	assert.Equal(t, 4.87736, job.Layers[0].LengthM)

	require.NotNil(t, job.Frontend)
	assert.Equal(t, "DXF500098", job.Frontend.RequestNumber)
	assert.True(t, job.Frontend.Urgent)
	assert.Equal(t, "Recogida en tienda", job.Frontend.Pickup["tipo"])
	assert.Equal(t, "Iván Hierro", job.Frontend.Client["Nombre y Apellidos"])
}

func TestNormalize_NewShape(t *testing.T) {
	raw := decodePayload(t, `{
		"cliente": {"nombre": "Iván Hierro"},
		"material": {"material": "acrilico", "grosor": "4mm", "color": "madera-clara"},
		"area": "0.6 m²",
		"capas": [
			{"nombre": "corte exterior", "longitud_mm": 1000}
		],
		"numero_solicitud": "REQ-77"
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "Metacrilato", job.Material)
	assert.Equal(t, 4.0, job.Thickness)
	assert.Equal(t, "light-wood", job.Color)
	assert.Equal(t, 0.6, job.MaterialAreaM2)
	assert.Equal(t, "REQ-77", job.RequestNumber)

	require.Len(t, job.Layers, 1)
	assert.Equal(t, KindCutOutside, job.Layers[0].Kind)
	assert.Equal(t, 1.0, job.Layers[0].LengthM)
}

func TestNormalize_NewShapeNested(t *testing.T) {
	raw := decodePayload(t, `{
		"cliente": {"nombre": "Ana"},
		"pedido": {
			"material": {"tipo": "mdf", "grosor_mm": 3, "color": "natural"},
			"area_mm2": 600000,
			"capas": [{"nombre": "grabado texto", "longitud_mm": 2500}]
		}
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "MDF", job.Material)
	assert.Equal(t, 3.0, job.Thickness)
	assert.Equal(t, "light-wood", job.Color)
	assert.Equal(t, 0.6, job.MaterialAreaM2)

	require.Len(t, job.Layers, 1)
	assert.Equal(t, KindEngraveOutline, job.Layers[0].Kind)
	assert.Equal(t, 2.5, job.Layers[0].LengthM)
}

func TestNormalize_MissingProviderFallsBack(t *testing.T) {
	raw := decodePayload(t, `{
		"Pedido": {
			"Capas": [{"nombre": "corte exterior", "longitud_m": 2}]
		}
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "Contrachapado", job.Material)
	assert.Equal(t, 4.0, job.Thickness)
	assert.Equal(t, "light-wood", job.Color)
	require.Len(t, job.Layers, 1)
}

func TestNormalize_MalformedSectionsDegrade(t *testing.T) {
	raw := decodePayload(t, `{
		"Pedido": {
			"¿Quién proporciona el material?": "not an object",
			"Area material": null,
			"Capas": "not a list"
		}
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	// non-object provider section degrades to the fallback block
	assert.Equal(t, "Contrachapado", job.Material)
	assert.Equal(t, 0.0, job.MaterialAreaM2)
	assert.Empty(t, job.Layers)
}

func TestNormalize_SkipsNonObjectLayers(t *testing.T) {
	raw := decodePayload(t, `{
		"Pedido": {
			"Capas": [null, "bogus", {"nombre": "corte exterior", "longitud_m": 1.5}]
		}
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, job.Layers, 1)
	assert.Equal(t, 1.5, job.Layers[0].LengthM)
}

func TestNormalize_UnrecognizedTopLevelDegrades(t *testing.T) {
	raw := map[string]any{"foo": "bar"}

	job, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Contrachapado", job.Material)
	assert.Empty(t, job.Layers)
}

func TestNormalize_EmptyPayloadFails(t *testing.T) {
	_, err := Normalize(map[string]any{})
	require.Error(t, err)
	var invalid *ValidationError
	assert.ErrorAs(t, err, &invalid)

	_, err = Normalize(nil)
	assert.Error(t, err)
}

func TestNormalize_ThenAggregate(t *testing.T) {
	raw := decodePayload(t, `{
		"Pedido": {
			"Número de solicitud": "DXF1",
			"Area material": "720000 mm²",
			"¿Quién proporciona el material?": {
				"Material seleccionado": "contrachapado",
				"Grosor": "4mm",
				"Color": "natural"
			},
			"Capas": [{"nombre": "corte exterior", "longitud_m": 9}]
		}
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	cfg := testConfig()
	res, err := Aggregate(cfg, job)
	require.NoError(t, err)

	// 9 m at 100% speed: (9/18)*1.05 = 0.525 min
	assert.Equal(t, 0.53, res.CuttingTimeMin)
	// 0.72 m² over a 1.44 m² sheet at 18.00
	assert.Equal(t, 9.0, res.MaterialCost)
	assert.Equal(t, "DXF1", res.Frontend.RequestNumber)
}
