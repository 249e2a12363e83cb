package engine

// Frontend payload normalization. The upstream form has shipped at least
// two incompatible JSON shapes for the same job; each one gets its own
// detector and new shapes can be added without touching existing ones.
// Only an empty top-level payload fails: missing or malformed nested
// sections degrade to empty values or to the fallback material block.

// Fallback material block used when the payload carries no provider
// section at all. Keeps downstream calculation able to proceed.
const (
	fallbackProvider  = "Arkcutt"
	fallbackMaterial  = "Contrachapado"
	fallbackThickness = "4"
	fallbackColor     = "light-wood"
)

type shapeDetector struct {
	matches   func(raw map[string]any) bool
	normalize func(raw map[string]any) Job
}

var shapeDetectors = []shapeDetector{
	{matchesLegacyShape, normalizeLegacyShape},
	{matchesNewShape, normalizeNewShape},
}

// Normalize maps a raw upstream payload into the canonical Job. The shape
// detectors run in order; a payload matching none of them is treated as a
// degenerate legacy payload and degrades to defaults.
func Normalize(raw map[string]any) (Job, error) {
	if len(raw) == 0 {
		return Job{}, &ValidationError{Msg: "Datos del frontend vacíos o inválidos"}
	}
	for _, d := range shapeDetectors {
		if d.matches(raw) {
			return d.normalize(raw), nil
		}
	}
	return normalizeLegacyShape(raw), nil
}

// ---- legacy shape: capitalized Spanish keys under Cliente/Pedido --------

func matchesLegacyShape(raw map[string]any) bool {
	_, hasPedido := raw["Pedido"]
	_, hasCliente := raw["Cliente"]
	return hasPedido || hasCliente
}

func normalizeLegacyShape(raw map[string]any) Job {
	pedido := asMap(raw["Pedido"])

	prov := asMap(pedido["¿Quién proporciona el material?"])
	if len(prov) == 0 {
		prov = fallbackMaterialBlock()
	}

	areaM2 := ExtractAreaM2(pedido["Area material"])

	var layers []Layer
	for _, item := range asSlice(pedido["Capas"]) {
		capa := asMap(item)
		if capa == nil {
			continue
		}
		layers = append(layers, layerFromCapa(capa, areaM2))
	}

	analisis := asMap(pedido["Análisis DXF"])

	return Job{
		Material:       NormalizeMaterialName(asString(prov["Material seleccionado"])),
		Thickness:      SafeFloat(prov["Grosor"], 0),
		Color:          NormalizeColorName(asString(prov["Color"])),
		MaterialAreaM2: areaM2,
		Layers:         layers,
		Client:         asMap(raw["Cliente"]),
		RequestNumber:  asString(pedido["Número de solicitud"]),
		Frontend: &FrontendInfo{
			Client:        asMap(raw["Cliente"]),
			Order:         pedido,
			RequestNumber: asString(pedido["Número de solicitud"]),
			TotalLengthMM: pedido["Longitud vector total"],
			FileQuality:   asMap(analisis["Calidad del archivo"]),
			Pickup:        asMap(pedido["Datos Recogida"]),
			Urgent:        asBool(pedido["Solicitud urgente"]),
		},
	}
}

// ---- new shape: lowercase keys, lengths in millimeters ------------------

func matchesNewShape(raw map[string]any) bool {
	for _, key := range []string{"pedido", "capas", "material", "cliente"} {
		if _, ok := raw[key]; ok {
			return true
		}
	}
	return false
}

func normalizeNewShape(raw map[string]any) Job {
	order := asMap(raw["pedido"])
	if order == nil {
		order = raw
	}

	var name, color string
	var thickness float64

	if mat := asMap(order["material"]); len(mat) > 0 {
		name = asString(mat["material"])
		if name == "" {
			name = asString(mat["tipo"])
		}
		thickness = SafeFloat(mat["grosor"], 0)
		if thickness == 0 {
			thickness = SafeFloat(mat["grosor_mm"], 0)
		}
		color = asString(mat["color"])
	} else if s := asString(order["material"]); s != "" {
		name = s
		thickness = SafeFloat(order["grosor"], 0)
		color = asString(order["color"])
	} else {
		prov := fallbackMaterialBlock()
		name = asString(prov["Material seleccionado"])
		thickness = SafeFloat(prov["Grosor"], 0)
		color = asString(prov["Color"])
	}

	var areaM2 float64
	if v, ok := order["area_mm2"]; ok {
		areaM2 = SafeFloat(v, 0) / 1_000_000
	} else {
		areaM2 = ExtractAreaM2(order["area"])
	}

	var layers []Layer
	for _, item := range asSlice(order["capas"]) {
		capa := asMap(item)
		if capa == nil {
			continue
		}
		layers = append(layers, layerFromCapa(capa, areaM2))
	}

	cliente := asMap(raw["cliente"])
	if cliente == nil {
		cliente = asMap(order["cliente"])
	}
	requestNumber := asString(order["numero_solicitud"])

	return Job{
		Material:       NormalizeMaterialName(name),
		Thickness:      thickness,
		Color:          NormalizeColorName(color),
		MaterialAreaM2: areaM2,
		Layers:         layers,
		Client:         cliente,
		RequestNumber:  requestNumber,
		Frontend: &FrontendInfo{
			Client:        cliente,
			Order:         order,
			RequestNumber: requestNumber,
			TotalLengthMM: order["longitud_total_mm"],
			Pickup:        asMap(order["recogida"]),
			Urgent:        asBool(order["urgente"]),
		},
	}
}

// ---- shared helpers -----------------------------------------------------

func fallbackMaterialBlock() map[string]any {
	return map[string]any{
		"proveedor":             fallbackProvider,
		"Material seleccionado": fallbackMaterial,
		"Grosor":                fallbackThickness,
		"Color":                 fallbackColor,
	}
}

// layerFromCapa builds one Layer from a raw layer entry. Lengths come from
// longitud_m when present, otherwise from longitud_mm converted to meters.
func layerFromCapa(capa map[string]any, materialAreaM2 float64) Layer {
	nombre := asString(capa["nombre"])
	kind := MapLayerName(nombre)

	lengthM := SafeFloat(capa["longitud_m"], 0)
	if lengthM == 0 {
		lengthM = SafeFloat(capa["longitud_mm"], 0) / 1000.0
	}

	layer := Layer{
		Name:    nombre,
		Kind:    kind,
		LengthM: lengthM,
	}
	if kind == KindEngraveFill {
		layer.AreaM2 = materialAreaM2
		layer.HatchSpacingMM = defaultHatchSpacingMM
	}
	return layer
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
