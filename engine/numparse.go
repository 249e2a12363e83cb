package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Shared tolerant parsing for the upstream payloads: locale-formatted
// numbers, unit suffixes and placeholder strings all degrade to a
// caller-supplied default instead of failing.

var (
	numberPrefixRe = regexp.MustCompile(`^[-+]?[0-9]+(?:\.[0-9]+)?`)
	areaRe         = regexp.MustCompile(`(?i)([\d.,]+)\s*(mm.?²?|m.?²?)`)
)

// placeholder values the upstream forms emit for "no value".
func isPlaceholder(s string) bool {
	switch strings.ToLower(s) {
	case "", "no especificado", "n/a", "none", "null":
		return true
	}
	return false
}

// SafeFloat coerces an arbitrary decoded JSON value to a float64.
// Strings may use comma decimal separators or carry a trailing unit
// ("4mm"); anything unparseable yields def.
func SafeFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		return def
	case string:
		return parseFloatString(n, def)
	}
	return def
}

func parseFloatString(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if isPlaceholder(s) {
		return def
	}
	s = strings.ReplaceAll(s, ",", ".")
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	// tolerate unit suffixes: take the leading numeric prefix
	if m := numberPrefixRe.FindString(s); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v
		}
	}
	return def
}

// ExtractAreaM2 pulls an area in m² out of a value that may be a number or
// a free-text string like "1553733.06 mm²" or "0.6 m²". Square millimeters
// are converted; any other unit is assumed to be m² already. Unparseable
// input yields zero.
func ExtractAreaM2(v any) float64 {
	switch a := v.(type) {
	case float64:
		return a
	case int:
		return float64(a)
	case string:
		m := areaRe.FindStringSubmatch(a)
		if m == nil {
			return 0
		}
		value := parseFloatString(m[1], 0)
		if strings.Contains(strings.ToLower(m[2]), "mm") {
			return value / 1_000_000
		}
		return value
	}
	return 0
}

// MapLayerName maps a free-text design layer name to an operation kind.
// Substring rules are evaluated in precedence order; anything unrecognized
// is billed as an outside cut, the conservative majority case.
func MapLayerName(name string) OperationKind {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(name, "corte") && strings.Contains(name, "exterior"):
		return KindCutOutside
	case strings.Contains(name, "corte") && strings.Contains(name, "interior"):
		return KindCutInside
	case strings.Contains(name, "material"):
		return KindEngraveOutline
	case strings.Contains(name, "marc"):
		return KindEngraveOutline
	case strings.Contains(name, "grabado"):
		return KindEngraveOutline
	}
	return KindCutOutside
}

// materialSynonyms maps frontend material names to catalog names.
var materialSynonyms = map[string]string{
	"contrachapado": "Contrachapado",
	"mdf":           "MDF",
	"metacrilato":   "Metacrilato",
	"acrilico":      "Metacrilato",
	"dm":            "DM",
}

// NormalizeMaterialName resolves frontend material synonyms to catalog
// names; unknown values pass through unchanged.
func NormalizeMaterialName(material string) string {
	if canonical, ok := materialSynonyms[strings.ToLower(strings.TrimSpace(material))]; ok {
		return canonical
	}
	return material
}

// colorSynonyms maps frontend color names to catalog colors.
var colorSynonyms = map[string]string{
	"light-wood":    "light-wood",
	"dark-wood":     "dark-wood",
	"madera-clara":  "light-wood",
	"madera-oscura": "dark-wood",
	"natural":       "light-wood",
	"transparente":  "Transparente",
	"negro":         "Negro",
	"blanco":        "Blanco",
}

// NormalizeColorName resolves frontend color synonyms; unknown values get
// capitalization normalization only.
func NormalizeColorName(color string) string {
	if canonical, ok := colorSynonyms[strings.ToLower(strings.TrimSpace(color))]; ok {
		return canonical
	}
	return titleWords(color)
}

// titleWords capitalizes the first letter of each word, including words
// separated by hyphens ("madera clara" -> "Madera Clara").
func titleWords(s string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_':
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteString(strings.ToUpper(string(r)))
			startOfWord = false
		default:
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}
