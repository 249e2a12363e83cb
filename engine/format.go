package engine

import (
	"fmt"
	"strings"
)

// FormatBudget renders a quote result as the plain-text breakdown the CLI
// prints.
func FormatBudget(res *QuoteResult, marginPercent float64) string {
	var b strings.Builder

	b.WriteString("PRESUPUESTO CORTE LASER\n\n")
	fmt.Fprintf(&b, "Material: %s\n", res.Material.Label())
	fmt.Fprintf(&b, "Tiempo de corte: %s minutos\n", fmtNum(res.CuttingTimeMin))
	fmt.Fprintf(&b, "Coste corte: %.2f EUR\n", res.CuttingCost)
	fmt.Fprintf(&b, "Coste material: %.2f EUR\n", res.MaterialCost)
	fmt.Fprintf(&b, "Subtotal: %.2f EUR\n", res.Subtotal)
	fmt.Fprintf(&b, "Margen (%s%%): %.2f EUR\n", fmtNum(marginPercent), res.Margin)
	fmt.Fprintf(&b, "TOTAL: %.2f EUR\n", res.Total)

	b.WriteString("\nParametros de corte:\n")
	if cut, ok := res.ProcessParams["cut"]; ok {
		fmt.Fprintf(&b, "  - Corte - Velocidad: %s | Potencia: %s | Aire: %s\n",
			cut.Speed, cut.Power, cut.Air)
	}
	if eng, ok := res.ProcessParams["engrave"]; ok {
		line := fmt.Sprintf("  - Grabado - Velocidad: %s | Potencia: %s | Aire: %s",
			eng.Speed, eng.Power, eng.Air)
		if eng.HatchSpacing != "" {
			line += " | Hatch: " + eng.HatchSpacing
		}
		b.WriteString(line + "\n")
	}

	if len(res.Layers) > 0 {
		b.WriteString("\nDesglose por capas:\n")
		for _, l := range res.Layers {
			var extra []string
			if l.LengthM != 0 {
				extra = append(extra, fmt.Sprintf("longitud: %s m", fmtNum(l.LengthM)))
			}
			if l.AreaM2 != 0 {
				extra = append(extra, fmt.Sprintf("área: %s m²", fmtNum(l.AreaM2)))
			}
			extraTxt := ""
			if len(extra) > 0 {
				extraTxt = " | " + strings.Join(extra, " | ")
			}
			name := l.Name
			if name == "" {
				name = string(l.Kind)
			}
			fmt.Fprintf(&b, "  - %s | tiempo: %s min%s\n", name, fmtNum(l.TimeMin), extraTxt)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatMaterialNotFound renders a catalog miss with the list of valid
// alternatives.
func FormatMaterialNotFound(err *MaterialNotFoundError) string {
	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteString("\n\nMateriales disponibles:\n")
	for _, m := range err.Available {
		fmt.Fprintf(&b, "  - %s\n", m)
	}
	return strings.TrimRight(b.String(), "\n")
}
