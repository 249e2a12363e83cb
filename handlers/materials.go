package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (e *Env) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API Calculadora de Presupuestos Láser",
		"status":  "online",
		"endpoints": gin.H{
			"/calculate":     "POST - Calcular presupuesto desde JSON del formulario",
			"/calculate/job": "POST - Calcular presupuesto desde un job canónico",
			"/materiales":    "GET - Materiales disponibles",
			"/config":        "GET - Configuración actual",
			"/health":        "GET - Estado de la API",
		},
	})
}

func (e *Env) Health(c *gin.Context) {
	cfg := e.Cfg.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":                 "healthy",
		"timestamp":              time.Now().Format(time.RFC3339),
		"materiales_disponibles": len(cfg.Materials),
	})
}

// Materials lists every catalog entry, formatted and in detail.
func (e *Env) Materials(c *gin.Context) {
	cfg := e.Cfg.Snapshot()

	detalle := make([]gin.H, 0, len(cfg.Materials))
	for i := range cfg.Materials {
		m := &cfg.Materials[i]
		detalle = append(detalle, gin.H{
			"material":       m.Material,
			"grosor":         m.Thickness,
			"color":          m.Color,
			"precio_plancha": m.SheetPrice,
			"tamaño_plancha": m.SheetAreaM2,
			"descripcion":    m.Label(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"materiales": cfg.AvailableMaterials(),
		"detalle":    detalle,
		"total":      len(cfg.Materials),
	})
}

// GetConfig reports the active rates without the full material table.
func (e *Env) GetConfig(c *gin.Context) {
	cfg := e.Cfg.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"tarifa_por_minuto": cfg.RatePerMinute,
		"margen_beneficio":  cfg.MarginPercent,
		"total_materiales":  len(cfg.Materials),
	})
}
