package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arkcutt12/calculadora-presupuestos-laser/config"
	"github.com/Arkcutt12/calculadora-presupuestos-laser/engine"
)

// Admin surface over the configuration document. Every change persists the
// document and installs a new snapshot; running calculations keep the one
// they started with.

func (e *Env) ShowSettings(c *gin.Context) {
	cfg := e.Cfg.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"tarifa_por_minuto": cfg.RatePerMinute,
		"margen_beneficio":  cfg.MarginPercent,
		"materiales":        cfg.Materials,
	})
}

func (e *Env) UpdateGlobal(c *gin.Context) {
	rate := engine.SafeFloat(c.PostForm("tarifa_por_minuto"), -1)
	margin := engine.SafeFloat(c.PostForm("margen_beneficio"), -1)

	err := e.Cfg.Update(func(cfg *config.Config) {
		if rate >= 0 {
			cfg.RatePerMinute = rate
		}
		if margin >= 0 {
			cfg.MarginPercent = margin
		}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

func (e *Env) UpdateMaterial(c *gin.Context) {
	idx, err := strconv.Atoi(c.PostForm("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	updateErr := e.Cfg.Update(func(cfg *config.Config) {
		if idx < 0 || idx >= len(cfg.Materials) {
			return
		}
		applyMaterialForm(c, &cfg.Materials[idx])
	})
	if updateErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": updateErr.Error()})
		return
	}
	c.Status(http.StatusOK)
}

func (e *Env) AddMaterial(c *gin.Context) {
	var mat config.MaterialSpec
	applyMaterialForm(c, &mat)
	if mat.Material == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "material requerido"})
		return
	}

	err := e.Cfg.Update(func(cfg *config.Config) {
		cfg.Materials = append(cfg.Materials, mat)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// applyMaterialForm overwrites the fields present in the form; absent
// fields keep their current value.
func applyMaterialForm(c *gin.Context, m *config.MaterialSpec) {
	if v, ok := c.GetPostForm("material"); ok {
		m.Material = v
	}
	if v, ok := c.GetPostForm("grosor"); ok {
		m.Thickness = config.Num(engine.SafeFloat(v, 0))
	}
	if v, ok := c.GetPostForm("color"); ok {
		m.Color = v
	}
	if v, ok := c.GetPostForm("precio_plancha"); ok {
		m.SheetPrice = engine.SafeFloat(v, m.SheetPrice)
	}
	if v, ok := c.GetPostForm("tamaño_plancha"); ok {
		m.SheetAreaM2 = engine.SafeFloat(v, m.SheetAreaM2)
	}
	if v, ok := c.GetPostForm("velocidad_corte"); ok {
		m.CutSpeedPct = config.Num(engine.SafeFloat(v, 0))
	}
	if v, ok := c.GetPostForm("potencia_laser"); ok {
		m.LaserPowerPct = config.Num(engine.SafeFloat(v, 0))
	}
	if v, ok := c.GetPostForm("fuerza_aire"); ok {
		m.AirBar = config.Num(engine.SafeFloat(v, 0))
	}
}
