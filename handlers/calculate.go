package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arkcutt12/calculadora-presupuestos-laser/engine"
)

// Calculate computes a quote from a raw frontend payload: normalize the
// upstream shape into a canonical job, then aggregate it against the
// current catalog snapshot.
func (e *Env) Calculate(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "Cuerpo JSON inválido: " + err.Error()})
		return
	}

	cfg := e.Cfg.Snapshot()

	job, err := engine.Normalize(raw)
	if err != nil {
		e.writeResult(c, nil, err)
		return
	}

	res, err := engine.Aggregate(cfg, job)
	e.writeResult(c, res, err)
}

// CalculateJob computes a quote from a canonical job document, bypassing
// the normalizer.
func (e *Env) CalculateJob(c *gin.Context) {
	var job engine.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "Cuerpo JSON inválido: " + err.Error()})
		return
	}

	res, err := engine.Aggregate(e.Cfg.Snapshot(), job)
	e.writeResult(c, res, err)
}
