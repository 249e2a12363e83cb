package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arkcutt12/calculadora-presupuestos-laser/config"
	"github.com/Arkcutt12/calculadora-presupuestos-laser/engine"
)

// Env holds the handler dependencies: the configuration store serving
// immutable catalog snapshots.
type Env struct {
	Cfg *config.Store
}

// Response is the envelope every calculation endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeResult serializes an aggregation outcome. A material miss is not an
// HTTP error: the caller gets success=false plus the available materials.
func (e *Env) writeResult(c *gin.Context, res *engine.QuoteResult, err error) {
	if err == nil {
		c.JSON(http.StatusOK, Response{Success: true, Data: res})
		return
	}

	var notFound *engine.MaterialNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusOK, Response{
			Success: false,
			Error:   notFound.Error(),
			Data: gin.H{
				"error":                  notFound.Error(),
				"materiales_disponibles": notFound.Available,
			},
		})
		return
	}

	var invalid *engine.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusOK, Response{
			Success: false,
			Error:   invalid.Error(),
			Data: gin.H{
				"error":                  invalid.Error(),
				"materiales_disponibles": e.Cfg.Snapshot().AvailableMaterials(),
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
}
