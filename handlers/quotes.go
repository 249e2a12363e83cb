package handlers

import (
	"database/sql"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/Arkcutt12/calculadora-presupuestos-laser/database"
	"github.com/Arkcutt12/calculadora-presupuestos-laser/engine"
)

// taxRate is the IVA applied by the printable quote. Tax is a rendering
// concern; the engine total never includes it.
const taxRate = 0.21

// QuoteSubmission is the request body for saving a computed quote.
type QuoteSubmission struct {
	QuoteNumber   int                `json:"quote_number"`
	CustomerName  string             `json:"customer_name"`
	RequestNumber string             `json:"request_number"`
	Result        engine.QuoteResult `json:"result" binding:"required"`
}

// SaveQuote persists a quote with versioning and a duplicate check: saving
// the exact same total for the same request as the latest version is
// rejected.
func (e *Env) SaveQuote(c *gin.Context) {
	var req QuoteSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := sessions.Default(c)
	user, _ := session.Get("username").(string)

	var quoteNumber, version int

	if req.QuoteNumber == 0 {
		// New quote
		err := database.DB.QueryRow("SELECT COALESCE(MAX(quote_number), 1000) + 1 FROM quotes").Scan(&quoteNumber)
		if err != nil {
			quoteNumber = 1001
		}
		version = 1
	} else {
		// Update (new version)
		quoteNumber = req.QuoteNumber

		var lastTotal float64
		var lastRequest string
		err := database.DB.QueryRow("SELECT total, request_number FROM quotes WHERE quote_number = ? ORDER BY version DESC LIMIT 1", quoteNumber).Scan(&lastTotal, &lastRequest)

		if err == nil {
			if math.Abs(lastTotal-req.Result.Total) < 0.01 && lastRequest == req.RequestNumber {
				c.JSON(http.StatusConflict, gin.H{"error": "No changes detected (same total and request as previous version)"})
				return
			}
		}

		err = database.DB.QueryRow("SELECT COALESCE(MAX(version), 0) + 1 FROM quotes WHERE quote_number = ?", quoteNumber).Scan(&version)
		if err != nil {
			version = 1
		}
	}

	payload, err := json.Marshal(req.Result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Serialization error"})
		return
	}

	res, err := database.DB.Exec("INSERT INTO quotes (quote_number, version, request_number, customer_name, material, total, payload, created_by) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		quoteNumber, version, req.RequestNumber, req.CustomerName, req.Result.Material.Label(), req.Result.Total, string(payload), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database Error"})
		return
	}

	internalID, _ := res.LastInsertId()
	c.JSON(http.StatusOK, gin.H{"status": "success", "id": internalID, "quote_number": quoteNumber, "version": version})
}

// ShowHistory lists saved quotes grouped by quote number, latest version
// first.
func (e *Env) ShowHistory(c *gin.Context) {
	session := sessions.Default(c)
	isAdmin := session.Get("role") == "ADMIN"

	rows, err := database.DB.Query("SELECT id, quote_number, version, request_number, customer_name, material, total, created_by, created_at FROM quotes ORDER BY quote_number DESC, version DESC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database Error"})
		return
	}
	defer rows.Close()

	type QuoteRow struct {
		ID            int       `json:"id"`
		QuoteNumber   int       `json:"quote_number"`
		Version       int       `json:"version"`
		RequestNumber string    `json:"request_number"`
		CustomerName  string    `json:"customer_name"`
		Material      string    `json:"material"`
		Total         float64   `json:"total"`
		CreatedBy     string    `json:"created_by"`
		Date          time.Time `json:"created_at"`
	}

	type QuoteGroup struct {
		Latest  QuoteRow   `json:"latest"`
		History []QuoteRow `json:"history"`
	}

	var groups []QuoteGroup
	var currentGroup *QuoteGroup

	for rows.Next() {
		var q QuoteRow
		var custName sql.NullString
		rows.Scan(&q.ID, &q.QuoteNumber, &q.Version, &q.RequestNumber, &custName, &q.Material, &q.Total, &q.CreatedBy, &q.Date)

		if isAdmin {
			q.CustomerName = custName.String
		} else {
			q.CustomerName = "Restricted"
		}

		// Same quote numbers arrive sequentially (ORDER BY above)
		if currentGroup == nil || currentGroup.Latest.QuoteNumber != q.QuoteNumber {
			if currentGroup != nil {
				groups = append(groups, *currentGroup)
			}
			currentGroup = &QuoteGroup{Latest: q, History: []QuoteRow{}}
		} else {
			currentGroup.History = append(currentGroup.History, q)
		}
	}
	if currentGroup != nil {
		groups = append(groups, *currentGroup)
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// PrintQuote renders a saved quote as a printable page, applying IVA on
// top of the engine total.
func (e *Env) PrintQuote(c *gin.Context) {
	quoteID := c.Param("id")

	var quoteNumber, version int
	var requestNumber, customer, payload string
	err := database.DB.QueryRow("SELECT quote_number, version, request_number, customer_name, payload FROM quotes WHERE id=?", quoteID).
		Scan(&quoteNumber, &version, &requestNumber, &customer, &payload)
	if err != nil {
		c.Redirect(http.StatusFound, "/history")
		return
	}

	var result engine.QuoteResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		c.String(http.StatusInternalServerError, "Corrupt quote payload")
		return
	}

	if customer == "" && result.Frontend != nil {
		if name, ok := result.Frontend.Client["Nombre y Apellidos"].(string); ok {
			customer = name
		}
	}
	if customer == "" {
		customer = "Cliente"
	}

	cfg := e.Cfg.Snapshot()
	base := result.Total
	iva := base * taxRate
	totalFinal := base + iva

	now := time.Now()
	c.HTML(http.StatusOK, "quote.html", gin.H{
		"QuoteNumber":    quoteNumber,
		"Version":        version,
		"RequestNumber":  requestNumber,
		"CustomerName":   customer,
		"Date":           now.Format("02/01/2006"),
		"DueDate":        now.AddDate(0, 0, 15).Format("02/01/2006"),
		"RatePerMinute":  cfg.RatePerMinute,
		"CuttingMinutes": int(result.CuttingTimeMin),
		"CuttingCost":    result.CuttingCost,
		"CuttingWithIVA": result.CuttingCost * (1 + taxRate),
		"Material":       result.Material,
		"MaterialCost":   result.MaterialCost,
		"MaterialIVA":    result.MaterialCost * (1 + taxRate),
		"Base":           base,
		"IVA":            iva,
		"Total":          totalFinal,
	})
}
