package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appdocument "github.com/investkaro/backend/internal/application/document"
)

// DocumentHandler serves income slips and tax receipts
type DocumentHandler struct {
	BaseHandler
	slips    *appdocument.SlipService
	receipts *appdocument.ReceiptService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(slips *appdocument.SlipService, receipts *appdocument.ReceiptService) *DocumentHandler {
	return &DocumentHandler{slips: slips, receipts: receipts}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.GET("/slips/:id", h.Slip)
		documents.GET("/slips", h.TeamSlips)
		documents.GET("/receipts/:id", h.Receipt)
	}
}

// period parses year and month query params, defaulting to the current
// month.
func (h *DocumentHandler) period(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 2000 || parsed > 2200 {
			h.BadRequest(c, "invalid year")
			return 0, 0, false
		}
		year = parsed
	}
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			h.BadRequest(c, "month must be between 1 and 12")
			return 0, 0, false
		}
		month = time.Month(parsed)
	}
	return year, month, true
}

// Slip returns one agent's income slip for the requested month
func (h *DocumentHandler) Slip(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	agentID, ok := h.pathID(c)
	if !ok {
		return
	}
	year, month, ok := h.period(c)
	if !ok {
		return
	}

	slip, err := h.slips.MonthlySlip(c.Request.Context(), viewer, agentID, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}

// TeamSlips returns slips for every agent visible to the viewer
func (h *DocumentHandler) TeamSlips(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	year, month, ok := h.period(c)
	if !ok {
		return
	}

	slips, err := h.slips.TeamSlips(c.Request.Context(), viewer, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slips)
}

// Receipt builds the tax receipt for one verified payment
func (h *DocumentHandler) Receipt(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}

	receipt, err := h.receipts.Generate(c.Request.Context(), viewer, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}
