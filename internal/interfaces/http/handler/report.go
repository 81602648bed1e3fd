package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appreport "github.com/investkaro/backend/internal/application/report"
)

// ReportHandler serves the income dashboard series and breakdowns
type ReportHandler struct {
	BaseHandler
	income *appreport.IncomeService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(income *appreport.IncomeService) *ReportHandler {
	return &ReportHandler{income: income}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/income/weekly", h.Weekly)
		reports.GET("/income/monthly", h.Monthly)
		reports.GET("/income/by-agent", h.ByAgent)
		reports.GET("/income/by-team", h.ByTeam)
		reports.GET("/summary", h.Summary)
	}
}

// Weekly returns the current month's income in weekly buckets
func (h *ReportHandler) Weekly(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	points, err := h.income.WeeklySeries(c.Request.Context(), viewer, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// Monthly returns income for the trailing months, oldest first
func (h *ReportHandler) Monthly(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	points, err := h.income.MonthlySeries(c.Request.Context(), viewer, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// dateRange parses optional from/to query params (2006-01-02). Zero
// values mean an unbounded range.
func (h *ReportHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.BadRequest(c, "from must be formatted as 2006-01-02")
			return from, to, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.BadRequest(c, "to must be formatted as 2006-01-02")
			return from, to, false
		}
		to = parsed
	}
	return from, to, true
}

// ByAgent returns the per-agent income breakdown
func (h *ReportHandler) ByAgent(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}
	rows, err := h.income.BreakdownByAgent(c.Request.Context(), viewer, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ByTeam returns the per-team-lead income roll-up
func (h *ReportHandler) ByTeam(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}
	rows, err := h.income.BreakdownByTeamLead(c.Request.Context(), viewer, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Summary returns the dashboard headline numbers
func (h *ReportHandler) Summary(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	summary, err := h.income.Summarize(c.Request.Context(), viewer, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
