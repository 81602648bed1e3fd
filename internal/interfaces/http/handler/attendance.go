package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appattendance "github.com/investkaro/backend/internal/application/attendance"
	"github.com/investkaro/backend/internal/interfaces/http/middleware"
)

// AttendanceHandler serves attendance marking and month-to-date stats
type AttendanceHandler struct {
	BaseHandler
	attendance *appattendance.Service
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendance *appattendance.Service) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// RegisterRoutes registers attendance routes
func (h *AttendanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	attendance := rg.Group("/attendance")
	{
		attendance.POST("/toggle", h.Toggle)
		attendance.GET("/users/:id", h.Month)
		attendance.GET("/team", middleware.RequireManager(), h.TeamStats)
	}
}

type toggleRequest struct {
	Day time.Time `json:"day"`
}

// Toggle flips the viewer's presence mark for a day, defaulting to today
func (h *AttendanceHandler) Toggle(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	// The body is optional; an empty request marks today
	var req toggleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}
	day := req.Day
	if day.IsZero() {
		day = time.Now()
	}

	record, err := h.attendance.Toggle(c.Request.Context(), viewer, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Month returns one user's marks for the month containing ?ref
func (h *AttendanceHandler) Month(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	ref := time.Now()
	if v := c.Query("ref"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.BadRequest(c, "ref must be formatted as 2006-01-02")
			return
		}
		ref = parsed
	}

	records, err := h.attendance.Month(c.Request.Context(), viewer, userID, ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// TeamStats returns month-to-date attendance for the viewer's team
func (h *AttendanceHandler) TeamStats(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	stats, err := h.attendance.TeamStats(c.Request.Context(), viewer, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
