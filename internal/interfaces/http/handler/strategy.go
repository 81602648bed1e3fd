package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appstrategy "github.com/investkaro/backend/internal/application/strategy"
	"github.com/investkaro/backend/internal/interfaces/http/middleware"
)

// StrategyHandler serves the dashboard strategy feed
type StrategyHandler struct {
	BaseHandler
	strategies *appstrategy.Service
}

// NewStrategyHandler creates a new StrategyHandler
func NewStrategyHandler(strategies *appstrategy.Service) *StrategyHandler {
	return &StrategyHandler{strategies: strategies}
}

// RegisterRoutes registers strategy feed routes
func (h *StrategyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	strategies := rg.Group("/strategies")
	{
		strategies.GET("", h.Feed)
		strategies.POST("", middleware.RequireManager(), h.Post)
		strategies.DELETE("/:id", h.Delete)
	}
}

type postStrategyRequest struct {
	Message      string     `json:"message" binding:"required"`
	Scope        string     `json:"scope" binding:"required,oneof=company team"`
	TargetTeamID *uuid.UUID `json:"target_team_id"`
}

// Post publishes a feed entry
func (h *StrategyHandler) Post(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req postStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.strategies.Post(c.Request.Context(), viewer, appstrategy.PostInput{
		Message:      req.Message,
		Scope:        req.Scope,
		TargetTeamID: req.TargetTeamID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Feed returns the entries visible to the viewer
func (h *StrategyHandler) Feed(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	entries, err := h.strategies.Feed(c.Request.Context(), viewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Delete removes a feed entry
func (h *StrategyHandler) Delete(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	strategyID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.strategies.Delete(c.Request.Context(), viewer, strategyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
