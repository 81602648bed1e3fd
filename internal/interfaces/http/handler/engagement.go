package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcrm "github.com/investkaro/backend/internal/application/crm"
	"github.com/investkaro/backend/internal/interfaces/http/dto"
	"github.com/investkaro/backend/internal/interfaces/http/middleware"
)

// EngagementHandler serves assigned client engagements
type EngagementHandler struct {
	BaseHandler
	engagements *appcrm.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(engagements *appcrm.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagements: engagements}
}

// RegisterRoutes registers engagement routes
func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	engagements := rg.Group("/engagements")
	{
		engagements.GET("", h.List)
		engagements.PUT("/:id", h.Update)
		engagements.POST("/:id/transfer", middleware.RequireManager(), h.Transfer)
	}
}

// List returns the engagements visible to the viewer. Optional status,
// segment and state query params narrow the result.
func (h *EngagementHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	for _, key := range []string{"status", "segment", "state"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}

	resp, err := h.engagements.List(c.Request.Context(), viewer, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type updateEngagementRequest struct {
	Status     string          `json:"status"`
	Note       string          `json:"note"`
	Segment    string          `json:"segment"`
	State      string          `json:"state"`
	FundAmount decimal.Decimal `json:"fund_amount"`
}

// Update records the latest disposition and trading profile
func (h *EngagementHandler) Update(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	engagementID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req updateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.engagements.Update(c.Request.Context(), viewer, engagementID, appcrm.UpdateEngagementInput{
		Status:     req.Status,
		Note:       req.Note,
		Segment:    req.Segment,
		State:      req.State,
		FundAmount: req.FundAmount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type transferRequest struct {
	AgentID uuid.UUID `json:"agent_id" binding:"required"`
}

// Transfer moves an engagement to another agent
func (h *EngagementHandler) Transfer(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	engagementID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.engagements.Transfer(c.Request.Context(), viewer, engagementID, req.AgentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
