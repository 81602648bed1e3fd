package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcollection "github.com/investkaro/backend/internal/application/collection"
	"github.com/investkaro/backend/internal/interfaces/http/dto"
	"github.com/investkaro/backend/internal/interfaces/http/middleware"
)

// PaymentHandler serves payment recording, listing and verification
type PaymentHandler struct {
	BaseHandler
	payments *appcollection.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *appcollection.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Create)
		payments.GET("", h.List)
		payments.GET("/pending", middleware.RequireAdmin(), h.ListPending)
		payments.GET("/:id", h.Get)
		payments.POST("/:id/verify", middleware.RequireAdmin(), h.Verify)
		payments.POST("/:id/reject", middleware.RequireAdmin(), h.Reject)
	}
	rg.GET("/clients/:id/payments", h.ClientHistory)
}

type splitRequest struct {
	RecipientUserID uuid.UUID       `json:"recipient_user_id" binding:"required"`
	Percentage      decimal.Decimal `json:"percentage" binding:"required"`
}

type createPaymentRequest struct {
	ClientID    uuid.UUID       `json:"client_id" binding:"required"`
	OwnerUserID *uuid.UUID      `json:"owner_user_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	AccountRef  string          `json:"account_ref"`
	Splits      []splitRequest  `json:"splits"`
}

// Create records a payment with its splits
func (h *PaymentHandler) Create(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := appcollection.CreatePaymentInput{
		ClientID:    req.ClientID,
		OwnerUserID: req.OwnerUserID,
		Amount:      req.Amount,
		Date:        req.Date,
		AccountRef:  req.AccountRef,
	}
	for _, s := range req.Splits {
		input.Splits = append(input.Splits, appcollection.SplitInput{
			RecipientUserID: s.RecipientUserID,
			Percentage:      s.Percentage,
		})
	}

	resp, err := h.payments.Create(c.Request.Context(), viewer, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one payment with its splits
func (h *PaymentHandler) Get(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.payments.Get(c.Request.Context(), viewer, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns the payments visible to the viewer
func (h *PaymentHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.payments.List(c.Request.Context(), viewer, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListPending returns payments awaiting verification
func (h *PaymentHandler) ListPending(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.payments.ListPending(c.Request.Context(), viewer, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Verify moves a pending payment to verified
func (h *PaymentHandler) Verify(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.payments.Verify(c.Request.Context(), viewer, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type rejectRequest struct {
	Note string `json:"note"`
}

// Reject moves a pending payment to rejected
func (h *PaymentHandler) Reject(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.payments.Reject(c.Request.Context(), viewer, paymentID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ClientHistory returns a client's payments with the viewer's shares
func (h *PaymentHandler) ClientHistory(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	clientID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.payments.ClientHistory(c.Request.Context(), viewer, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
