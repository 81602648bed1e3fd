package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/investkaro/backend/internal/application/identity"
	"github.com/investkaro/backend/internal/interfaces/http/dto"
	"github.com/investkaro/backend/internal/interfaces/http/middleware"
)

// UserHandler serves admin-side user management
type UserHandler struct {
	BaseHandler
	users *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *appidentity.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers user management routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/managers", h.Managers)
		users.POST("", middleware.RequireAdmin(), h.Create)
		users.PUT("/:id/role", middleware.RequireAdmin(), h.ChangeRole)
		users.PUT("/:id/manager", middleware.RequireAdmin(), h.Reassign)
		users.DELETE("/:id", middleware.RequireAdmin(), h.Deactivate)
	}
}

type createUserRequest struct {
	Username    string     `json:"username" binding:"required"`
	DisplayName string     `json:"display_name"`
	Password    string     `json:"password" binding:"required,min=8"`
	Role        string     `json:"role" binding:"required,oneof=admin manager user"`
	ManagerID   *uuid.UUID `json:"manager_id"`
}

// Create creates a new user profile
func (h *UserHandler) Create(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.users.Create(c.Request.Context(), viewer, appidentity.CreateUserInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Role:        req.Role,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// List returns the profiles visible to the viewer
func (h *UserHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	infos, err := h.users.List(c.Request.Context(), viewer, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, infos)
}

// Managers returns every manager profile, for assignment dropdowns
func (h *UserHandler) Managers(c *gin.Context) {
	infos, err := h.users.Managers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, infos)
}

type changeRoleRequest struct {
	Role      string     `json:"role" binding:"required,oneof=admin manager user"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

// ChangeRole changes a user's role and manager assignment
func (h *UserHandler) ChangeRole(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.users.ChangeRole(c.Request.Context(), viewer, appidentity.ChangeRoleInput{
		UserID:    userID,
		Role:      req.Role,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

type reassignRequest struct {
	ManagerID *uuid.UUID `json:"manager_id"`
}

// Reassign moves a user under a different manager
func (h *UserHandler) Reassign(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req reassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.users.Reassign(c.Request.Context(), viewer, userID, req.ManagerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Deactivate disables a user profile, keeping its history
func (h *UserHandler) Deactivate(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.users.Deactivate(c.Request.Context(), viewer, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
