package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcrm "github.com/investkaro/backend/internal/application/crm"
	"github.com/investkaro/backend/internal/application/importer"
	"github.com/investkaro/backend/internal/interfaces/http/dto"
	"github.com/investkaro/backend/internal/interfaces/http/middleware"
)

// maxImportSize caps uploaded CSV files at 10 MiB
const maxImportSize = 10 << 20

// ClientHandler serves the master client pool
type ClientHandler struct {
	BaseHandler
	clients *appcrm.ClientService
	imports *importer.ClientImportService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *appcrm.ClientService, imports *importer.ClientImportService) *ClientHandler {
	return &ClientHandler{clients: clients, imports: imports}
}

// RegisterRoutes registers client pool routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.Get)
		clients.POST("/bulk-assign", middleware.RequireManager(), h.BulkAssign)
		clients.POST("/import", middleware.RequireManager(), h.Import)
	}
}

type createClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Mobile string `json:"mobile" binding:"required,in_mobile"`
	Email  string `json:"email" binding:"omitempty,email"`
	City   string `json:"city"`
}

// Create adds a client to the pool
func (h *ClientHandler) Create(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.clients.Create(c.Request.Context(), appcrm.CreateClientInput{
		Name:   req.Name,
		Mobile: req.Mobile,
		Email:  req.Email,
		City:   req.City,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one client
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.clients.Get(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns pool clients; ?unassigned=true narrows to clients still
// waiting for an agent.
func (h *ClientHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	unassignedOnly := c.Query("unassigned") == "true"

	filter := req.ToFilter()
	clients, total, err := h.clients.List(c.Request.Context(), filter, unassignedOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

type bulkAssignRequest struct {
	ClientIDs []uuid.UUID `json:"client_ids" binding:"required,min=1"`
	AgentID   uuid.UUID   `json:"agent_id" binding:"required"`
}

// BulkAssign hands a batch of pool clients to an agent
func (h *ClientHandler) BulkAssign(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req bulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.clients.BulkAssign(c.Request.Context(), viewer, appcrm.BulkAssignInput{
		ClientIDs: req.ClientIDs,
		AgentID:   req.AgentID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Import bulk-loads clients from an uploaded CSV file
func (h *ClientHandler) Import(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "a CSV file is required in the 'file' field")
		return
	}
	if fileHeader.Size > maxImportSize {
		h.BadRequest(c, "file exceeds the 10MB import limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "could not read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.imports.Import(c.Request.Context(), viewer, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
