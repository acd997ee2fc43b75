package handler

import (
	"github.com/agencyops/backend/internal/application/serialapp"
	"github.com/gin-gonic/gin"
)

// SerialHandler handles serial number provisioning and resolution
type SerialHandler struct {
	BaseHandler
	serialService *serialapp.Service
}

// NewSerialHandler creates a new serial handler
func NewSerialHandler(serialService *serialapp.Service) *SerialHandler {
	return &SerialHandler{serialService: serialService}
}

// RegisterRoutes registers all serial routes
func (h *SerialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	serials := rg.Group("/serials")
	{
		serials.POST("/provision", h.Provision)
		serials.POST("/resolve", h.Resolve)
	}
}

// Provision claims or registers a serial number for a policy type
func (h *SerialHandler) Provision(c *gin.Context) {
	var req serialapp.ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.serialService.Provision(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Resolve looks up a serial number, transparently matching legacy 8-digit
// records against 9-digit input
func (h *SerialHandler) Resolve(c *gin.Context) {
	var req serialapp.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.serialService.Resolve(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
