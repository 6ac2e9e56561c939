// internal/interfaces/http/handlers/businessconfig.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/businessrule"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
)

// BusinessConfigHandler handles business rule endpoints
type BusinessConfigHandler struct {
	registry *businessrule.Registry
	sessions *businessrule.SessionStore
}

// NewBusinessConfigHandler creates a new business config handler
func NewBusinessConfigHandler(registry *businessrule.Registry, sessions *businessrule.SessionStore) *BusinessConfigHandler {
	return &BusinessConfigHandler{
		registry: registry,
		sessions: sessions,
	}
}

// ListTypes handles GET /business-types
func (h *BusinessConfigHandler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Business types retrieved successfully",
		"data":    h.registry.Types(),
	})
}

// GetActive handles GET /business-config. It returns the active config
// together with the terminal's current selections.
func (h *BusinessConfigHandler) GetActive(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)

	cfg, sel, err := h.sessions.ActiveConfig(c.Request.Context(), terminalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve business configuration",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Business configuration retrieved successfully",
		"data": gin.H{
			"config":    cfg,
			"selection": sel,
		},
	})
}

// SelectType handles PUT /business-config/type
func (h *BusinessConfigHandler) SelectType(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)

	var req struct {
		BusinessType businessrule.BusinessType `json:"business_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel, err := h.sessions.SelectBusinessType(c.Request.Context(), terminalID, req.BusinessType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Business type selected successfully",
		"data":    sel,
	})
}

// SetOrderType handles PUT /business-config/order-type
func (h *BusinessConfigHandler) SetOrderType(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)

	var req struct {
		OrderType businessrule.OrderType `json:"order_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel, err := h.sessions.SetOrderType(c.Request.Context(), terminalID, req.OrderType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order type selected successfully",
		"data":    sel,
	})
}

// SetLocation handles PUT /business-config/location
func (h *BusinessConfigHandler) SetLocation(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)

	var req struct {
		LocationID string `json:"location_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel, err := h.sessions.SetLocation(c.Request.Context(), terminalID, req.LocationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location selected successfully",
		"data":    sel,
	})
}

// SetCustomField handles PUT /business-config/fields/:field_id
func (h *BusinessConfigHandler) SetCustomField(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)
	fieldID := c.Param("field_id")

	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel, err := h.sessions.SetCustomFieldValue(c.Request.Context(), terminalID, fieldID, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Field updated successfully",
		"data":    sel,
	})
}

// ClearSelections handles POST /business-config/reset
func (h *BusinessConfigHandler) ClearSelections(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)

	if err := h.sessions.ClearSelections(c.Request.Context(), terminalID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset selections",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Selections reset successfully",
	})
}
