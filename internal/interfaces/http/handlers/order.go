// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/payment"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pendingqueue"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	finalizer    *order.Finalizer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, finalizer *order.Finalizer) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		finalizer:    finalizer,
	}
}

// FinalizePaid handles POST /orders/finalize
func (h *OrderHandler) FinalizePaid(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)

	var req order.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.finalizer.FinalizeAsPaid(c.Request.Context(), terminalID, &req)
	if err != nil {
		h.finalizeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order completed successfully",
		"data":    o,
	})
}

// FinalizePending handles POST /orders/park
func (h *OrderHandler) FinalizePending(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)

	var req order.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.finalizer.FinalizeAsPending(c.Request.Context(), terminalID, &req)
	if err != nil {
		h.finalizeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order saved as pending",
		"data":    o,
	})
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    resp,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// GetOrderByNumber handles GET /orders/number/:number, looking an order
// up by its receipt number
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	o, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// UpdateStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status order.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    o,
	})
}

// ListPending handles GET /pending-orders. It serves from the durable
// queue so parked orders survive a backend restart.
func (h *OrderHandler) ListPending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Pending orders retrieved successfully",
		"data":    h.orderService.PendingEntries(),
	})
}

// SettlePending handles POST /orders/:id/settle
func (h *OrderHandler) SettlePending(c *gin.Context) {
	var req struct {
		Method string `json:"method" binding:"required,oneof=cash mobile card"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.orderService.SettlePending(c.Request.Context(), c.Param("id"), req.Method)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pending order settled successfully",
		"data":    o,
	})
}

// finalizeError maps finalization errors to HTTP responses
func (h *OrderHandler) finalizeError(c *gin.Context, err error) {
	var validation *order.ValidationError
	var notReady *payment.NotReadyError
	var persistence *pendingqueue.PersistenceError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   validation.Error(),
			"details": validation,
		})
	case errors.As(err, &notReady):
		c.JSON(http.StatusConflict, gin.H{
			"error": notReady.Error(),
		})
	case errors.As(err, &persistence):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Failed to record pending order",
			"details": persistence.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
	}
}
