// internal/interfaces/http/handlers/receipt.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/pkg/receipt"
)

// ReceiptHandler serves printable PDF receipts
type ReceiptHandler struct {
	orderService   *order.Service
	receiptService *receipt.Service
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(orderService *order.Service, receiptService *receipt.Service) *ReceiptHandler {
	return &ReceiptHandler{
		orderService:   orderService,
		receiptService: receiptService,
	}
}

// GetReceipt handles GET /orders/:id/receipt
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	o, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	pdf, err := h.receiptService.Generate(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", o.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}
