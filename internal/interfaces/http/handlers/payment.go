// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/payment"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
)

// PaymentHandler handles payment attempt endpoints
type PaymentHandler struct {
	payments *payment.Manager
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *payment.Manager) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
	}
}

// BeginAttempt handles POST /payment. Starting an attempt discards any
// previous one for the terminal, including its method-specific state.
func (h *PaymentHandler) BeginAttempt(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)

	var req struct {
		Method payment.Method `json:"method" binding:"required"`
		Total  int64          `json:"total" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	attempt, err := h.payments.Begin(terminalID, req.Method, req.Total)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment attempt started",
		"data":    attempt.Status(),
	})
}

// GetStatus handles GET /payment. The terminal polls this while a
// mobile push is in flight.
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	attempt, ok := h.attempt(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment status retrieved successfully",
		"data":    attempt.Status(),
	})
}

// SetTendered handles PUT /payment/tendered for cash payments
func (h *PaymentHandler) SetTendered(c *gin.Context) {
	attempt, ok := h.attempt(c)
	if !ok {
		return
	}

	var req struct {
		Amount int64 `json:"amount" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := attempt.SetAmountTendered(req.Amount); err != nil {
		h.paymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tendered amount recorded",
		"data":    attempt.Status(),
	})
}

// SetPhone handles PUT /payment/phone for mobile payments
func (h *PaymentHandler) SetPhone(c *gin.Context) {
	attempt, ok := h.attempt(c)
	if !ok {
		return
	}

	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := attempt.SetPhoneNumber(h.payments.Profile(), req.Phone); err != nil {
		h.paymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Phone number recorded",
		"data":    attempt.Status(),
	})
}

// SendPush handles POST /payment/push
func (h *PaymentHandler) SendPush(c *gin.Context) {
	attempt, ok := h.attempt(c)
	if !ok {
		return
	}

	if err := attempt.SendPush(c.Request.Context()); err != nil {
		h.paymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment push sent",
		"data":    attempt.Status(),
	})
}

// ResendPush handles POST /payment/push/resend
func (h *PaymentHandler) ResendPush(c *gin.Context) {
	attempt, ok := h.attempt(c)
	if !ok {
		return
	}

	if err := attempt.Resend(c.Request.Context()); err != nil {
		h.paymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment push resent",
		"data":    attempt.Status(),
	})
}

// ResetPush handles POST /payment/push/reset
func (h *PaymentHandler) ResetPush(c *gin.Context) {
	attempt, ok := h.attempt(c)
	if !ok {
		return
	}

	if err := attempt.Reset(); err != nil {
		h.paymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment reset",
		"data":    attempt.Status(),
	})
}

// CancelAttempt handles DELETE /payment
func (h *PaymentHandler) CancelAttempt(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)
	h.payments.Clear(terminalID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment attempt cancelled",
	})
}

func (h *PaymentHandler) attempt(c *gin.Context) (*payment.Attempt, bool) {
	terminalID := middleware.GetTerminalIDFromContext(c)
	attempt := h.payments.Get(terminalID)
	if attempt == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No payment attempt in progress",
		})
		return nil, false
	}
	return attempt, true
}

// paymentError maps domain payment errors to HTTP responses
func (h *PaymentHandler) paymentError(c *gin.Context, err error) {
	var phoneErr *payment.PhoneFormatError
	var notReady *payment.NotReadyError
	var stateErr *payment.StateError

	switch {
	case errors.As(err, &phoneErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": phoneErr.Error()})
	case errors.As(err, &notReady):
		c.JSON(http.StatusConflict, gin.H{"error": notReady.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
