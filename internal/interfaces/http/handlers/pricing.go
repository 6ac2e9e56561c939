// internal/interfaces/http/handlers/pricing.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/businessrule"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/pricing"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
)

// PricingHandler serves the live totals for a terminal's cart
type PricingHandler struct {
	config      *config.Config
	cartService *cart.Service
	sessions    *businessrule.SessionStore
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(cfg *config.Config, cartService *cart.Service, sessions *businessrule.SessionStore) *PricingHandler {
	return &PricingHandler{
		config:      cfg,
		cartService: cartService,
		sessions:    sessions,
	}
}

// GetQuote handles GET /pricing. The snapshot is recomputed from the
// current cart and active rules on every call.
func (h *PricingHandler) GetQuote(c *gin.Context) {
	terminalID := middleware.GetTerminalIDFromContext(c)
	ctx := c.Request.Context()

	cfg, _, err := h.sessions.ActiveConfig(ctx, terminalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve business configuration",
		})
		return
	}

	tc, err := h.cartService.Get(ctx, terminalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	snapshot, err := pricing.Compute(tc.Lines, cfg.DefaultDiscountRate, h.config.Org.TaxRate)
	if err != nil {
		var cfgErr *pricing.ConfigError
		if errors.As(err, &cfgErr) {
			// the snapshot is clamped; surface the misconfiguration
			c.JSON(http.StatusConflict, gin.H{
				"error": cfgErr.Error(),
				"data":  snapshot,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute pricing",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pricing computed successfully",
		"data": gin.H{
			"snapshot":  snapshot,
			"currency":  h.config.Org.Currency,
			"tax_label": h.config.Org.TaxLabel,
		},
	})
}
