// internal/domain/order/finalizer.go
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/businessrule"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/payment"
	"github.com/your-org/pos-backend/internal/domain/pricing"
	"github.com/your-org/pos-backend/internal/pendingqueue"
	"gorm.io/gorm"
)

// ValidationError lists everything blocking finalization so the
// terminal can surface all of it at once
type ValidationError struct {
	EmptyCart       bool     `json:"empty_cart,omitempty"`
	MissingCustomer bool     `json:"missing_customer,omitempty"`
	MissingLocation bool     `json:"missing_location,omitempty"`
	MissingFields   []string `json:"missing_fields,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.EmptyCart {
		parts = append(parts, "cart is empty")
	}
	if e.MissingCustomer {
		parts = append(parts, "customer is required")
	}
	if e.MissingLocation {
		parts = append(parts, "location is required")
	}
	if len(e.MissingFields) > 0 {
		parts = append(parts, fmt.Sprintf("required fields missing: %s", strings.Join(e.MissingFields, ", ")))
	}
	if len(parts) == 0 {
		return "order cannot be finalized"
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool {
	return !e.EmptyCart && !e.MissingCustomer && !e.MissingLocation && len(e.MissingFields) == 0
}

// FinalizeRequest carries the finalization inputs the terminal session
// does not already hold
type FinalizeRequest struct {
	CustomerID *string `json:"customer_id,omitempty"`
	CashierID  *string `json:"cashier_id,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// Finalizer turns a terminal's cart, rule selections and payment
// attempt into a persisted order
type Finalizer struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
	rules       *businessrule.SessionStore
	payments    *payment.Manager
	queue       *pendingqueue.Queue
	customers   *customer.Service
	logger      *logrus.Logger
}

// NewFinalizer creates a new order finalizer
func NewFinalizer(
	db *gorm.DB,
	cfg *config.Config,
	cartService *cart.Service,
	rules *businessrule.SessionStore,
	payments *payment.Manager,
	queue *pendingqueue.Queue,
	customers *customer.Service,
	logger *logrus.Logger,
) *Finalizer {
	return &Finalizer{
		db:          db,
		config:      cfg,
		cartService: cartService,
		rules:       rules,
		payments:    payments,
		queue:       queue,
		customers:   customers,
		logger:      logger,
	}
}

// FinalizeAsPaid settles the terminal's payment attempt and persists a
// completed order. The payment attempt must be completable and must
// cover the cart's current total.
func (f *Finalizer) FinalizeAsPaid(ctx context.Context, terminalID string, req *FinalizeRequest) (*Order, error) {
	draft, err := f.buildDraft(ctx, terminalID, req)
	if err != nil {
		return nil, err
	}

	attempt := f.payments.Get(terminalID)
	if attempt == nil {
		return nil, &payment.NotReadyError{Reason: "no payment attempt in progress"}
	}
	if attempt.Total() != draft.order.TotalAmount {
		return nil, &payment.NotReadyError{
			Method: attempt.Method(),
			Reason: "payment amount no longer matches the order total",
		}
	}
	if err := attempt.Completable(); err != nil {
		return nil, err
	}

	status := attempt.Status()
	now := time.Now().UTC()
	draft.order.Status = StatusCompleted
	draft.order.PaymentMethod = string(status.Method)
	draft.order.SettledAt = &now
	switch status.Method {
	case payment.MethodCash:
		draft.order.AmountPaid = status.AmountTendered
		draft.order.ChangeAmount = status.Change
	case payment.MethodMobile:
		draft.order.AmountPaid = draft.order.TotalAmount
		draft.order.PaymentPhone = status.Phone
	default:
		draft.order.AmountPaid = draft.order.TotalAmount
	}

	if err := f.db.WithContext(ctx).Create(draft.order).Error; err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	f.payments.Clear(terminalID)
	f.resetTerminal(ctx, terminalID)
	f.awardLoyalty(ctx, draft.order)

	f.logger.WithFields(logrus.Fields{
		"order_id":     draft.order.ID,
		"order_number": draft.order.OrderNumber,
		"terminal_id":  terminalID,
		"method":       draft.order.PaymentMethod,
		"total":        draft.order.TotalAmount,
	}).Info("order settled")

	return draft.order, nil
}

// FinalizeAsPending parks the order for later settlement. No payment is
// required; the order lands in the durable pending queue as well as the
// database so it survives a restart.
func (f *Finalizer) FinalizeAsPending(ctx context.Context, terminalID string, req *FinalizeRequest) (*Order, error) {
	draft, err := f.buildDraft(ctx, terminalID, req)
	if err != nil {
		return nil, err
	}

	draft.order.Status = StatusPendingPayment
	draft.order.PaymentMethod = "pending"

	if err := f.db.WithContext(ctx).Create(draft.order).Error; err != nil {
		return nil, fmt.Errorf("failed to save pending order: %w", err)
	}

	payload, err := json.Marshal(draft.order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pending order: %w", err)
	}
	entry := pendingqueue.Entry{
		OrderID:     draft.order.ID,
		OrderNumber: draft.order.OrderNumber,
		TerminalID:  terminalID,
		Total:       draft.order.TotalAmount,
		Payload:     payload,
		QueuedAt:    time.Now().UTC(),
	}
	if err := f.queue.Append(entry); err != nil {
		// the database row exists; the queue is the recovery copy
		return nil, err
	}

	f.payments.Clear(terminalID)
	f.resetTerminal(ctx, terminalID)

	f.logger.WithFields(logrus.Fields{
		"order_id":     draft.order.ID,
		"order_number": draft.order.OrderNumber,
		"terminal_id":  terminalID,
		"total":        draft.order.TotalAmount,
	}).Info("order parked as pending")

	return draft.order, nil
}

type orderDraft struct {
	order *Order
}

// validateDraft checks everything that can block finalization and
// reports it all at once, or nil when the terminal state is complete.
func validateDraft(cfg *businessrule.BusinessConfig, sel *businessrule.Selection, tc *cart.TerminalCart, req *FinalizeRequest) *ValidationError {
	validation := &ValidationError{}
	if tc.IsEmpty() {
		validation.EmptyCart = true
	}
	if cfg.RequiresCustomer && (req == nil || req.CustomerID == nil || *req.CustomerID == "") {
		validation.MissingCustomer = true
	}
	if businessrule.RequiresLocationFor(cfg, sel.OrderType) && sel.LocationID == "" {
		validation.MissingLocation = true
	}
	validation.MissingFields = businessrule.MissingRequiredFields(cfg, sel.CustomFieldValues)
	if validation.empty() {
		return nil
	}
	return validation
}

// buildDraft validates the terminal state and assembles the unsaved
// order with its pricing snapshot
func (f *Finalizer) buildDraft(ctx context.Context, terminalID string, req *FinalizeRequest) (*orderDraft, error) {
	cfg, sel, err := f.rules.ActiveConfig(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	tc, err := f.cartService.Get(ctx, terminalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	if validation := validateDraft(cfg, sel, tc, req); validation != nil {
		return nil, validation
	}

	snapshot, err := pricing.Compute(tc.Lines, cfg.DefaultDiscountRate, f.config.Org.TaxRate)
	if err != nil {
		return nil, err
	}

	customFields := ""
	if len(sel.CustomFieldValues) > 0 {
		data, err := json.Marshal(sel.CustomFieldValues)
		if err != nil {
			return nil, fmt.Errorf("failed to encode custom fields: %w", err)
		}
		customFields = string(data)
	}

	now := time.Now().UTC()
	o := &Order{
		ID:             uuid.New().String(),
		OrderNumber:    NewOrderNumber(now),
		TerminalID:     terminalID,
		BusinessType:   string(cfg.BusinessType),
		OrderType:      string(sel.OrderType),
		LocationID:     sel.LocationID,
		LocationName:   locationLabel(cfg, sel.LocationID),
		CustomFields:   customFields,
		SubtotalAmount: snapshot.Subtotal,
		DiscountAmount: snapshot.DiscountAmount,
		TaxAmount:      snapshot.TaxAmount,
		TotalAmount:    snapshot.Total,
		DiscountRate:   snapshot.DiscountRate,
		TaxRate:        snapshot.TaxRate,
		Currency:       f.config.Org.Currency,
	}
	if req != nil {
		o.CustomerID = req.CustomerID
		o.CashierID = req.CashierID
		o.Notes = req.Notes
	}

	for _, line := range tc.Lines {
		o.Items = append(o.Items, Item{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Name:      line.Name,
			Variant:   line.Variant,
			Addition:  line.Addition,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.UnitPrice * int64(line.Quantity),
		})
	}

	return &orderDraft{order: o}, nil
}

// awardLoyalty credits the order's customer for the sale. Failures are
// logged, not returned: the order is already settled.
func (f *Finalizer) awardLoyalty(ctx context.Context, o *Order) {
	if o.CustomerID == nil || *o.CustomerID == "" {
		return
	}
	if err := f.customers.AwardPointsForSale(ctx, *o.CustomerID, o.TotalAmount); err != nil {
		f.logger.WithError(err).WithFields(logrus.Fields{
			"order_id":    o.ID,
			"customer_id": *o.CustomerID,
		}).Warn("failed to award loyalty points")
	}
}

// resetTerminal clears the cart and rule selections after an order is
// written. Failures here are logged, not returned: the order is already
// durable and the terminal can clear manually.
func (f *Finalizer) resetTerminal(ctx context.Context, terminalID string) {
	if err := f.cartService.Clear(ctx, terminalID); err != nil {
		f.logger.WithError(err).WithField("terminal_id", terminalID).Warn("failed to clear cart after finalization")
	}
	if err := f.rules.ClearSelections(ctx, terminalID); err != nil {
		f.logger.WithError(err).WithField("terminal_id", terminalID).Warn("failed to reset selections after finalization")
	}
}

func locationLabel(cfg *businessrule.BusinessConfig, locationID string) string {
	for _, loc := range cfg.Locations {
		if loc.ID == locationID {
			return loc.Label
		}
	}
	return ""
}
