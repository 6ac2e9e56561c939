// internal/domain/order/entity.go
package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents the order status
type Status string

const (
	// StatusCompleted is a settled sale
	StatusCompleted Status = "completed"
	// StatusPendingPayment is a parked order awaiting settlement
	StatusPendingPayment Status = "pending_payment"
	// StatusOnCooking and StatusReadyToServe are the kitchen stages for
	// food-service business types
	StatusOnCooking    Status = "on_cooking"
	StatusReadyToServe Status = "ready_to_serve"
	StatusCancelled    Status = "cancelled"
)

// ValidStatus reports whether s is a known order status
func ValidStatus(s Status) bool {
	switch s {
	case StatusCompleted, StatusPendingPayment, StatusOnCooking, StatusReadyToServe, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions maps each status to the statuses it may move to
var statusTransitions = map[Status][]Status{
	StatusPendingPayment: {StatusCompleted, StatusCancelled},
	StatusCompleted:      {StatusOnCooking, StatusCancelled},
	StatusOnCooking:      {StatusReadyToServe, StatusCancelled},
	StatusReadyToServe:   {},
	StatusCancelled:      {},
}

// Order represents a finalized point-of-sale transaction
type Order struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:20" json:"order_number"`
	TerminalID  string `gorm:"index;size:100" json:"terminal_id"`
	Status      Status `gorm:"not null;index;default:'completed'" json:"status"`

	// Sale context captured at finalization
	BusinessType string `gorm:"size:50" json:"business_type"`
	OrderType    string `gorm:"size:50" json:"order_type"`
	LocationID   string `gorm:"size:100" json:"location_id"`
	LocationName string `gorm:"size:255" json:"location_name"`
	CustomFields string `gorm:"type:text" json:"custom_fields"` // JSON object of field id -> value
	Notes        string `gorm:"type:text" json:"notes"`

	// Pricing snapshot, immutable once written
	SubtotalAmount int64   `gorm:"not null" json:"subtotal_amount"` // minor units
	DiscountAmount int64   `gorm:"default:0" json:"discount_amount"`
	TaxAmount      int64   `gorm:"default:0" json:"tax_amount"`
	TotalAmount    int64   `gorm:"not null" json:"total_amount"`
	DiscountRate   float64 `json:"discount_rate"`
	TaxRate        float64 `json:"tax_rate"`
	Currency       string  `gorm:"size:3" json:"currency"`

	// Settlement
	PaymentMethod string `gorm:"size:20" json:"payment_method"` // cash, mobile, card, or pending
	AmountPaid    int64  `gorm:"default:0" json:"amount_paid"`
	ChangeAmount  int64  `gorm:"default:0" json:"change_amount"`
	PaymentPhone  string `gorm:"size:20" json:"payment_phone,omitempty"`

	CustomerID *string `gorm:"index;size:36" json:"customer_id"`
	CashierID  *string `gorm:"index;size:36" json:"cashier_id"`

	SettledAt *time.Time     `json:"settled_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []Item `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// Item represents one line of an order
type Item struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OrderID   string `gorm:"not null;index;size:36" json:"order_id"`
	ProductID string `gorm:"not null;index;size:36" json:"product_id"`
	VariantID string `gorm:"size:36" json:"variant_id"`
	Name      string `gorm:"not null;size:255" json:"name"`
	Variant   string `gorm:"size:255" json:"variant"`
	Addition  string `gorm:"size:255" json:"addition"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	UnitPrice int64  `gorm:"not null" json:"unit_price"` // minor units
	LineTotal int64  `gorm:"not null" json:"line_total"` // Quantity * UnitPrice
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string { return "orders" }
func (Item) TableName() string  { return "order_items" }

// BeforeCreate assigns the id when the caller did not
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// NewOrderNumber generates a short receipt-friendly order number:
// month and day followed by four random digits, e.g. "08311234"
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s%04d", now.Format("0102"), rand.Intn(10000))
}

// CanTransitionTo reports whether the order may move to the target
// status. Terminal statuses allow no transitions.
func (o *Order) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsSettled reports whether the order has been paid for
func (o *Order) IsSettled() bool {
	return o.Status != StatusPendingPayment && o.Status != StatusCancelled && o.PaymentMethod != "pending"
}

// IsPending reports whether the order is parked awaiting payment
func (o *Order) IsPending() bool {
	return o.Status == StatusPendingPayment
}
