// internal/domain/customer/entity.go
package customer

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a repeat buyer attached to orders for loyalty
// tracking and pending-order follow-up
type Customer struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Phone         string         `gorm:"uniqueIndex;size:20" json:"phone"`
	Email         string         `gorm:"size:255" json:"email"`
	LoyaltyPoints int            `gorm:"default:0" json:"loyalty_points"`
	Notes         string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate assigns the id when the caller did not
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
