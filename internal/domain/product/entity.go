// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable catalog item
type Product struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Category    string         `gorm:"index;size:100" json:"category"`
	Description string         `gorm:"size:500" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // minor units
	Image       string         `gorm:"size:500" json:"image"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Variants  []Variant  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variants,omitempty"`
	Additions []Addition `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"additions,omitempty"`
}

// Variant represents a product option that replaces the base price when
// it carries one (size, edition, strength)
type Variant struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProductID string    `gorm:"not null;index;size:36" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Price     int64     `json:"price"` // overrides product price if set
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Addition represents an optional extra sold alongside a product
type Addition struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProductID string    `gorm:"not null;index;size:36" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Price     int64     `json:"price"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Variant) TableName() string  { return "product_variants" }
func (Addition) TableName() string { return "product_additions" }

// BeforeCreate assigns ids when the caller did not
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

func (a *Addition) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// PriceFor returns the price charged when the given variant is chosen
func (p *Product) PriceFor(variantID string) int64 {
	if variantID == "" {
		return p.Price
	}
	for _, v := range p.Variants {
		if v.ID == variantID && v.Price > 0 {
			return v.Price
		}
	}
	return p.Price
}
