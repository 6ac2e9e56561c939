// internal/domain/customer/service.go
package customer

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// loyaltyEarnDivisor converts spend to points: one point per major unit
const loyaltyEarnDivisor = 100

// Service handles customer business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new customer service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateRequest represents customer creation data
type CreateRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// UpdateRequest represents customer update data; nil fields are untouched
type UpdateRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// Create adds a customer
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Customer, error) {
	var existing Customer
	if err := s.db.WithContext(ctx).Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("customer with this phone number already exists")
	}

	c := &Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

// Get returns one customer by id
func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	var c Customer
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer not found")
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

// Search finds customers by name or phone fragment
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Customer, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := s.db.WithContext(ctx).Model(&Customer{})
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("name ILIKE ? OR phone LIKE ?", pattern, pattern)
	}

	var customers []Customer
	if err := db.Order("name").Limit(limit).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return customers, nil
}

// Update changes customer fields
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return c, nil
	}

	if err := s.db.WithContext(ctx).Model(c).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes a customer
func (s *Service) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&Customer{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("customer not found")
	}
	return nil
}

// PointsForSale converts a settled order total in minor units to the
// loyalty points it earns
func PointsForSale(totalAmount int64) int {
	if totalAmount <= 0 {
		return 0
	}
	return int(totalAmount / loyaltyEarnDivisor)
}

// AwardPointsForSale credits loyalty points for a settled order total
func (s *Service) AwardPointsForSale(ctx context.Context, id string, totalAmount int64) error {
	points := PointsForSale(totalAmount)
	if points <= 0 {
		return nil
	}
	result := s.db.WithContext(ctx).Model(&Customer{}).
		Where("id = ?", id).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points))
	if result.Error != nil {
		return fmt.Errorf("failed to award loyalty points: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("customer not found")
	}
	return nil
}
