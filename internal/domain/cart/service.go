// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL bounds how long an idle terminal keeps its cart
const cartTTL = 24 * time.Hour

// Service handles cart business logic for terminal sessions
type Service struct {
	redisClient *redis.Client
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client) *Service {
	return &Service{
		redisClient: redisClient,
	}
}

// AddItemRequest represents an add to cart request
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Name      string `json:"name" binding:"required"`
	UnitPrice int64  `json:"unit_price" binding:"required,min=0"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Variant   string `json:"variant"`
	Addition  string `json:"addition"`
	Image     string `json:"image"`
}

// UpdateQuantityRequest represents an update quantity request.
// Quantity zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// Get retrieves the cart for a terminal, returning an empty cart when
// none exists yet
func (s *Service) Get(ctx context.Context, terminalID string) (*TerminalCart, error) {
	if terminalID == "" {
		return nil, fmt.Errorf("terminal ID required")
	}

	data, err := s.redisClient.Get(ctx, s.key(terminalID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &TerminalCart{
			TerminalID: terminalID,
			Lines:      []Line{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}, nil
	} else if err != nil {
		return nil, err
	}

	var tc TerminalCart
	if err := json.Unmarshal([]byte(data), &tc); err != nil {
		return nil, err
	}

	return &tc, nil
}

// AddItem adds a line to the cart, merging with an existing line of the
// same (product, variant) identity by summing quantities
func (s *Service) AddItem(ctx context.Context, terminalID string, req *AddItemRequest) (*TerminalCart, error) {
	if req.Quantity <= 0 {
		// treated as a no-op rather than an error
		return s.Get(ctx, terminalID)
	}

	tc, err := s.Get(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	tc.add(Line{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		Variant:   req.Variant,
		Addition:  req.Addition,
		Image:     req.Image,
	})

	if err := s.save(ctx, terminalID, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

// UpdateQuantity sets a line's quantity directly; zero removes the line
func (s *Service) UpdateQuantity(ctx context.Context, terminalID, productID, variantID string, quantity int) (*TerminalCart, error) {
	tc, err := s.Get(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	if !tc.setQuantity(LineKey(productID, variantID), quantity) {
		return nil, fmt.Errorf("item not found in cart")
	}

	if err := s.save(ctx, terminalID, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

// RemoveItem deletes a line; removing an absent line is not an error
func (s *Service) RemoveItem(ctx context.Context, terminalID, productID, variantID string) (*TerminalCart, error) {
	tc, err := s.Get(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	tc.remove(LineKey(productID, variantID))

	if err := s.save(ctx, terminalID, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

// Clear empties the cart unconditionally
func (s *Service) Clear(ctx context.Context, terminalID string) error {
	if terminalID == "" {
		return fmt.Errorf("terminal ID required")
	}
	return s.redisClient.Del(ctx, s.key(terminalID)).Err()
}

func (s *Service) key(terminalID string) string {
	return fmt.Sprintf("pos:cart:%s", terminalID)
}

func (s *Service) save(ctx context.Context, terminalID string, tc *TerminalCart) error {
	data, err := json.Marshal(tc)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, s.key(terminalID), data, cartTTL).Err()
}
