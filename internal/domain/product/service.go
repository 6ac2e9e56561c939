// internal/domain/product/service.go
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// catalogCacheTTL bounds how stale the cached catalog may get
const catalogCacheTTL = 5 * time.Minute

// Service handles catalog business logic
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// NewService creates a new product service
func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
	}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	All      bool   `form:"all"` // include inactive items
}

// catalogCache is the Redis snapshot of the full active catalog
type catalogCache struct {
	Products []Product `json:"products"`
	CachedAt time.Time `json:"cached_at"`
}

const catalogCacheKey = "pos:catalog"

// List returns catalog items. The unfiltered active catalog is served
// from Redis; filtered queries go to the database directly.
func (s *Service) List(ctx context.Context, req *ListRequest) ([]Product, error) {
	if req.Category == "" && req.Search == "" && !req.All {
		if cached, err := s.cachedCatalog(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	query := s.db.WithContext(ctx).Model(&Product{}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Additions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") })

	if !req.All {
		query = query.Where("is_active = ?", true)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Search != "" {
		query = query.Where("name ILIKE ?", "%"+req.Search+"%")
	}

	var products []Product
	if err := query.Order("sort_order, name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if req.Category == "" && req.Search == "" && !req.All {
		s.cacheCatalog(ctx, products)
	}
	return products, nil
}

// Categories returns the distinct categories of active products
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&Product{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Get returns one product by id
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := s.db.WithContext(ctx).
		Preload("Variants").Preload("Additions").
		First(&p, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// CreateRequest represents product creation data
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=0"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sort_order"`
	Variants    []struct {
		Name  string `json:"name" binding:"required"`
		Price int64  `json:"price" binding:"min=0"`
	} `json:"variants"`
	Additions []struct {
		Name  string `json:"name" binding:"required"`
		Price int64  `json:"price" binding:"min=0"`
	} `json:"additions"`
}

// Create adds a product to the catalog
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Product, error) {
	p := &Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}
	for _, v := range req.Variants {
		p.Variants = append(p.Variants, Variant{Name: v.Name, Price: v.Price})
	}
	for _, a := range req.Additions {
		p.Additions = append(p.Additions, Addition{Name: a.Name, Price: a.Price})
	}

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateCatalog(ctx)
	return p, nil
}

// UpdateRequest represents product update data; nil fields are untouched
type UpdateRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

// Update changes product fields
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if len(updates) == 0 {
		return p, nil
	}

	if err := s.db.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidateCatalog(ctx)
	return s.Get(ctx, id)
}

// Delete soft-deletes a product
func (s *Service) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}

	s.invalidateCatalog(ctx)
	return nil
}

func (s *Service) cachedCatalog(ctx context.Context) ([]Product, error) {
	data, err := s.redisClient.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		return nil, err
	}
	var cache catalogCache
	if err := json.Unmarshal([]byte(data), &cache); err != nil {
		return nil, err
	}
	return cache.Products, nil
}

func (s *Service) cacheCatalog(ctx context.Context, products []Product) {
	cache := catalogCache{Products: products, CachedAt: time.Now().UTC()}
	data, err := json.Marshal(cache)
	if err != nil {
		return
	}
	// best effort, the database remains the source of truth
	s.redisClient.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
}

func (s *Service) invalidateCatalog(ctx context.Context) {
	s.redisClient.Del(ctx, catalogCacheKey)
}
