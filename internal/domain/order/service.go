// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/pendingqueue"
	"gorm.io/gorm"
)

// Service handles order queries and status management
type Service struct {
	db        *gorm.DB
	queue     *pendingqueue.Queue
	customers *customer.Service
	logger    *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, queue *pendingqueue.Queue, customers *customer.Service, logger *logrus.Logger) *Service {
	return &Service{
		db:        db,
		queue:     queue,
		customers: customers,
		logger:    logger,
	}
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Status    Status `form:"status"`
	OrderType string `form:"order_type"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

// ListResponse represents orders with pagination
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// List returns orders matching the filters, newest first
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Order{})
	if req.Status != "" {
		if !ValidStatus(req.Status) {
			return nil, fmt.Errorf("unknown order status: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}
	if req.OrderType != "" {
		query = query.Where("order_type = ?", req.OrderType)
	}
	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid date_from: %w", err)
		}
		query = query.Where("created_at >= ?", from)
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, fmt.Errorf("invalid date_to: %w", err)
		}
		query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	if err := query.Preload("Items").Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// Get returns one order by id
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// GetByNumber returns one order by its receipt number
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var o Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&o, "order_number = ?", orderNumber).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus moves an order along its status lifecycle. Settling a
// pending order also removes it from the durable queue.
func (s *Service) UpdateStatus(ctx context.Context, id string, target Status) (*Order, error) {
	if !ValidStatus(target) {
		return nil, fmt.Errorf("unknown order status: %s", target)
	}

	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.CanTransitionTo(target) {
		return nil, fmt.Errorf("order cannot move from %s to %s", o.Status, target)
	}

	wasPending := o.IsPending()
	updates := map[string]interface{}{"status": target}
	if wasPending && target == StatusCompleted {
		now := time.Now().UTC()
		updates["settled_at"] = now
		o.SettledAt = &now
	}

	if err := s.db.WithContext(ctx).Model(o).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	o.Status = target

	// leaving pending for any terminal status retires the queue entry
	if wasPending {
		if err := s.queue.Remove(o.ID); err != nil {
			s.logger.WithError(err).WithField("order_id", o.ID).Warn("failed to remove settled order from pending queue")
		}
		if target == StatusCompleted {
			s.awardLoyalty(ctx, o)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": o.ID,
		"status":   target,
	}).Info("order status updated")

	return o, nil
}

// SettlePending marks a parked order as paid with the given method
func (s *Service) SettlePending(ctx context.Context, id, method string) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.IsPending() {
		return nil, fmt.Errorf("order %s is not pending payment", o.OrderNumber)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":         StatusCompleted,
		"payment_method": method,
		"amount_paid":    o.TotalAmount,
		"settled_at":     now,
	}
	if err := s.db.WithContext(ctx).Model(o).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to settle order: %w", err)
	}
	o.Status = StatusCompleted
	o.PaymentMethod = method
	o.AmountPaid = o.TotalAmount
	o.SettledAt = &now

	if err := s.queue.Remove(o.ID); err != nil {
		s.logger.WithError(err).WithField("order_id", o.ID).Warn("failed to remove settled order from pending queue")
	}
	s.awardLoyalty(ctx, o)

	s.logger.WithFields(logrus.Fields{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"method":       method,
	}).Info("pending order settled")

	return o, nil
}

// awardLoyalty credits the order's customer once the sale is settled.
// Failures are logged, not returned.
func (s *Service) awardLoyalty(ctx context.Context, o *Order) {
	if o.CustomerID == nil || *o.CustomerID == "" {
		return
	}
	if err := s.customers.AwardPointsForSale(ctx, *o.CustomerID, o.TotalAmount); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"order_id":    o.ID,
			"customer_id": *o.CustomerID,
		}).Warn("failed to award loyalty points")
	}
}

// PendingEntries lists the durable pending queue
func (s *Service) PendingEntries() []pendingqueue.Entry {
	return s.queue.List()
}
