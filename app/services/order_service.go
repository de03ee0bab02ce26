package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/event"
	"github.com/pawmart/pawmart/pkg/logger"
)

// OrderService covers reads and administrative status changes on orders.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Get returns an order visible to the requester: the owner, or any admin.
func (s *OrderService) Get(id, requesterID uint, requesterRole models.Role) (models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	if order.UserID != requesterID && requesterRole != models.RoleAdmin {
		return models.Order{}, ErrForbidden
	}
	return order, nil
}

// ListMine returns the requester's orders, newest first.
func (s *OrderService) ListMine(userID uint) ([]models.Order, error) {
	return s.orders.ListByUser(userID)
}

// List returns a page of all orders for administrators, optionally filtered
// by status.
func (s *OrderService) List(page, perPage int, status string) ([]models.Order, database.Pagination, error) {
	st := models.OrderStatus(status)
	if status != "" && !models.ValidOrderStatus(st) {
		return nil, database.Pagination{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.orders.List(page, perPage, st)
}

// StatusChanged is the payload of the "order.status_changed" event.
type StatusChanged struct {
	OrderID uint               `json:"order_id"`
	UserID  uint               `json:"user_id"`
	Status  models.OrderStatus `json:"status"`
}

// UpdateStatus overwrites the order's status. Any transition is permitted;
// the status set is closed but its graph is not.
func (s *OrderService) UpdateStatus(id uint, status models.OrderStatus) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	if err := s.orders.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	order.Status = status

	logger.Info("order status updated", "order_id", id, "status", status)
	event.FireAsync("order.status_changed", StatusChanged{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  status,
	})

	return order, nil
}

// Cancel moves the requester's own order to cancelled.
func (s *OrderService) Cancel(id, requesterID uint, requesterRole models.Role) (models.Order, error) {
	if _, err := s.Get(id, requesterID, requesterRole); err != nil {
		return models.Order{}, err
	}
	return s.UpdateStatus(id, models.OrderCancelled)
}

// FeedMessage renders a status change as the websocket feed payload.
func (c StatusChanged) FeedMessage() []byte {
	b, _ := json.Marshal(c)
	return b
}
