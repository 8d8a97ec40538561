package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/pkg/rabbitmq"
)

// OrderRequest is the shipping payload plus the cart snapshot the
// client submits at checkout. Item names and prices are stored exactly
// as submitted; later catalog edits cannot alter a placed order.
type OrderRequest struct {
	Name    string             `json:"name" validate:"required"`
	Email   string             `json:"email" validate:"required,email"`
	Phone   string             `json:"phone" validate:"required"`
	Address string             `json:"address" validate:"required"`
	Items   []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Total   float64            `json:"total" validate:"gte=0"`
}

// OrderService handles order placement and lookup.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher rabbitmq.Publisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case order events are skipped.
func NewOrderService(orderRepo repositories.OrderRepository, publisher rabbitmq.Publisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// PlaceOrder validates the shipping payload and cart snapshot and
// records one immutable order with status Pending. It does not clear
// the cart: the caller performs that as a separate, best-effort step,
// and a failed clear leaves the order standing.
func (s *OrderService) PlaceOrder(identity *Identity, req OrderRequest) (*models.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	total := req.Total
	if total <= 0 {
		for _, item := range req.Items {
			total += item.Price * float64(item.Quantity)
		}
	}

	order := &models.Order{
		UserID:  identity.UserID,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Items:   req.Items,
		Total:   total,
		Status:  models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishOrderCreated(order)
	return order, nil
}

// GetOrdersForUser returns the user's orders, newest first.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func validateOrderRequest(req OrderRequest) error {
	missing := func(field, value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required: %w", field, ErrValidation)
		}
		return nil
	}
	for _, check := range []struct{ field, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"address", req.Address},
	} {
		if err := missing(check.field, check.value); err != nil {
			return err
		}
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("order must contain at least one item: %w", ErrValidation)
	}
	for _, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("order item product id is required: %w", ErrValidation)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("order item quantity must be at least 1: %w", ErrValidation)
		}
		if item.Price < 0 {
			return fmt.Errorf("order item price must not be negative: %w", ErrValidation)
		}
	}
	return nil
}

// publishOrderCreated emits an order.created event. Best effort: the
// order is already recorded, so publish failures are logged and
// swallowed.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.Total,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event for order %s: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish("order.created", body); err != nil {
		log.Printf("Warning: failed to publish order.created for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order.created for order %s", order.ID)
}
