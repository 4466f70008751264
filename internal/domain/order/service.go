// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/flowershop-backend/internal/domain/cart"
	"github.com/your-org/flowershop-backend/internal/domain/identity"
)

// CartAccess is what checkout needs from the cart domain: the resolved view
// of the caller's cart and the ability to clear it after an order commits.
type CartAccess interface {
	GetCart(ctx context.Context, id identity.Identity) (*cart.CartView, error)
	Clear(ctx context.Context, id identity.Identity) error
}

// Service is the checkout engine plus order queries for the back office
type Service struct {
	store Store
	carts CartAccess
	log   *logrus.Logger
}

// NewService creates a new order service
func NewService(store Store, carts CartAccess, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		store: store,
		carts: carts,
		log:   log,
	}
}

// CheckoutRequest represents checkout submission data. Name and phone may be
// omitted by authenticated callers; they default from the account profile.
type CheckoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Checkout converts the caller's cart into a durable order and clears the
// cart. Each call that observes a non-empty cart produces its own order;
// double submissions are not deduplicated here.
func (s *Service) Checkout(ctx context.Context, id identity.Identity, req *CheckoutRequest) (*Order, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	address := strings.TrimSpace(req.Address)

	if id.Authenticated() {
		if name == "" {
			name = id.Name
		}
		if phone == "" {
			phone = id.Phone
		}
	}

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if phone == "" {
		missing = append(missing, "phone")
	}
	if address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	view, err := s.carts.GetCart(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Snapshot the resolved lines at live catalog prices. The order keeps
	// this copy even if the catalog changes later.
	items := make([]OrderItem, len(view.Items))
	var total int64
	for i, line := range view.Items {
		items[i] = OrderItem{
			FlowerID: line.Flower.ID,
			Name:     line.Flower.Name,
			Quantity: line.Quantity,
			Price:    line.Flower.Price,
		}
		total += line.Flower.Price * int64(line.Quantity)
	}

	o := &Order{
		UserID:          id.UserID,
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerAddress: address,
		Items:           items,
		TotalPrice:      total,
		Status:          OrderStatusPending,
	}

	// If persistence fails the cart stays untouched: no partial checkout.
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}

	// The order is durable at this point. A failed cart clear leaves a
	// stale-looking cart, which is preferable to losing the order.
	if err := s.carts.Clear(ctx, id); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).
			Warn("order committed but cart clear failed")
	}

	return o, nil
}

// GetOrder retrieves an order by id
func (s *Service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	return s.store.GetByID(ctx, id)
}

// ListOrders returns all orders for the back office
func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	return s.store.List(ctx)
}

// ListUserOrders returns the orders belonging to one account
func (s *Service) ListUserOrders(ctx context.Context, userID uint) ([]Order, error) {
	return s.store.ListByUser(ctx, userID)
}

// UpdateStatus applies an admin status transition after checking it is legal
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) (*Order, error) {
	o, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, status)
	}

	if err := s.store.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	o.Status = status
	return o, nil
}
