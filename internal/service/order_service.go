package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"homevista/internal/domain"
	"homevista/internal/storage"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingFields = errors.New("shipping info requires name, email, phone and address")
)

// OrderService turns carts into immutable orders.
type OrderService interface {
	Place(ctx context.Context, userID string, shipping domain.ShippingInfo, installationDate, paymentMethod, roomDesignID string) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}

type orderService struct {
	store storage.Store
	cart  CartService
	log   *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(store storage.Store, cart CartService, log *zap.Logger) OrderService {
	return &orderService{store: store, cart: cart, log: log}
}

// Place snapshots the current cart into denormalized order lines so the
// order survives later catalog changes, then clears the cart. The clear
// is best-effort: a failed clear leaves residue but never voids the
// order.
func (s *orderService) Place(ctx context.Context, userID string, shipping domain.ShippingInfo, installationDate, paymentMethod, roomDesignID string) (*domain.Order, error) {
	if shipping.Name == "" || shipping.Email == "" || shipping.Phone == "" || shipping.Address == "" {
		return nil, ErrMissingFields
	}

	lines, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := []domain.OrderLine{}
	var totals domain.CartTotals
	for _, line := range lines {
		if line.Orphaned || line.Furniture == nil {
			continue
		}
		items = append(items, domain.OrderLine{
			FurnitureID: line.FurnitureID,
			Name:        line.Furniture.Name,
			Price:       line.Furniture.Price,
			Quantity:    line.Quantity,
			ImageURL:    line.Furniture.ImageURL,
		})
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals, err = s.cart.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:           userID,
		RoomDesignID:     roomDesignID,
		Items:            items,
		TotalAmount:      totals.Total,
		InstallationDate: installationDate,
		PaymentMethod:    paymentMethod,
		PaymentStatus:    domain.PaymentPending,
		OrderStatus:      domain.OrderProcessing,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		s.log.Warn("failed to clear cart after order placement",
			zap.String("order_id", order.ID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.store.GetOrder(ctx, id)
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
