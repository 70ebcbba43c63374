package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"homevista/internal/config"
	"homevista/internal/domain"
	"homevista/internal/storage"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartService manages a user's cart and its derived totals.
type CartService interface {
	Get(ctx context.Context, userID string) ([]*domain.CartLine, error)
	Add(ctx context.Context, userID, furnitureID, roomDesignID string, quantity int, position *domain.Position) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error)
	Remove(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context, userID string) error
	Totals(ctx context.Context, userID string) (domain.CartTotals, error)
}

type cartService struct {
	store    storage.Store
	checkout config.CheckoutConfig
}

// NewCartService creates a new instance of CartService
func NewCartService(store storage.Store, checkout config.CheckoutConfig) CartService {
	return &cartService{store: store, checkout: checkout}
}

// Get resolves each cart row against the catalog. Rows whose furniture
// no longer exists are returned flagged as orphaned with nil Furniture,
// never dropped silently.
func (s *cartService) Get(ctx context.Context, userID string) ([]*domain.CartLine, error) {
	items, err := s.store.ListCartByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	lines := make([]*domain.CartLine, 0, len(items))
	for _, item := range items {
		line := &domain.CartLine{CartItem: *item}
		furniture, err := s.store.GetFurnitureItem(ctx, item.FurnitureID)
		switch {
		case err == storage.ErrFurnitureNotFound:
			line.Orphaned = true
		case err != nil:
			return nil, fmt.Errorf("failed to resolve furniture %s: %w", item.FurnitureID, err)
		default:
			line.Furniture = furniture
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Add appends a new cart row. Each add creates a distinct row, even for
// furniture already in the cart, so per-drop positions stay separate.
func (s *cartService) Add(ctx context.Context, userID, furnitureID, roomDesignID string, quantity int, position *domain.Position) (*domain.CartItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.store.GetFurnitureItem(ctx, furnitureID); err != nil {
		return nil, err
	}

	item := &domain.CartItem{
		UserID:       userID,
		FurnitureID:  furnitureID,
		RoomDesignID: roomDesignID,
		Quantity:     quantity,
		Position:     position,
	}
	if err := s.store.AddCartItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return item, nil
}

// UpdateQuantity rejects values below 1 without touching the row.
func (s *cartService) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.store.UpdateCartItemQuantity(ctx, id, quantity)
}

// Remove reports whether a row was deleted. Removing an unknown id is
// not an error.
func (s *cartService) Remove(ctx context.Context, id string) (bool, error) {
	return s.store.RemoveCartItem(ctx, id)
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	return s.store.ClearCart(ctx, userID)
}

// Totals prices the resolvable rows only. Tax is rounded half away from
// zero on the subtotal; delivery is a flat fee on any non-empty cart.
func (s *cartService) Totals(ctx context.Context, userID string) (domain.CartTotals, error) {
	lines, err := s.Get(ctx, userID)
	if err != nil {
		return domain.CartTotals{}, err
	}
	return s.computeTotals(lines), nil
}

func (s *cartService) computeTotals(lines []*domain.CartLine) domain.CartTotals {
	var totals domain.CartTotals
	priced := false
	for _, line := range lines {
		if line.Orphaned || line.Furniture == nil {
			continue
		}
		totals.Subtotal += line.Furniture.Price * int64(line.Quantity)
		priced = true
	}

	totals.Tax = int64(math.Round(float64(totals.Subtotal) * s.checkout.TaxRate))
	if priced {
		totals.Delivery = s.checkout.DeliveryFee
	}
	totals.Total = totals.Subtotal + totals.Tax + totals.Delivery
	return totals
}
