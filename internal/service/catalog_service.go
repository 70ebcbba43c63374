package service

import (
	"context"
	"fmt"
	"sort"

	"homevista/internal/domain"
	"homevista/internal/storage"
)

// CatalogService exposes the furniture catalog, read-only.
type CatalogService interface {
	ListFurniture(ctx context.Context, roomType string) ([]*domain.FurnitureItem, error)
	GetFurnitureItem(ctx context.Context, id string) (*domain.FurnitureItem, error)
}

type catalogService struct {
	store storage.Store
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(store storage.Store) CatalogService {
	return &catalogService{store: store}
}

// ListFurniture returns the items fitting a room type, cheapest first.
// The sort is stable so equally priced items keep their catalog order.
func (s *catalogService) ListFurniture(ctx context.Context, roomType string) ([]*domain.FurnitureItem, error) {
	items, err := s.store.ListFurnitureByRoom(ctx, roomType)
	if err != nil {
		return nil, fmt.Errorf("failed to list furniture: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Price < items[j].Price
	})
	return items, nil
}

func (s *catalogService) GetFurnitureItem(ctx context.Context, id string) (*domain.FurnitureItem, error) {
	return s.store.GetFurnitureItem(ctx, id)
}
