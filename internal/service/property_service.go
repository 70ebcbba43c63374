package service

import (
	"context"
	"fmt"

	"homevista/internal/domain"
	"homevista/internal/storage"
)

// PropertyService exposes the property marketplace.
type PropertyService interface {
	List(ctx context.Context, filter storage.PropertyFilter) ([]*domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, property *domain.Property) error
	ListSaved(ctx context.Context, userID string) ([]*domain.SavedProperty, error)
	Save(ctx context.Context, userID, propertyID string) (*domain.SavedProperty, error)
	Unsave(ctx context.Context, userID, propertyID string) error
}

type propertyService struct {
	store storage.Store
}

// NewPropertyService creates a new instance of PropertyService
func NewPropertyService(store storage.Store) PropertyService {
	return &propertyService{store: store}
}

func (s *propertyService) List(ctx context.Context, filter storage.PropertyFilter) ([]*domain.Property, error) {
	properties, err := s.store.ListProperties(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (s *propertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.store.GetProperty(ctx, id)
}

func (s *propertyService) Create(ctx context.Context, property *domain.Property) error {
	if err := s.store.CreateProperty(ctx, property); err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (s *propertyService) ListSaved(ctx context.Context, userID string) ([]*domain.SavedProperty, error) {
	saved, err := s.store.ListSavedProperties(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved properties: %w", err)
	}
	return saved, nil
}

// Save checks the property exists before recording the bookmark.
func (s *propertyService) Save(ctx context.Context, userID, propertyID string) (*domain.SavedProperty, error) {
	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	saved := &domain.SavedProperty{
		UserID:     userID,
		PropertyID: propertyID,
	}
	if err := s.store.SaveProperty(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}
	return saved, nil
}

func (s *propertyService) Unsave(ctx context.Context, userID, propertyID string) error {
	return s.store.UnsaveProperty(ctx, userID, propertyID)
}
