package service

import (
	"context"
	"fmt"

	"homevista/internal/domain"
	"homevista/internal/storage"
)

// DesignService manages saved room design documents.
type DesignService interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.RoomDesign, error)
	Get(ctx context.Context, id string) (*domain.RoomDesign, error)
	Create(ctx context.Context, design *domain.RoomDesign) error
	Update(ctx context.Context, id string, patch *domain.RoomDesign) (*domain.RoomDesign, error)
}

type designService struct {
	store storage.Store
}

// NewDesignService creates a new instance of DesignService
func NewDesignService(store storage.Store) DesignService {
	return &designService{store: store}
}

func (s *designService) ListByUser(ctx context.Context, userID string) ([]*domain.RoomDesign, error) {
	designs, err := s.store.ListRoomDesignsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room designs: %w", err)
	}
	return designs, nil
}

func (s *designService) Get(ctx context.Context, id string) (*domain.RoomDesign, error) {
	return s.store.GetRoomDesign(ctx, id)
}

func (s *designService) Create(ctx context.Context, design *domain.RoomDesign) error {
	if err := s.store.CreateRoomDesign(ctx, design); err != nil {
		return fmt.Errorf("failed to create room design: %w", err)
	}
	return nil
}

// Update merges the non-zero fields of the patch into the stored design.
func (s *designService) Update(ctx context.Context, id string, patch *domain.RoomDesign) (*domain.RoomDesign, error) {
	design, err := s.store.GetRoomDesign(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != "" {
		design.Title = patch.Title
	}
	if patch.RoomType != "" {
		design.RoomType = patch.RoomType
	}
	if patch.DesignType != "" {
		design.DesignType = patch.DesignType
	}
	if patch.Theme != "" {
		design.Theme = patch.Theme
	}
	if patch.Elements != nil {
		design.Elements = patch.Elements
	}
	if patch.ImageURL != "" {
		design.ImageURL = patch.ImageURL
	}

	if err := s.store.UpdateRoomDesign(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}
