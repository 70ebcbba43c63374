package service

import (
	"context"
	"fmt"

	"homevista/internal/domain"
	"homevista/internal/storage"
)

// ConsultantService exposes consultants and their bookings.
type ConsultantService interface {
	List(ctx context.Context, consultantType string) ([]*domain.Consultant, error)
	Get(ctx context.Context, id string) (*domain.Consultant, error)
	ListBookings(ctx context.Context, userID string) ([]*domain.Booking, error)
	CreateBooking(ctx context.Context, booking *domain.Booking) error
}

type consultantService struct {
	store storage.Store
}

// NewConsultantService creates a new instance of ConsultantService
func NewConsultantService(store storage.Store) ConsultantService {
	return &consultantService{store: store}
}

func (s *consultantService) List(ctx context.Context, consultantType string) ([]*domain.Consultant, error) {
	consultants, err := s.store.ListConsultants(ctx, consultantType)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	return consultants, nil
}

func (s *consultantService) Get(ctx context.Context, id string) (*domain.Consultant, error) {
	return s.store.GetConsultant(ctx, id)
}

func (s *consultantService) ListBookings(ctx context.Context, userID string) ([]*domain.Booking, error) {
	bookings, err := s.store.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// CreateBooking verifies the consultant and defaults the fee to the
// consultant's price when the caller left it unset.
func (s *consultantService) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	consultant, err := s.store.GetConsultant(ctx, booking.ConsultantID)
	if err != nil {
		return err
	}

	if booking.Status == "" {
		booking.Status = domain.BookingPending
	}
	if booking.TotalAmount == 0 {
		booking.TotalAmount = consultant.Price
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}
