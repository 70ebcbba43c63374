package storage

import (
	"context"
	"errors"
	"strings"

	"homevista/internal/domain"
)

// Absence of a record is reported through these sentinels at the gateway
// boundary; mapping to user-facing failures happens one layer up.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user with this username or email already exists")
	ErrPropertyNotFound      = errors.New("property not found")
	ErrRoomDesignNotFound    = errors.New("room design not found")
	ErrConsultantNotFound    = errors.New("consultant not found")
	ErrChatNotFound          = errors.New("chat not found")
	ErrSavedPropertyNotFound = errors.New("saved property not found")
	ErrFurnitureNotFound     = errors.New("furniture item not found")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrRefreshTokenNotFound  = errors.New("refresh token not found")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
)

// PropertyFilter narrows a property listing. Zero values mean "no
// constraint"; Amenities matches listings sharing at least one amenity.
type PropertyFilter struct {
	Purpose      string
	MinPrice     int64
	MaxPrice     int64
	Location     string
	PropertyType string
	Facing       string
	Amenities    []string
}

// Matches applies the filter to a single property. Location matching is a
// case-insensitive substring test, mirroring the search box behavior.
func (f PropertyFilter) Matches(p *domain.Property) bool {
	if f.Purpose != "" && p.Purpose != f.Purpose {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.Facing != "" && p.Facing != f.Facing {
		return false
	}
	if len(f.Amenities) > 0 && !overlaps(p.Amenities, f.Amenities) {
		return false
	}
	return true
}

// Store is the persistence gateway. Every backend (memory, Mongo,
// Postgres) implements the same contract: opaque string ids, absence
// signaled through the sentinel errors above, no backend-specific
// behavior visible to callers.
type Store interface {
	// Users
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error

	// Refresh tokens
	CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error

	// Properties
	ListProperties(ctx context.Context, filter PropertyFilter) ([]*domain.Property, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	CreateProperty(ctx context.Context, property *domain.Property) error

	// Saved properties
	ListSavedProperties(ctx context.Context, userID string) ([]*domain.SavedProperty, error)
	SaveProperty(ctx context.Context, saved *domain.SavedProperty) error
	UnsaveProperty(ctx context.Context, userID, propertyID string) error

	// Room designs
	ListRoomDesignsByUser(ctx context.Context, userID string) ([]*domain.RoomDesign, error)
	GetRoomDesign(ctx context.Context, id string) (*domain.RoomDesign, error)
	CreateRoomDesign(ctx context.Context, design *domain.RoomDesign) error
	UpdateRoomDesign(ctx context.Context, design *domain.RoomDesign) error

	// Consultants
	ListConsultants(ctx context.Context, consultantType string) ([]*domain.Consultant, error)
	GetConsultant(ctx context.Context, id string) (*domain.Consultant, error)
	CreateConsultant(ctx context.Context, consultant *domain.Consultant) error

	// Bookings
	ListBookingsByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	CreateBooking(ctx context.Context, booking *domain.Booking) error

	// Assistant chats
	ListChatsByUser(ctx context.Context, userID string) ([]*domain.Chat, error)
	GetChat(ctx context.Context, id string) (*domain.Chat, error)
	CreateChat(ctx context.Context, chat *domain.Chat) error
	UpdateChatMessages(ctx context.Context, id string, messages []domain.ChatMessage) error

	// Furniture catalog
	ListFurnitureByRoom(ctx context.Context, roomType string) ([]*domain.FurnitureItem, error)
	GetFurnitureItem(ctx context.Context, id string) (*domain.FurnitureItem, error)
	CreateFurnitureItem(ctx context.Context, item *domain.FurnitureItem) error

	// Cart
	ListCartByUser(ctx context.Context, userID string) ([]*domain.CartItem, error)
	GetCartItem(ctx context.Context, id string) (*domain.CartItem, error)
	AddCartItem(ctx context.Context, item *domain.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error)
	RemoveCartItem(ctx context.Context, id string) (bool, error)
	ClearCart(ctx context.Context, userID string) error

	// Orders
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func overlaps(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
