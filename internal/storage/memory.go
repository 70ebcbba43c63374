package storage

import (
	"context"
	"sync"
	"time"

	"homevista/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory backend. It backs tests and the
// development fallback when no database is configured; data does not
// survive a restart. A single RWMutex gives the same per-operation
// atomicity the document backends provide.
type MemoryStore struct {
	mu sync.RWMutex

	users           map[string]*domain.User
	refreshTokens   map[string]*domain.RefreshToken
	properties      map[string]*domain.Property
	savedProperties map[string]*domain.SavedProperty
	roomDesigns     map[string]*domain.RoomDesign
	consultants     map[string]*domain.Consultant
	bookings        map[string]*domain.Booking
	chats           map[string]*domain.Chat
	furniture       map[string]*domain.FurnitureItem
	cartItems       map[string]*domain.CartItem
	orders          map[string]*domain.Order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:           make(map[string]*domain.User),
		refreshTokens:   make(map[string]*domain.RefreshToken),
		properties:      make(map[string]*domain.Property),
		savedProperties: make(map[string]*domain.SavedProperty),
		roomDesigns:     make(map[string]*domain.RoomDesign),
		consultants:     make(map[string]*domain.Consultant),
		bookings:        make(map[string]*domain.Booking),
		chats:           make(map[string]*domain.Chat),
		furniture:       make(map[string]*domain.FurnitureItem),
		cartItems:       make(map[string]*domain.CartItem),
		orders:          make(map[string]*domain.Order),
	}
}

func newID() string {
	return uuid.New().String()
}

// Users

func (s *MemoryStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username || user.Email == username {
			u := *user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	u := *user
	s.users[user.ID] = &u
	return nil
}

// Refresh tokens

func (s *MemoryStore) CreateRefreshToken(_ context.Context, token *domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token.ID == "" {
		token.ID = newID()
	}
	t := *token
	s.refreshTokens[token.Token] = &t
	return nil
}

func (s *MemoryStore) GetRefreshToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.refreshTokens[token]
	if !ok {
		return nil, ErrRefreshTokenNotFound
	}
	if rt.Revoked {
		return nil, ErrRefreshTokenRevoked
	}
	t := *rt
	return &t, nil
}

func (s *MemoryStore) RevokeRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.refreshTokens[token]
	if !ok {
		return ErrRefreshTokenNotFound
	}
	rt.Revoked = true
	return nil
}

// Properties

func (s *MemoryStore) ListProperties(_ context.Context, filter PropertyFilter) ([]*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	properties := []*domain.Property{}
	for _, p := range s.properties {
		if filter.Matches(p) {
			cp := *p
			properties = append(properties, &cp)
		}
	}
	return properties, nil
}

func (s *MemoryStore) GetProperty(_ context.Context, id string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) CreateProperty(_ context.Context, property *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if property.ID == "" {
		property.ID = newID()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now()
	}
	cp := *property
	s.properties[property.ID] = &cp
	return nil
}

// Saved properties

func (s *MemoryStore) ListSavedProperties(_ context.Context, userID string) ([]*domain.SavedProperty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saved := []*domain.SavedProperty{}
	for _, sp := range s.savedProperties {
		if sp.UserID == userID {
			cp := *sp
			saved = append(saved, &cp)
		}
	}
	return saved, nil
}

func (s *MemoryStore) SaveProperty(_ context.Context, saved *domain.SavedProperty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}
	cp := *saved
	s.savedProperties[saved.ID] = &cp
	return nil
}

func (s *MemoryStore) UnsaveProperty(_ context.Context, userID, propertyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sp := range s.savedProperties {
		if sp.UserID == userID && sp.PropertyID == propertyID {
			delete(s.savedProperties, id)
			return nil
		}
	}
	return ErrSavedPropertyNotFound
}

// Room designs

func (s *MemoryStore) ListRoomDesignsByUser(_ context.Context, userID string) ([]*domain.RoomDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	designs := []*domain.RoomDesign{}
	for _, d := range s.roomDesigns {
		if d.UserID == userID {
			cp := *d
			designs = append(designs, &cp)
		}
	}
	return designs, nil
}

func (s *MemoryStore) GetRoomDesign(_ context.Context, id string) (*domain.RoomDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.roomDesigns[id]
	if !ok {
		return nil, ErrRoomDesignNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) CreateRoomDesign(_ context.Context, design *domain.RoomDesign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if design.ID == "" {
		design.ID = newID()
	}
	if design.CreatedAt.IsZero() {
		design.CreatedAt = time.Now()
	}
	cp := *design
	s.roomDesigns[design.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateRoomDesign(_ context.Context, design *domain.RoomDesign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roomDesigns[design.ID]; !ok {
		return ErrRoomDesignNotFound
	}
	cp := *design
	s.roomDesigns[design.ID] = &cp
	return nil
}

// Consultants

func (s *MemoryStore) ListConsultants(_ context.Context, consultantType string) ([]*domain.Consultant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	consultants := []*domain.Consultant{}
	for _, c := range s.consultants {
		if consultantType == "" || c.Type == consultantType {
			cp := *c
			consultants = append(consultants, &cp)
		}
	}
	return consultants, nil
}

func (s *MemoryStore) GetConsultant(_ context.Context, id string) (*domain.Consultant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.consultants[id]
	if !ok {
		return nil, ErrConsultantNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) CreateConsultant(_ context.Context, consultant *domain.Consultant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if consultant.ID == "" {
		consultant.ID = newID()
	}
	if consultant.CreatedAt.IsZero() {
		consultant.CreatedAt = time.Now()
	}
	cp := *consultant
	s.consultants[consultant.ID] = &cp
	return nil
}

// Bookings

func (s *MemoryStore) ListBookingsByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := []*domain.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			cp := *b
			bookings = append(bookings, &cp)
		}
	}
	return bookings, nil
}

func (s *MemoryStore) CreateBooking(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.ID == "" {
		booking.ID = newID()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	cp := *booking
	s.bookings[booking.ID] = &cp
	return nil
}

// Assistant chats

func (s *MemoryStore) ListChatsByUser(_ context.Context, userID string) ([]*domain.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chats := []*domain.Chat{}
	for _, c := range s.chats {
		if c.UserID == userID {
			cp := *c
			chats = append(chats, &cp)
		}
	}
	return chats, nil
}

func (s *MemoryStore) GetChat(_ context.Context, id string) (*domain.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chats[id]
	if !ok {
		return nil, ErrChatNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) CreateChat(_ context.Context, chat *domain.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if chat.ID == "" {
		chat.ID = newID()
	}
	now := time.Now()
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = now
	}
	if chat.UpdatedAt.IsZero() {
		chat.UpdatedAt = now
	}
	cp := *chat
	s.chats[chat.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateChatMessages(_ context.Context, id string, messages []domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[id]
	if !ok {
		return ErrChatNotFound
	}
	c.Messages = messages
	c.UpdatedAt = time.Now()
	return nil
}

// Furniture catalog

func (s *MemoryStore) ListFurnitureByRoom(_ context.Context, roomType string) ([]*domain.FurnitureItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []*domain.FurnitureItem{}
	for _, item := range s.furniture {
		if item.FitsRoom(roomType) {
			cp := *item
			items = append(items, &cp)
		}
	}
	return items, nil
}

func (s *MemoryStore) GetFurnitureItem(_ context.Context, id string) (*domain.FurnitureItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.furniture[id]
	if !ok {
		return nil, ErrFurnitureNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *MemoryStore) CreateFurnitureItem(_ context.Context, item *domain.FurnitureItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = newID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	cp := *item
	s.furniture[item.ID] = &cp
	return nil
}

// Cart

func (s *MemoryStore) ListCartByUser(_ context.Context, userID string) ([]*domain.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []*domain.CartItem{}
	for _, item := range s.cartItems {
		if item.UserID == userID {
			cp := *item
			items = append(items, &cp)
		}
	}
	return items, nil
}

func (s *MemoryStore) GetCartItem(_ context.Context, id string) (*domain.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.cartItems[id]
	if !ok {
		return nil, ErrCartItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *MemoryStore) AddCartItem(_ context.Context, item *domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = newID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	cp := *item
	s.cartItems[item.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateCartItemQuantity(_ context.Context, id string, quantity int) (*domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems[id]
	if !ok {
		return nil, ErrCartItemNotFound
	}
	item.Quantity = quantity
	cp := *item
	return &cp, nil
}

func (s *MemoryStore) RemoveCartItem(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cartItems[id]; !ok {
		return false, nil
	}
	delete(s.cartItems, id)
	return true, nil
}

func (s *MemoryStore) ClearCart(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.cartItems {
		if item.UserID == userID {
			delete(s.cartItems, id)
		}
	}
	return nil
}

// Orders

func (s *MemoryStore) CreateOrder(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == "" {
		order.ID = newID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	cp := *order
	s.orders[order.ID] = &cp
	return nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (s *MemoryStore) ListOrdersByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []*domain.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			cp := *o
			orders = append(orders, &cp)
		}
	}
	return orders, nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}
