package storage

import (
	"context"
	"fmt"
	"time"

	"homevista/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the document backend. One collection per entity; ids are
// the same opaque uuid strings the other backends use, stored as _id.
type MongoStore struct {
	client *mongo.Client

	users           *mongo.Collection
	refreshTokens   *mongo.Collection
	properties      *mongo.Collection
	savedProperties *mongo.Collection
	roomDesigns     *mongo.Collection
	consultants     *mongo.Collection
	bookings        *mongo.Collection
	chats           *mongo.Collection
	furniture       *mongo.Collection
	cartItems       *mongo.Collection
	orders          *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings it before returning, so a
// missing or unreachable database fails fast at startup instead of on the
// first request.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongodb unreachable: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:          client,
		users:           db.Collection("users"),
		refreshTokens:   db.Collection("refreshTokens"),
		properties:      db.Collection("properties"),
		savedProperties: db.Collection("savedProperties"),
		roomDesigns:     db.Collection("roomDesigns"),
		consultants:     db.Collection("consultants"),
		bookings:        db.Collection("bookings"),
		chats:           db.Collection("aiChats"),
		furniture:       db.Collection("furnitureItems"),
		cartItems:       db.Collection("cartItems"),
		orders:          db.Collection("orders"),
	}, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, notFound error) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []*T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", coll.Name(), err)
	}
	return out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

// Users

func (s *MongoStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, s.users, bson.M{"_id": id}, ErrUserNotFound)
}

func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{bson.M{"username": username}, bson.M{"email": username}}}
	return findOne[domain.User](ctx, s.users, filter, ErrUserNotFound)
}

func (s *MongoStore) CreateUser(ctx context.Context, user *domain.User) error {
	filter := bson.M{"$or": bson.A{bson.M{"username": user.Username}, bson.M{"email": user.Email}}}
	count, err := s.users.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}
	fillIdentity(&user.ID, &user.CreatedAt)
	return insertOne(ctx, s.users, user)
}

// Refresh tokens

func (s *MongoStore) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	if token.ID == "" {
		token.ID = newID()
	}
	return insertOne(ctx, s.refreshTokens, token)
}

func (s *MongoStore) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	rt, err := findOne[domain.RefreshToken](ctx, s.refreshTokens, bson.M{"token": token}, ErrRefreshTokenNotFound)
	if err != nil {
		return nil, err
	}
	if rt.Revoked {
		return nil, ErrRefreshTokenRevoked
	}
	return rt, nil
}

func (s *MongoStore) RevokeRefreshToken(ctx context.Context, token string) error {
	res, err := s.refreshTokens.UpdateOne(ctx, bson.M{"token": token}, bson.M{"$set": bson.M{"revoked": true}})
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

// Properties

func (s *MongoStore) ListProperties(ctx context.Context, filter PropertyFilter) ([]*domain.Property, error) {
	query := bson.M{}
	if filter.Purpose != "" {
		query["purpose"] = filter.Purpose
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Location, Options: "i"}}
	}
	if filter.PropertyType != "" {
		query["propertyType"] = filter.PropertyType
	}
	if filter.Facing != "" {
		query["facing"] = filter.Facing
	}
	if len(filter.Amenities) > 0 {
		query["amenities"] = bson.M{"$in": filter.Amenities}
	}
	return findAll[domain.Property](ctx, s.properties, query)
}

func (s *MongoStore) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	return findOne[domain.Property](ctx, s.properties, bson.M{"_id": id}, ErrPropertyNotFound)
}

func (s *MongoStore) CreateProperty(ctx context.Context, property *domain.Property) error {
	fillIdentity(&property.ID, &property.CreatedAt)
	return insertOne(ctx, s.properties, property)
}

// Saved properties

func (s *MongoStore) ListSavedProperties(ctx context.Context, userID string) ([]*domain.SavedProperty, error) {
	return findAll[domain.SavedProperty](ctx, s.savedProperties, bson.M{"userId": userID})
}

func (s *MongoStore) SaveProperty(ctx context.Context, saved *domain.SavedProperty) error {
	fillIdentity(&saved.ID, &saved.CreatedAt)
	return insertOne(ctx, s.savedProperties, saved)
}

func (s *MongoStore) UnsaveProperty(ctx context.Context, userID, propertyID string) error {
	res, err := s.savedProperties.DeleteOne(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return fmt.Errorf("failed to unsave property: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrSavedPropertyNotFound
	}
	return nil
}

// Room designs

func (s *MongoStore) ListRoomDesignsByUser(ctx context.Context, userID string) ([]*domain.RoomDesign, error) {
	return findAll[domain.RoomDesign](ctx, s.roomDesigns, bson.M{"userId": userID})
}

func (s *MongoStore) GetRoomDesign(ctx context.Context, id string) (*domain.RoomDesign, error) {
	return findOne[domain.RoomDesign](ctx, s.roomDesigns, bson.M{"_id": id}, ErrRoomDesignNotFound)
}

func (s *MongoStore) CreateRoomDesign(ctx context.Context, design *domain.RoomDesign) error {
	fillIdentity(&design.ID, &design.CreatedAt)
	return insertOne(ctx, s.roomDesigns, design)
}

func (s *MongoStore) UpdateRoomDesign(ctx context.Context, design *domain.RoomDesign) error {
	res, err := s.roomDesigns.ReplaceOne(ctx, bson.M{"_id": design.ID}, design)
	if err != nil {
		return fmt.Errorf("failed to update room design: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrRoomDesignNotFound
	}
	return nil
}

// Consultants

func (s *MongoStore) ListConsultants(ctx context.Context, consultantType string) ([]*domain.Consultant, error) {
	query := bson.M{}
	if consultantType != "" {
		query["type"] = consultantType
	}
	return findAll[domain.Consultant](ctx, s.consultants, query)
}

func (s *MongoStore) GetConsultant(ctx context.Context, id string) (*domain.Consultant, error) {
	return findOne[domain.Consultant](ctx, s.consultants, bson.M{"_id": id}, ErrConsultantNotFound)
}

func (s *MongoStore) CreateConsultant(ctx context.Context, consultant *domain.Consultant) error {
	fillIdentity(&consultant.ID, &consultant.CreatedAt)
	return insertOne(ctx, s.consultants, consultant)
}

// Bookings

func (s *MongoStore) ListBookingsByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return findAll[domain.Booking](ctx, s.bookings, bson.M{"userId": userID})
}

func (s *MongoStore) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	fillIdentity(&booking.ID, &booking.CreatedAt)
	return insertOne(ctx, s.bookings, booking)
}

// Assistant chats

func (s *MongoStore) ListChatsByUser(ctx context.Context, userID string) ([]*domain.Chat, error) {
	return findAll[domain.Chat](ctx, s.chats, bson.M{"userId": userID})
}

func (s *MongoStore) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	return findOne[domain.Chat](ctx, s.chats, bson.M{"_id": id}, ErrChatNotFound)
}

func (s *MongoStore) CreateChat(ctx context.Context, chat *domain.Chat) error {
	fillIdentity(&chat.ID, &chat.CreatedAt)
	if chat.UpdatedAt.IsZero() {
		chat.UpdatedAt = chat.CreatedAt
	}
	return insertOne(ctx, s.chats, chat)
}

func (s *MongoStore) UpdateChatMessages(ctx context.Context, id string, messages []domain.ChatMessage) error {
	update := bson.M{"$set": bson.M{"messages": messages, "updatedAt": time.Now()}}
	res, err := s.chats.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update chat messages: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrChatNotFound
	}
	return nil
}

// Furniture catalog

func (s *MongoStore) ListFurnitureByRoom(ctx context.Context, roomType string) ([]*domain.FurnitureItem, error) {
	return findAll[domain.FurnitureItem](ctx, s.furniture, bson.M{"roomTypes": roomType})
}

func (s *MongoStore) GetFurnitureItem(ctx context.Context, id string) (*domain.FurnitureItem, error) {
	return findOne[domain.FurnitureItem](ctx, s.furniture, bson.M{"_id": id}, ErrFurnitureNotFound)
}

func (s *MongoStore) CreateFurnitureItem(ctx context.Context, item *domain.FurnitureItem) error {
	fillIdentity(&item.ID, &item.CreatedAt)
	return insertOne(ctx, s.furniture, item)
}

// Cart

func (s *MongoStore) ListCartByUser(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	return findAll[domain.CartItem](ctx, s.cartItems, bson.M{"userId": userID})
}

func (s *MongoStore) GetCartItem(ctx context.Context, id string) (*domain.CartItem, error) {
	return findOne[domain.CartItem](ctx, s.cartItems, bson.M{"_id": id}, ErrCartItemNotFound)
}

func (s *MongoStore) AddCartItem(ctx context.Context, item *domain.CartItem) error {
	fillIdentity(&item.ID, &item.CreatedAt)
	return insertOne(ctx, s.cartItems, item)
}

func (s *MongoStore) UpdateCartItemQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := s.cartItems.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"quantity": quantity}}, opts)

	var item domain.CartItem
	if err := res.Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return &item, nil
}

func (s *MongoStore) RemoveCartItem(ctx context.Context, id string) (bool, error) {
	res, err := s.cartItems.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) ClearCart(ctx context.Context, userID string) error {
	if _, err := s.cartItems.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Orders

func (s *MongoStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	fillIdentity(&order.ID, &order.CreatedAt)
	return insertOne(ctx, s.orders, order)
}

func (s *MongoStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return findOne[domain.Order](ctx, s.orders, bson.M{"_id": id}, ErrOrderNotFound)
}

func (s *MongoStore) ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return findAll[domain.Order](ctx, s.orders, bson.M{"userId": userID})
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func fillIdentity(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = newID()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}
