package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"homevista/internal/domain"
)

// PostgresStore is the relational backend, layered over database/sql with
// the pgx stdlib driver. Multi-valued attributes (amenities, room types,
// order lines, chat messages) live in jsonb columns so the row shape
// matches the document backends.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open connection pool. Migrations are run by
// the caller before the store is used.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func toJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb value: %w", err)
	}
	return data, nil
}

func fromJSON(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode jsonb value: %w", err)
	}
	return nil
}

// Users

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, username, password, email, full_name, phone, created_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password, email, full_name, phone, created_at
		FROM users
		WHERE username = $1 OR email = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *PostgresStore) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var phone sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.FullName, &phone, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user.Phone = phone.String
	return user, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *domain.User) error {
	fillIdentity(&user.ID, &user.CreatedAt)

	query := `
		INSERT INTO users (id, username, password, email, full_name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Password, user.Email, user.FullName, user.Phone, user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Refresh tokens

func (s *PostgresStore) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	if token.ID == "" {
		token.ID = newID()
	}
	query := `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		token.ID, token.UserID, token.Token, token.ExpiresAt, token.CreatedAt, token.Revoked,
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at, revoked
		FROM refresh_tokens
		WHERE token = $1
	`
	rt := &domain.RefreshToken{}
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt, &rt.Revoked,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	if rt.Revoked {
		return nil, ErrRefreshTokenRevoked
	}
	return rt, nil
}

func (s *PostgresStore) RevokeRefreshToken(ctx context.Context, token string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

// Properties

const propertyColumns = `id, title, description, purpose, property_type, price, location, facing, sqft,
	furnishing, tenant_preference, land_purpose, amenities, tags, images,
	owner_name, owner_contact, is_verified, is_new, is_premium, created_at`

func (s *PostgresStore) ListProperties(ctx context.Context, filter PropertyFilter) ([]*domain.Property, error) {
	conditions := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Purpose != "" {
		conditions = append(conditions, "purpose = "+arg(filter.Purpose))
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, "price >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, "price <= "+arg(filter.MaxPrice))
	}
	if filter.Location != "" {
		conditions = append(conditions, "location ILIKE "+arg("%"+filter.Location+"%"))
	}
	if filter.PropertyType != "" {
		conditions = append(conditions, "property_type = "+arg(filter.PropertyType))
	}
	if filter.Facing != "" {
		conditions = append(conditions, "facing = "+arg(filter.Facing))
	}

	query := "SELECT " + propertyColumns + " FROM properties"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := []*domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		// Amenity overlap is checked here rather than in SQL so the
		// jsonb column needs no backend-specific operators.
		if len(filter.Amenities) > 0 && !overlaps(p.Amenities, filter.Amenities) {
			continue
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating properties: %w", err)
	}
	return properties, nil
}

func (s *PostgresStore) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find property: %w", err)
		}
		return nil, ErrPropertyNotFound
	}
	return scanProperty(rows)
}

func scanProperty(rows *sql.Rows) (*domain.Property, error) {
	p := &domain.Property{}
	var (
		description, propertyType, facing, furnishing       sql.NullString
		tenantPreference, landPurpose, ownerContact         sql.NullString
		sqft                                                sql.NullInt64
		amenities, tags, images                             []byte
	)
	err := rows.Scan(
		&p.ID, &p.Title, &description, &p.Purpose, &propertyType, &p.Price, &p.Location, &facing, &sqft,
		&furnishing, &tenantPreference, &landPurpose, &amenities, &tags, &images,
		&p.OwnerName, &ownerContact, &p.IsVerified, &p.IsNew, &p.IsPremium, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan property: %w", err)
	}
	p.Description = description.String
	p.PropertyType = propertyType.String
	p.Facing = facing.String
	p.Sqft = int(sqft.Int64)
	p.Furnishing = furnishing.String
	p.TenantPreference = tenantPreference.String
	p.LandPurpose = landPurpose.String
	p.OwnerContact = ownerContact.String
	if err := fromJSON(amenities, &p.Amenities); err != nil {
		return nil, err
	}
	if err := fromJSON(tags, &p.Tags); err != nil {
		return nil, err
	}
	if err := fromJSON(images, &p.Images); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) CreateProperty(ctx context.Context, property *domain.Property) error {
	fillIdentity(&property.ID, &property.CreatedAt)

	amenities, err := toJSON(sliceOrEmpty(property.Amenities))
	if err != nil {
		return err
	}
	tags, err := toJSON(sliceOrEmpty(property.Tags))
	if err != nil {
		return err
	}
	images, err := toJSON(sliceOrEmpty(property.Images))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err = s.db.ExecContext(ctx, query,
		property.ID, property.Title, property.Description, property.Purpose, property.PropertyType,
		property.Price, property.Location, property.Facing, property.Sqft,
		property.Furnishing, property.TenantPreference, property.LandPurpose,
		amenities, tags, images,
		property.OwnerName, property.OwnerContact, property.IsVerified, property.IsNew, property.IsPremium,
		property.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// Saved properties

func (s *PostgresStore) ListSavedProperties(ctx context.Context, userID string) ([]*domain.SavedProperty, error) {
	query := `
		SELECT id, user_id, property_id, created_at
		FROM saved_properties
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved properties: %w", err)
	}
	defer rows.Close()

	saved := []*domain.SavedProperty{}
	for rows.Next() {
		sp := &domain.SavedProperty{}
		if err := rows.Scan(&sp.ID, &sp.UserID, &sp.PropertyID, &sp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved property: %w", err)
		}
		saved = append(saved, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved properties: %w", err)
	}
	return saved, nil
}

func (s *PostgresStore) SaveProperty(ctx context.Context, saved *domain.SavedProperty) error {
	fillIdentity(&saved.ID, &saved.CreatedAt)

	query := `
		INSERT INTO saved_properties (id, user_id, property_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, saved.ID, saved.UserID, saved.PropertyID, saved.CreatedAt); err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

func (s *PostgresStore) UnsaveProperty(ctx context.Context, userID, propertyID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_properties WHERE user_id = $1 AND property_id = $2`, userID, propertyID)
	if err != nil {
		return fmt.Errorf("failed to unsave property: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSavedPropertyNotFound
	}
	return nil
}

// Room designs

func (s *PostgresStore) ListRoomDesignsByUser(ctx context.Context, userID string) ([]*domain.RoomDesign, error) {
	query := `
		SELECT id, user_id, title, room_type, design_type, theme, elements, image_url, created_at
		FROM room_designs
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room designs: %w", err)
	}
	defer rows.Close()

	designs := []*domain.RoomDesign{}
	for rows.Next() {
		d, err := scanRoomDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room designs: %w", err)
	}
	return designs, nil
}

func (s *PostgresStore) GetRoomDesign(ctx context.Context, id string) (*domain.RoomDesign, error) {
	query := `
		SELECT id, user_id, title, room_type, design_type, theme, elements, image_url, created_at
		FROM room_designs
		WHERE id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find room design: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find room design: %w", err)
		}
		return nil, ErrRoomDesignNotFound
	}
	return scanRoomDesign(rows)
}

func scanRoomDesign(rows *sql.Rows) (*domain.RoomDesign, error) {
	d := &domain.RoomDesign{}
	var theme, imageURL sql.NullString
	var elements []byte
	err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.RoomType, &d.DesignType, &theme, &elements, &imageURL, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan room design: %w", err)
	}
	d.Theme = theme.String
	d.ImageURL = imageURL.String
	if err := fromJSON(elements, &d.Elements); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PostgresStore) CreateRoomDesign(ctx context.Context, design *domain.RoomDesign) error {
	fillIdentity(&design.ID, &design.CreatedAt)
	if design.Elements == nil {
		design.Elements = map[string]any{}
	}
	elements, err := toJSON(design.Elements)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO room_designs (id, user_id, title, room_type, design_type, theme, elements, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		design.ID, design.UserID, design.Title, design.RoomType, design.DesignType,
		design.Theme, elements, design.ImageURL, design.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room design: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateRoomDesign(ctx context.Context, design *domain.RoomDesign) error {
	elements, err := toJSON(design.Elements)
	if err != nil {
		return err
	}

	query := `
		UPDATE room_designs
		SET title = $2, room_type = $3, design_type = $4, theme = $5, elements = $6, image_url = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		design.ID, design.Title, design.RoomType, design.DesignType, design.Theme, elements, design.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update room design: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRoomDesignNotFound
	}
	return nil
}

// Consultants

func (s *PostgresStore) ListConsultants(ctx context.Context, consultantType string) ([]*domain.Consultant, error) {
	query := `
		SELECT id, name, type, experience, rating, review_count, specializations, price, availability, bio, image_url, created_at
		FROM consultants
	`
	args := []any{}
	if consultantType != "" {
		query += " WHERE type = $1"
		args = append(args, consultantType)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	defer rows.Close()

	consultants := []*domain.Consultant{}
	for rows.Next() {
		c, err := scanConsultant(rows)
		if err != nil {
			return nil, err
		}
		consultants = append(consultants, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultants: %w", err)
	}
	return consultants, nil
}

func (s *PostgresStore) GetConsultant(ctx context.Context, id string) (*domain.Consultant, error) {
	query := `
		SELECT id, name, type, experience, rating, review_count, specializations, price, availability, bio, image_url, created_at
		FROM consultants
		WHERE id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find consultant: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find consultant: %w", err)
		}
		return nil, ErrConsultantNotFound
	}
	return scanConsultant(rows)
}

func scanConsultant(rows *sql.Rows) (*domain.Consultant, error) {
	c := &domain.Consultant{}
	var bio, imageURL sql.NullString
	var specializations []byte
	err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Experience, &c.Rating, &c.ReviewCount,
		&specializations, &c.Price, &c.Availability, &bio, &imageURL, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan consultant: %w", err)
	}
	c.Bio = bio.String
	c.ImageURL = imageURL.String
	if err := fromJSON(specializations, &c.Specializations); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) CreateConsultant(ctx context.Context, consultant *domain.Consultant) error {
	fillIdentity(&consultant.ID, &consultant.CreatedAt)
	specializations, err := toJSON(sliceOrEmpty(consultant.Specializations))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO consultants (id, name, type, experience, rating, review_count, specializations, price, availability, bio, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(ctx, query,
		consultant.ID, consultant.Name, consultant.Type, consultant.Experience, consultant.Rating,
		consultant.ReviewCount, specializations, consultant.Price, consultant.Availability,
		consultant.Bio, consultant.ImageURL, consultant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create consultant: %w", err)
	}
	return nil
}

// Bookings

func (s *PostgresStore) ListBookingsByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	query := `
		SELECT id, user_id, consultant_id, name, email, phone, property_type, consultation_type,
		       preferred_date, preferred_time, requirements, status, total_amount, created_at
		FROM bookings
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*domain.Booking{}
	for rows.Next() {
		b := &domain.Booking{}
		var requirements sql.NullString
		err := rows.Scan(&b.ID, &b.UserID, &b.ConsultantID, &b.Name, &b.Email, &b.Phone,
			&b.PropertyType, &b.ConsultationType, &b.PreferredDate, &b.PreferredTime,
			&requirements, &b.Status, &b.TotalAmount, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Requirements = requirements.String
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}
	return bookings, nil
}

func (s *PostgresStore) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	fillIdentity(&booking.ID, &booking.CreatedAt)

	query := `
		INSERT INTO bookings (id, user_id, consultant_id, name, email, phone, property_type, consultation_type,
		                      preferred_date, preferred_time, requirements, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(ctx, query,
		booking.ID, booking.UserID, booking.ConsultantID, booking.Name, booking.Email, booking.Phone,
		booking.PropertyType, booking.ConsultationType, booking.PreferredDate, booking.PreferredTime,
		booking.Requirements, booking.Status, booking.TotalAmount, booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Assistant chats

func (s *PostgresStore) ListChatsByUser(ctx context.Context, userID string) ([]*domain.Chat, error) {
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM ai_chats
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	chats := []*domain.Chat{}
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chats: %w", err)
	}
	return chats, nil
}

func (s *PostgresStore) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM ai_chats
		WHERE id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find chat: %w", err)
		}
		return nil, ErrChatNotFound
	}
	return scanChat(rows)
}

func scanChat(rows *sql.Rows) (*domain.Chat, error) {
	c := &domain.Chat{}
	var messages []byte
	if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &messages, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan chat: %w", err)
	}
	if err := fromJSON(messages, &c.Messages); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) CreateChat(ctx context.Context, chat *domain.Chat) error {
	fillIdentity(&chat.ID, &chat.CreatedAt)
	if chat.UpdatedAt.IsZero() {
		chat.UpdatedAt = chat.CreatedAt
	}
	messages, err := toJSON(messagesOrEmpty(chat.Messages))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ai_chats (id, user_id, title, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query, chat.ID, chat.UserID, chat.Title, messages, chat.CreatedAt, chat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateChatMessages(ctx context.Context, id string, messages []domain.ChatMessage) error {
	encoded, err := toJSON(messagesOrEmpty(messages))
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE ai_chats SET messages = $2, updated_at = NOW() WHERE id = $1`, id, encoded)
	if err != nil {
		return fmt.Errorf("failed to update chat messages: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrChatNotFound
	}
	return nil
}

// Furniture catalog

const furnitureColumns = `id, name, category, subcategory, price, description, dimensions, material, color,
	image_url, installation_time, room_types, created_at`

func (s *PostgresStore) ListFurnitureByRoom(ctx context.Context, roomType string) ([]*domain.FurnitureItem, error) {
	contains, err := toJSON([]string{roomType})
	if err != nil {
		return nil, err
	}

	query := "SELECT " + furnitureColumns + " FROM furniture_items WHERE room_types @> $1"
	rows, err := s.db.QueryContext(ctx, query, contains)
	if err != nil {
		return nil, fmt.Errorf("failed to list furniture: %w", err)
	}
	defer rows.Close()

	items := []*domain.FurnitureItem{}
	for rows.Next() {
		item, err := scanFurniture(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating furniture: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetFurnitureItem(ctx context.Context, id string) (*domain.FurnitureItem, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+furnitureColumns+" FROM furniture_items WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to find furniture item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find furniture item: %w", err)
		}
		return nil, ErrFurnitureNotFound
	}
	return scanFurniture(rows)
}

func scanFurniture(rows *sql.Rows) (*domain.FurnitureItem, error) {
	item := &domain.FurnitureItem{}
	var description, dimensions, material, color, imageURL, installationTime sql.NullString
	var roomTypes []byte
	err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Subcategory, &item.Price,
		&description, &dimensions, &material, &color, &imageURL, &installationTime, &roomTypes, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan furniture item: %w", err)
	}
	item.Description = description.String
	item.Dimensions = dimensions.String
	item.Material = material.String
	item.Color = color.String
	item.ImageURL = imageURL.String
	item.InstallationTime = installationTime.String
	if err := fromJSON(roomTypes, &item.RoomTypes); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PostgresStore) CreateFurnitureItem(ctx context.Context, item *domain.FurnitureItem) error {
	fillIdentity(&item.ID, &item.CreatedAt)
	roomTypes, err := toJSON(sliceOrEmpty(item.RoomTypes))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO furniture_items (` + furnitureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = s.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Category, item.Subcategory, item.Price,
		item.Description, item.Dimensions, item.Material, item.Color,
		item.ImageURL, item.InstallationTime, roomTypes, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create furniture item: %w", err)
	}
	return nil
}

// Cart

func (s *PostgresStore) ListCartByUser(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	query := `
		SELECT id, user_id, furniture_id, room_design_id, quantity, position, created_at
		FROM cart_items
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []*domain.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetCartItem(ctx context.Context, id string) (*domain.CartItem, error) {
	query := `
		SELECT id, user_id, furniture_id, room_design_id, quantity, position, created_at
		FROM cart_items
		WHERE id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find cart item: %w", err)
		}
		return nil, ErrCartItemNotFound
	}
	return scanCartItem(rows)
}

func scanCartItem(rows *sql.Rows) (*domain.CartItem, error) {
	item := &domain.CartItem{}
	var roomDesignID sql.NullString
	var position []byte
	err := rows.Scan(&item.ID, &item.UserID, &item.FurnitureID, &roomDesignID, &item.Quantity, &position, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}
	item.RoomDesignID = roomDesignID.String
	if len(position) > 0 {
		item.Position = &domain.Position{}
		if err := fromJSON(position, item.Position); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (s *PostgresStore) AddCartItem(ctx context.Context, item *domain.CartItem) error {
	fillIdentity(&item.ID, &item.CreatedAt)

	var position []byte
	if item.Position != nil {
		var err error
		if position, err = toJSON(item.Position); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO cart_items (id, user_id, furniture_id, room_design_id, quantity, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.FurnitureID, nullableString(item.RoomDesignID), item.Quantity, position, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateCartItemQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE cart_items SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.GetCartItem(ctx, id)
}

func (s *PostgresStore) RemoveCartItem(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) ClearCart(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Orders

func (s *PostgresStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	fillIdentity(&order.ID, &order.CreatedAt)
	items, err := toJSON(order.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (id, user_id, room_design_id, items, total_amount, installation_date, payment_method, payment_status, order_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		order.ID, order.UserID, nullableString(order.RoomDesignID), items, order.TotalAmount,
		order.InstallationDate, order.PaymentMethod, order.PaymentStatus, order.OrderStatus, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, room_design_id, items, total_amount, installation_date, payment_method, payment_status, order_status, created_at
		FROM orders
		WHERE id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find order: %w", err)
		}
		return nil, ErrOrderNotFound
	}
	return scanOrder(rows)
}

func (s *PostgresStore) ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, room_design_id, items, total_amount, installation_date, payment_method, payment_status, order_status, created_at
		FROM orders
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	o := &domain.Order{}
	var roomDesignID, installationDate, paymentMethod sql.NullString
	var items []byte
	err := rows.Scan(&o.ID, &o.UserID, &roomDesignID, &items, &o.TotalAmount,
		&installationDate, &paymentMethod, &o.PaymentStatus, &o.OrderStatus, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	o.RoomDesignID = roomDesignID.String
	o.InstallationDate = installationDate.String
	o.PaymentMethod = paymentMethod.String
	if err := fromJSON(items, &o.Items); err != nil {
		return nil, err
	}
	return o, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close(_ context.Context) error {
	return s.db.Close()
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func messagesOrEmpty(m []domain.ChatMessage) []domain.ChatMessage {
	if m == nil {
		return []domain.ChatMessage{}
	}
	return m
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
