package storage

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"homevista/internal/database"
	"homevista/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	if err := database.RunMigrations(testDB, "../../migrations", zap.NewNop()); err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
}

func TestProperty_UserPasswordsStoredHashed(t *testing.T) {
	store := NewPostgresStore(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(username string, password string, fullName string) bool {
			// Clean up before each test
			_, _ = testDB.Exec("DELETE FROM users WHERE username = $1", username)

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				t.Logf("Failed to hash password: %v", err)
				return false
			}

			user := &domain.User{
				ID:        uuid.New().String(),
				Username:  username,
				Password:  string(hashedPassword),
				Email:     username + "@example.com",
				FullName:  fullName,
				CreatedAt: time.Now(),
			}

			err = store.CreateUser(ctx, user)
			if err != nil {
				t.Logf("Failed to create user: %v", err)
				return false
			}

			retrieved, err := store.GetUserByUsername(ctx, username)
			if err != nil {
				t.Logf("Failed to find user: %v", err)
				return false
			}

			if retrieved.Password == password {
				t.Logf("Password was stored as plaintext!")
				return false
			}

			err = bcrypt.CompareHashAndPassword([]byte(retrieved.Password), []byte(password))
			if err != nil {
				t.Logf("Stored password is not a valid bcrypt hash: %v", err)
				return false
			}

			// Clean up after test
			_, _ = testDB.Exec("DELETE FROM users WHERE username = $1", username)

			return true
		},
		// Generate usernames
		gen.RegexMatch(`[a-z]{5,12}_[0-9]{2,4}`),
		// Generate passwords with at least 8 characters
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		// Generate full names
		gen.RegexMatch(`[A-Z][a-z]{2,15} [A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_FurnitureCreationPreservesAttributes(t *testing.T) {
	store := NewPostgresStore(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("creating and retrieving a furniture item preserves all attributes", prop.ForAll(
		func(name string, description string, price int64, imageURL string) bool {
			ctx := context.Background()

			item := &domain.FurnitureItem{
				ID:               uuid.New().String(),
				Name:             name,
				Category:         "seating",
				Subcategory:      "sofa",
				Price:            price,
				Description:      description,
				Dimensions:       "200cm x 90cm x 85cm",
				Material:         "Teak",
				Color:            "Walnut",
				ImageURL:         imageURL,
				InstallationTime: "2-3 days",
				RoomTypes:        []string{domain.RoomLivingRoom},
				CreatedAt:        time.Now(),
			}

			if err := store.CreateFurnitureItem(ctx, item); err != nil {
				t.Logf("FAIL: Failed to create furniture item: %v", err)
				return false
			}

			retrieved, err := store.GetFurnitureItem(ctx, item.ID)
			if err != nil {
				t.Logf("FAIL: Failed to retrieve furniture item: %v", err)
				return false
			}

			if retrieved.ID != item.ID {
				t.Logf("FAIL: ID mismatch. Expected %s, got %s", item.ID, retrieved.ID)
				return false
			}

			if retrieved.Name != item.Name {
				t.Logf("FAIL: Name mismatch. Expected %s, got %s", item.Name, retrieved.Name)
				return false
			}

			if retrieved.Description != item.Description {
				t.Logf("FAIL: Description mismatch. Expected %s, got %s", item.Description, retrieved.Description)
				return false
			}

			if retrieved.Price != item.Price {
				t.Logf("FAIL: Price mismatch. Expected %d, got %d", item.Price, retrieved.Price)
				return false
			}

			if retrieved.ImageURL != item.ImageURL {
				t.Logf("FAIL: ImageURL mismatch. Expected %s, got %s", item.ImageURL, retrieved.ImageURL)
				return false
			}

			if !retrieved.FitsRoom(domain.RoomLivingRoom) {
				t.Logf("FAIL: Room types not preserved, got %v", retrieved.RoomTypes)
				return false
			}

			if retrieved.CreatedAt.IsZero() {
				t.Logf("FAIL: CreatedAt is zero")
				return false
			}

			// Cleanup
			_, _ = testDB.Exec("DELETE FROM furniture_items WHERE id = $1", item.ID)

			return true
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),                      // name
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`),                // description
		gen.Int64Range(100, 10000000),                             // price
		gen.RegexMatch(`https?://[a-z0-9.-]+/[a-z0-9/._-]{1,50}`), // imageURL
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_CartRemovalMakesRowUnretrievable(t *testing.T) {
	store := NewPostgresStore(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("removing a cart row makes it not retrievable", prop.ForAll(
		func(quantity int) bool {
			ctx := context.Background()
			userID := uuid.New().String()

			item := &domain.CartItem{
				ID:          uuid.New().String(),
				UserID:      userID,
				FurnitureID: uuid.New().String(),
				Quantity:    quantity,
				CreatedAt:   time.Now(),
			}

			if err := store.AddCartItem(ctx, item); err != nil {
				t.Logf("FAIL: Failed to add cart item: %v", err)
				return false
			}

			if _, err := store.GetCartItem(ctx, item.ID); err != nil {
				t.Logf("FAIL: Cart item should exist before removal: %v", err)
				return false
			}

			removed, err := store.RemoveCartItem(ctx, item.ID)
			if err != nil {
				t.Logf("FAIL: Failed to remove cart item: %v", err)
				return false
			}
			if !removed {
				t.Logf("FAIL: Removal reported no row removed")
				return false
			}

			if _, err := store.GetCartItem(ctx, item.ID); err != ErrCartItemNotFound {
				t.Logf("FAIL: Expected ErrCartItemNotFound after removal, got: %v", err)
				return false
			}

			// Removing again is a no-op
			removed, err = store.RemoveCartItem(ctx, item.ID)
			if err != nil {
				t.Logf("FAIL: Second removal errored: %v", err)
				return false
			}
			if removed {
				t.Logf("FAIL: Second removal reported a row removed")
				return false
			}

			return true
		},
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPostgresPropertyFilters(t *testing.T) {
	store := NewPostgresStore(testDB)
	ctx := context.Background()

	seedListing := func(purpose string, price int64, location string, amenities []string) *domain.Property {
		p := &domain.Property{
			ID:        uuid.New().String(),
			Title:     "Listing " + uuid.New().String()[:8],
			Purpose:   purpose,
			Price:     price,
			Location:  location,
			Amenities: amenities,
			Tags:      []string{},
			Images:    []string{},
			OwnerName: "Owner",
			CreatedAt: time.Now(),
		}
		if err := store.CreateProperty(ctx, p); err != nil {
			t.Fatalf("failed to seed listing: %v", err)
		}
		return p
	}

	buy := seedListing(domain.PurposeBuy, 8500000, "HSR Layout, Bangalore", []string{"parking", "gym"})
	rent := seedListing(domain.PurposeRent, 18000, "Jubilee Hills, Hyderabad", []string{"lift"})
	defer func() {
		_, _ = testDB.Exec("DELETE FROM properties WHERE id IN ($1, $2)", buy.ID, rent.ID)
	}()

	got, err := store.ListProperties(ctx, PropertyFilter{Purpose: domain.PurposeBuy, MinPrice: 1000000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, p := range got {
		if p.Purpose != domain.PurposeBuy || p.Price < 1000000 {
			t.Errorf("filter returned non-matching listing %s (purpose=%s price=%d)", p.ID, p.Purpose, p.Price)
		}
	}
	if !containsID(got, buy.ID) {
		t.Errorf("expected buy listing %s in results", buy.ID)
	}
	if containsID(got, rent.ID) {
		t.Errorf("rent listing %s should not match a buy filter", rent.ID)
	}

	got, err = store.ListProperties(ctx, PropertyFilter{Location: "jubilee"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !containsID(got, rent.ID) {
		t.Errorf("location search is case-insensitive, expected %s in results", rent.ID)
	}

	got, err = store.ListProperties(ctx, PropertyFilter{Amenities: []string{"gym", "pool"}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !containsID(got, buy.ID) {
		t.Errorf("amenity overlap should match listing %s", buy.ID)
	}
	if containsID(got, rent.ID) {
		t.Errorf("listing %s shares no amenity with the filter", rent.ID)
	}
}

func containsID(properties []*domain.Property, id string) bool {
	for _, p := range properties {
		if p.ID == id {
			return true
		}
	}
	return false
}
