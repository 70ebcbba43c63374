package service

import (
	"context"
	"math"
	"testing"

	"homevista/internal/config"
	"homevista/internal/domain"
	"homevista/internal/storage"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCheckout() config.CheckoutConfig {
	return config.CheckoutConfig{TaxRate: 0.18, DeliveryFee: 2000}
}

func seedSofa(t *testing.T, store storage.Store, price int64) *domain.FurnitureItem {
	t.Helper()
	item := &domain.FurnitureItem{
		Name:      "Modern Sofa Set",
		Price:     price,
		RoomTypes: []string{domain.RoomLivingRoom},
	}
	require.NoError(t, store.CreateFurnitureItem(context.Background(), item))
	return item
}

func TestCartTotalsBreakdown(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := NewCartService(store, testCheckout())
	ctx := context.Background()
	userID := uuid.New().String()

	sofa := seedSofa(t, store, 45000)
	bed := &domain.FurnitureItem{Name: "Queen Size Bed", Price: 18000, RoomTypes: []string{domain.RoomBedroom}}
	require.NoError(t, store.CreateFurnitureItem(ctx, bed))

	_, err := cart.Add(ctx, userID, sofa.ID, "", 2, nil)
	require.NoError(t, err)

	totals, err := cart.Totals(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(90000), totals.Subtotal)
	assert.Equal(t, int64(16200), totals.Tax)
	assert.Equal(t, int64(2000), totals.Delivery)
	assert.Equal(t, int64(108200), totals.Total)

	_, err = cart.Add(ctx, userID, bed.ID, "", 1, nil)
	require.NoError(t, err)

	totals, err = cart.Totals(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(126000), totals.Subtotal)
	assert.Equal(t, int64(22680), totals.Tax)
	assert.Equal(t, int64(150680), totals.Total)
}

func TestCartTotalsSingleOfEach(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := NewCartService(store, testCheckout())
	ctx := context.Background()
	userID := uuid.New().String()

	sofa := seedSofa(t, store, 45000)
	bed := &domain.FurnitureItem{Name: "Queen Size Bed", Price: 18000, RoomTypes: []string{domain.RoomBedroom}}
	require.NoError(t, store.CreateFurnitureItem(ctx, bed))

	_, err := cart.Add(ctx, userID, sofa.ID, "", 1, nil)
	require.NoError(t, err)
	_, err = cart.Add(ctx, userID, bed.ID, "", 1, nil)
	require.NoError(t, err)

	totals, err := cart.Totals(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(63000), totals.Subtotal)
	assert.Equal(t, int64(11340), totals.Tax)
	assert.Equal(t, int64(2000), totals.Delivery)
	assert.Equal(t, int64(76340), totals.Total)
}

func TestCartTotalsEmptyCart(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := NewCartService(store, testCheckout())

	totals, err := cart.Totals(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Equal(t, domain.CartTotals{}, totals)
}

func TestCartAddQuantityRules(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := NewCartService(store, testCheckout())
	ctx := context.Background()
	userID := uuid.New().String()

	sofa := seedSofa(t, store, 45000)

	// A zero quantity means "one", matching the storefront add button
	item, err := cart.Add(ctx, userID, sofa.ID, "", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	_, err = cart.Add(ctx, userID, sofa.ID, "", -3, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cart.Add(ctx, userID, uuid.New().String(), "", 1, nil)
	assert.ErrorIs(t, err, storage.ErrFurnitureNotFound)

	_, err = cart.UpdateQuantity(ctx, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	updated, err := cart.UpdateQuantity(ctx, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
}

func TestCartRepeatAddsCreateDistinctRows(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := NewCartService(store, testCheckout())
	ctx := context.Background()
	userID := uuid.New().String()

	sofa := seedSofa(t, store, 45000)

	first, err := cart.Add(ctx, userID, sofa.ID, "", 1, &domain.Position{X: 20, Y: 30})
	require.NoError(t, err)
	second, err := cart.Add(ctx, userID, sofa.ID, "", 1, &domain.Position{X: 70, Y: 60})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	lines, err := cart.Get(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCartOrphanedRowsExcludedFromTotals(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := NewCartService(store, testCheckout())
	ctx := context.Background()
	userID := uuid.New().String()

	sofa := seedSofa(t, store, 45000)
	_, err := cart.Add(ctx, userID, sofa.ID, "", 1, nil)
	require.NoError(t, err)

	// A row whose furniture id no longer resolves
	require.NoError(t, store.AddCartItem(ctx, &domain.CartItem{
		UserID:      userID,
		FurnitureID: uuid.New().String(),
		Quantity:    3,
	}))

	lines, err := cart.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	orphans := 0
	for _, line := range lines {
		if line.Orphaned {
			orphans++
			assert.Nil(t, line.Furniture)
		}
	}
	assert.Equal(t, 1, orphans)

	totals, err := cart.Totals(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), totals.Subtotal)
	assert.Equal(t, int64(8100), totals.Tax)
	assert.Equal(t, int64(2000), totals.Delivery)
	assert.Equal(t, int64(55100), totals.Total)
}

func TestCartTotalsAllOrphanedSkipsDelivery(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := NewCartService(store, testCheckout())
	ctx := context.Background()
	userID := uuid.New().String()

	require.NoError(t, store.AddCartItem(ctx, &domain.CartItem{
		UserID:      userID,
		FurnitureID: uuid.New().String(),
		Quantity:    1,
	}))

	totals, err := cart.Totals(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.CartTotals{}, totals)
}

func TestProperty_CartTotalsFollowFormula(t *testing.T) {
	checkout := testCheckout()
	properties := gopter.NewProperties(nil)

	properties.Property("totals equal subtotal plus rounded tax plus flat delivery", prop.ForAll(
		func(prices []int64, quantity int) bool {
			store := storage.NewMemoryStore()
			cart := NewCartService(store, checkout)
			ctx := context.Background()
			userID := uuid.New().String()

			var subtotal int64
			for _, price := range prices {
				item := &domain.FurnitureItem{Name: "Item", Price: price, RoomTypes: []string{domain.RoomLivingRoom}}
				if err := store.CreateFurnitureItem(ctx, item); err != nil {
					t.Logf("FAIL: create furniture: %v", err)
					return false
				}
				if _, err := cart.Add(ctx, userID, item.ID, "", quantity, nil); err != nil {
					t.Logf("FAIL: add cart item: %v", err)
					return false
				}
				subtotal += price * int64(quantity)
			}

			totals, err := cart.Totals(ctx, userID)
			if err != nil {
				t.Logf("FAIL: totals: %v", err)
				return false
			}

			if totals.Subtotal != subtotal {
				t.Logf("FAIL: subtotal mismatch, expected %d got %d", subtotal, totals.Subtotal)
				return false
			}

			wantTax := int64(math.Round(float64(subtotal) * checkout.TaxRate))
			if totals.Tax != wantTax {
				t.Logf("FAIL: tax mismatch, expected %d got %d", wantTax, totals.Tax)
				return false
			}

			wantDelivery := int64(0)
			if len(prices) > 0 {
				wantDelivery = checkout.DeliveryFee
			}
			if totals.Delivery != wantDelivery {
				t.Logf("FAIL: delivery mismatch, expected %d got %d", wantDelivery, totals.Delivery)
				return false
			}

			if totals.Total != totals.Subtotal+totals.Tax+totals.Delivery {
				t.Logf("FAIL: total is not the sum of its parts")
				return false
			}

			return true
		},
		gen.SliceOf(gen.Int64Range(100, 1000000)),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
