package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homevista/internal/config"
	"homevista/internal/domain"
	"homevista/internal/service"
	"homevista/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCartRouter(t *testing.T) (storage.Store, chi.Router) {
	t.Helper()
	store := storage.NewMemoryStore()
	cart := service.NewCartService(store, config.CheckoutConfig{TaxRate: 0.18, DeliveryFee: 2000})
	handler := NewCartHandler(cart, zap.NewNop())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return store, r
}

func seedCatalogSofa(t *testing.T, store storage.Store) *domain.FurnitureItem {
	t.Helper()
	item := &domain.FurnitureItem{
		Name:      "Modern Sofa Set",
		Price:     45000,
		RoomTypes: []string{domain.RoomLivingRoom},
	}
	require.NoError(t, store.CreateFurnitureItem(context.Background(), item))
	return item
}

func postJSON(t *testing.T, r chi.Router, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCartHandlerAddAndTotals(t *testing.T) {
	store, router := newCartRouter(t)
	sofa := seedCatalogSofa(t, store)
	userID := uuid.New().String()

	w := postJSON(t, router, http.MethodPost, "/api/cart", AddCartItemRequest{
		UserID:      userID,
		FurnitureID: sofa.ID,
		Quantity:    2,
		Position:    &domain.Position{X: 30, Y: 40},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item domain.CartItem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 2, item.Quantity)

	w = postJSON(t, router, http.MethodGet, "/api/cart/"+userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lines []domain.CartLine
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lines))
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Furniture)
	assert.Equal(t, "Modern Sofa Set", lines[0].Furniture.Name)

	w = postJSON(t, router, http.MethodGet, "/api/cart/"+userID+"/totals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var totals domain.CartTotals
	require.NoError(t, json.NewDecoder(w.Body).Decode(&totals))
	assert.Equal(t, int64(90000), totals.Subtotal)
	assert.Equal(t, int64(16200), totals.Tax)
	assert.Equal(t, int64(2000), totals.Delivery)
	assert.Equal(t, int64(108200), totals.Total)
}

func TestCartHandlerAddRejections(t *testing.T) {
	store, router := newCartRouter(t)
	sofa := seedCatalogSofa(t, store)
	userID := uuid.New().String()

	// Unknown furniture
	w := postJSON(t, router, http.MethodPost, "/api/cart", AddCartItemRequest{
		UserID:      userID,
		FurnitureID: uuid.New().String(),
		Quantity:    1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Negative quantity
	w = postJSON(t, router, http.MethodPost, "/api/cart", AddCartItemRequest{
		UserID:      userID,
		FurnitureID: sofa.ID,
		Quantity:    -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing required fields
	w = postJSON(t, router, http.MethodPost, "/api/cart", AddCartItemRequest{Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandlerUpdateAndRemove(t *testing.T) {
	store, router := newCartRouter(t)
	sofa := seedCatalogSofa(t, store)
	userID := uuid.New().String()

	w := postJSON(t, router, http.MethodPost, "/api/cart", AddCartItemRequest{
		UserID:      userID,
		FurnitureID: sofa.ID,
		Quantity:    1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item domain.CartItem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&item))

	w = postJSON(t, router, http.MethodPut, "/api/cart/"+item.ID, UpdateCartItemRequest{Quantity: 3})
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.CartItem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, 3, updated.Quantity)

	w = postJSON(t, router, http.MethodPut, "/api/cart/"+uuid.New().String(), UpdateCartItemRequest{Quantity: 3})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postJSON(t, router, http.MethodDelete, "/api/cart/"+item.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var removal map[string]bool
	require.NoError(t, json.NewDecoder(w.Body).Decode(&removal))
	assert.True(t, removal["removed"])

	// Second delete reports nothing removed but still succeeds
	w = postJSON(t, router, http.MethodDelete, "/api/cart/"+item.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&removal))
	assert.False(t, removal["removed"])
}

func TestCartHandlerClear(t *testing.T) {
	store, router := newCartRouter(t)
	sofa := seedCatalogSofa(t, store)
	userID := uuid.New().String()

	for i := 0; i < 3; i++ {
		w := postJSON(t, router, http.MethodPost, "/api/cart", AddCartItemRequest{
			UserID:      userID,
			FurnitureID: sofa.ID,
			Quantity:    1,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := postJSON(t, router, http.MethodDelete, "/api/cart/user/"+userID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, http.MethodGet, "/api/cart/"+userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lines []domain.CartLine
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lines))
	assert.Empty(t, lines)
}
