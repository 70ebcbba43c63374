package transport

import (
	"context"
	"encoding/json"
	"net/http"
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

func newOrderRouter(t *testing.T) (storage.Store, service.CartService, chi.Router) {
	t.Helper()
	store := storage.NewMemoryStore()
	cart := service.NewCartService(store, config.CheckoutConfig{TaxRate: 0.18, DeliveryFee: 2000})
	orders := service.NewOrderService(store, cart, zap.NewNop())
	handler := NewOrderHandler(orders, zap.NewNop())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return store, cart, r
}

func checkoutShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		Name:    "Demo User",
		Email:   "demo@homevista.com",
		Phone:   "+91 9876543210",
		Address: "42 MG Road, Bangalore",
	}
}

func TestOrderHandlerCheckout(t *testing.T) {
	store, cart, router := newOrderRouter(t)
	ctx := context.Background()
	userID := uuid.New().String()

	sofa := seedCatalogSofa(t, store)
	_, err := cart.Add(ctx, userID, sofa.ID, "", 2, nil)
	require.NoError(t, err)

	w := postJSON(t, router, http.MethodPost, "/api/orders", CreateOrderRequest{
		UserID:           userID,
		ShippingInfo:     checkoutShipping(),
		InstallationDate: "2026-09-15",
		PaymentMethod:    "upi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order domain.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.Equal(t, "processing", order.OrderStatus)
	assert.Equal(t, int64(108200), order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Cart is empty afterwards
	lines, err := cart.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// The order is retrievable by id and by user
	w = postJSON(t, router, http.MethodGet, "/api/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, http.MethodGet, "/api/orders/user/"+userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []domain.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&mine))
	assert.Len(t, mine, 1)
}

func TestOrderHandlerRejections(t *testing.T) {
	store, cart, router := newOrderRouter(t)
	ctx := context.Background()
	userID := uuid.New().String()

	// Empty cart
	w := postJSON(t, router, http.MethodPost, "/api/orders", CreateOrderRequest{
		UserID:       userID,
		ShippingInfo: checkoutShipping(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	sofa := seedCatalogSofa(t, store)
	_, err := cart.Add(ctx, userID, sofa.ID, "", 1, nil)
	require.NoError(t, err)

	// Missing shipping fields
	w = postJSON(t, router, http.MethodPost, "/api/orders", CreateOrderRequest{
		UserID:       userID,
		ShippingInfo: domain.ShippingInfo{Name: "Demo User"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing user id fails validation
	w = postJSON(t, router, http.MethodPost, "/api/orders", CreateOrderRequest{
		ShippingInfo: checkoutShipping(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The cart survives every rejection
	lines, err := cart.Get(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestOrderHandlerUnknownOrder(t *testing.T) {
	_, _, router := newOrderRouter(t)

	w := postJSON(t, router, http.MethodGet, "/api/orders/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
