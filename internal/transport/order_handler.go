package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"homevista/internal/domain"
	"homevista/internal/middleware"
	"homevista/internal/service"
	"homevista/internal/storage"
)

// CreateOrderRequest represents the checkout payload. Shipping presence
// is enforced by the service, not the decoder, so a missing field comes
// back as the dedicated reason rather than a generic validation error.
type CreateOrderRequest struct {
	UserID           string              `json:"userId" validate:"required"`
	RoomDesignID     string              `json:"roomDesignId"`
	ShippingInfo     domain.ShippingInfo `json:"shippingInfo"`
	InstallationDate string              `json:"installationDate"`
	PaymentMethod    string              `json:"paymentMethod"`
}

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orders service.OrderService
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Get("/user/{userId}", h.ListByUser)
	})
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.Place(r.Context(), req.UserID, req.ShippingInfo, req.InstallationDate, req.PaymentMethod, req.RoomDesignID)
	if err != nil {
		switch err {
		case service.ErrEmptyCart:
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
		case service.ErrMissingFields:
			middleware.RespondWithError(w, http.StatusBadRequest, "shipping info requires name, email, phone and address")
		default:
			h.logger.Error("Failed to place order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Int64("total", order.TotalAmount),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		if err == storage.ErrOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to get order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}
