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

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	UserID       string           `json:"userId" validate:"required"`
	FurnitureID  string           `json:"furnitureId" validate:"required"`
	RoomDesignID string           `json:"roomDesignId"`
	Quantity     int              `json:"quantity"`
	Position     *domain.Position `json:"position"`
}

// UpdateCartItemRequest represents the quantity update payload
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cart   service.CartService
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Post("/", h.Add)
		r.Get("/{userId}", h.Get)
		r.Get("/{userId}/totals", h.Totals)
		r.Put("/{id}", h.UpdateQuantity)
		r.Delete("/{id}", h.Remove)
		r.Delete("/user/{userId}", h.Clear)
	})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	lines, err := h.cart.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, lines)
}

func (h *CartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	totals, err := h.cart.Totals(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to compute cart totals", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute totals")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, totals)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cart.Add(r.Context(), req.UserID, req.FurnitureID, req.RoomDesignID, req.Quantity, req.Position)
	if err != nil {
		switch err {
		case service.ErrInvalidQuantity:
			middleware.RespondWithError(w, http.StatusBadRequest, "quantity must be at least 1")
		case storage.ErrFurnitureNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "furniture item not found")
		default:
			h.logger.Error("Failed to add cart item", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add cart item")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cart.UpdateQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		switch err {
		case service.ErrInvalidQuantity:
			middleware.RespondWithError(w, http.StatusBadRequest, "quantity must be at least 1")
		case storage.ErrCartItemNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "cart item not found")
		default:
			h.logger.Error("Failed to update cart item", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart item")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, item)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.cart.Remove(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.cart.Clear(r.Context(), userID); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
