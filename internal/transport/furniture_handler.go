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

// FurnitureHandler handles HTTP requests for the furniture catalog
type FurnitureHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewFurnitureHandler creates a new FurnitureHandler
func NewFurnitureHandler(catalog service.CatalogService, logger *zap.Logger) *FurnitureHandler {
	return &FurnitureHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers all furniture routes
func (h *FurnitureHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/furniture", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
}

// List returns the catalog for a room type, cheapest first.
func (h *FurnitureHandler) List(w http.ResponseWriter, r *http.Request) {
	roomType := r.URL.Query().Get("roomType")
	if roomType == "" {
		roomType = domain.RoomLivingRoom
	}

	items, err := h.catalog.ListFurniture(r.Context(), roomType)
	if err != nil {
		h.logger.Error("Failed to list furniture", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch furniture")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

func (h *FurnitureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.catalog.GetFurnitureItem(r.Context(), id)
	if err != nil {
		if err == storage.ErrFurnitureNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "furniture item not found")
			return
		}
		h.logger.Error("Failed to get furniture item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch furniture item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, item)
}
