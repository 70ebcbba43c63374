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

// CreateRoomDesignRequest represents the saved design payload
type CreateRoomDesignRequest struct {
	UserID     string         `json:"userId" validate:"required"`
	Title      string         `json:"title" validate:"required"`
	RoomType   string         `json:"roomType" validate:"required"`
	DesignType string         `json:"designType" validate:"required"`
	Theme      string         `json:"theme"`
	Elements   map[string]any `json:"elements"`
	ImageURL   string         `json:"imageUrl"`
}

// UpdateRoomDesignRequest carries a partial update; zero fields are
// left untouched.
type UpdateRoomDesignRequest struct {
	Title      string         `json:"title"`
	RoomType   string         `json:"roomType"`
	DesignType string         `json:"designType"`
	Theme      string         `json:"theme"`
	Elements   map[string]any `json:"elements"`
	ImageURL   string         `json:"imageUrl"`
}

// DesignHandler handles HTTP requests for saved room designs
type DesignHandler struct {
	designs service.DesignService
	logger  *zap.Logger
}

// NewDesignHandler creates a new DesignHandler
func NewDesignHandler(designs service.DesignService, logger *zap.Logger) *DesignHandler {
	return &DesignHandler{designs: designs, logger: logger}
}

// RegisterRoutes registers all room design routes
func (h *DesignHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/room-designs", func(r chi.Router) {
		r.Get("/", h.ListByUser)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
	})
}

func (h *DesignHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	designs, err := h.designs.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list room designs", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch room designs")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, designs)
}

func (h *DesignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomDesignRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	design := &domain.RoomDesign{
		UserID:     req.UserID,
		Title:      req.Title,
		RoomType:   req.RoomType,
		DesignType: req.DesignType,
		Theme:      req.Theme,
		Elements:   req.Elements,
		ImageURL:   req.ImageURL,
	}
	if err := h.designs.Create(r.Context(), design); err != nil {
		h.logger.Error("Failed to create room design", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create room design")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, design)
}

func (h *DesignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateRoomDesignRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := &domain.RoomDesign{
		Title:      req.Title,
		RoomType:   req.RoomType,
		DesignType: req.DesignType,
		Theme:      req.Theme,
		Elements:   req.Elements,
		ImageURL:   req.ImageURL,
	}
	design, err := h.designs.Update(r.Context(), id, patch)
	if err != nil {
		if err == storage.ErrRoomDesignNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "room design not found")
			return
		}
		h.logger.Error("Failed to update room design", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update room design")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, design)
}
