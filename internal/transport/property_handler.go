package transport

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"homevista/internal/domain"
	"homevista/internal/middleware"
	"homevista/internal/service"
	"homevista/internal/storage"
)

// CreatePropertyRequest represents the property listing payload
type CreatePropertyRequest struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description"`
	Purpose          string   `json:"purpose" validate:"required,oneof=buy rent land"`
	PropertyType     string   `json:"propertyType"`
	Price            int64    `json:"price" validate:"required,gt=0"`
	Location         string   `json:"location" validate:"required"`
	Facing           string   `json:"facing"`
	Sqft             int      `json:"sqft"`
	Furnishing       string   `json:"furnishing"`
	TenantPreference string   `json:"tenantPreference"`
	LandPurpose      string   `json:"landPurpose"`
	Amenities        []string `json:"amenities"`
	Tags             []string `json:"tags"`
	Images           []string `json:"images"`
	OwnerName        string   `json:"ownerName" validate:"required"`
	OwnerContact     string   `json:"ownerContact"`
	IsVerified       bool     `json:"isVerified"`
	IsNew            bool     `json:"isNew"`
	IsPremium        bool     `json:"isPremium"`
}

// SavePropertyRequest represents the bookmark payload
type SavePropertyRequest struct {
	UserID     string `json:"userId" validate:"required"`
	PropertyID string `json:"propertyId" validate:"required"`
}

// SavedPropertyResponse pairs a bookmark with its resolved property.
type SavedPropertyResponse struct {
	domain.SavedProperty
	Property *domain.Property `json:"property"`
}

// PropertyHandler handles HTTP requests for the property marketplace
type PropertyHandler struct {
	properties service.PropertyService
	logger     *zap.Logger
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(properties service.PropertyService, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, logger: logger}
}

// RegisterRoutes registers all property routes
func (h *PropertyHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/properties", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Create)
	})
	r.Route("/api/saved-properties", func(r chi.Router) {
		r.Get("/", h.ListSaved)
		r.Post("/", h.Save)
		r.Delete("/", h.Unsave)
	})
}

func filterFromQuery(r *http.Request) storage.PropertyFilter {
	q := r.URL.Query()
	filter := storage.PropertyFilter{
		Purpose:      q.Get("purpose"),
		Location:     q.Get("location"),
		PropertyType: q.Get("propertyType"),
		Facing:       q.Get("facing"),
	}
	if v := q.Get("minPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinPrice = n
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxPrice = n
		}
	}
	if v := q.Get("amenities"); v != "" {
		filter.Amenities = strings.Split(v, ",")
	}
	return filter
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.properties.List(r.Context(), filterFromQuery(r))
	if err != nil {
		h.logger.Error("Failed to list properties", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch properties")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := h.properties.Get(r.Context(), id)
	if err != nil {
		if err == storage.ErrPropertyNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "property not found")
			return
		}
		h.logger.Error("Failed to get property", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch property")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	property := &domain.Property{
		Title:            req.Title,
		Description:      req.Description,
		Purpose:          req.Purpose,
		PropertyType:     req.PropertyType,
		Price:            req.Price,
		Location:         req.Location,
		Facing:           req.Facing,
		Sqft:             req.Sqft,
		Furnishing:       req.Furnishing,
		TenantPreference: req.TenantPreference,
		LandPurpose:      req.LandPurpose,
		Amenities:        req.Amenities,
		Tags:             req.Tags,
		Images:           req.Images,
		OwnerName:        req.OwnerName,
		OwnerContact:     req.OwnerContact,
		IsVerified:       req.IsVerified,
		IsNew:            req.IsNew,
		IsPremium:        req.IsPremium,
	}
	if err := h.properties.Create(r.Context(), property); err != nil {
		h.logger.Error("Failed to create property", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create property")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, property)
}

// ListSaved resolves each bookmark to its property so the client can
// render cards without extra round trips. Bookmarks whose property has
// vanished are returned with a nil property.
func (h *PropertyHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	saved, err := h.properties.ListSaved(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list saved properties", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch saved properties")
		return
	}

	response := make([]SavedPropertyResponse, 0, len(saved))
	for _, sp := range saved {
		entry := SavedPropertyResponse{SavedProperty: *sp}
		property, err := h.properties.Get(r.Context(), sp.PropertyID)
		if err == nil {
			entry.Property = property
		} else if err != storage.ErrPropertyNotFound {
			h.logger.Error("Failed to resolve saved property", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch saved properties")
			return
		}
		response = append(response, entry)
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

func (h *PropertyHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SavePropertyRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.properties.Save(r.Context(), req.UserID, req.PropertyID)
	if err != nil {
		if err == storage.ErrPropertyNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "property not found")
			return
		}
		h.logger.Error("Failed to save property", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save property")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, saved)
}

func (h *PropertyHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	var req SavePropertyRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.properties.Unsave(r.Context(), req.UserID, req.PropertyID); err != nil {
		if err == storage.ErrSavedPropertyNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "saved property not found")
			return
		}
		h.logger.Error("Failed to unsave property", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to unsave property")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "property unsaved successfully"})
}
