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

// CreateBookingRequest represents the consultation booking payload
type CreateBookingRequest struct {
	UserID           string `json:"userId" validate:"required"`
	ConsultantID     string `json:"consultantId" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required"`
	PropertyType     string `json:"propertyType"`
	ConsultationType string `json:"consultationType" validate:"required"`
	PreferredDate    string `json:"preferredDate" validate:"required"`
	PreferredTime    string `json:"preferredTime" validate:"required"`
	Requirements     string `json:"requirements"`
	TotalAmount      int64  `json:"totalAmount"`
}

// ConsultantHandler handles HTTP requests for consultants and bookings
type ConsultantHandler struct {
	consultants service.ConsultantService
	logger      *zap.Logger
}

// NewConsultantHandler creates a new ConsultantHandler
func NewConsultantHandler(consultants service.ConsultantService, logger *zap.Logger) *ConsultantHandler {
	return &ConsultantHandler{consultants: consultants, logger: logger}
}

// RegisterRoutes registers all consultant and booking routes
func (h *ConsultantHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/consultants", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", h.ListBookings)
		r.Post("/", h.CreateBooking)
	})
}

func (h *ConsultantHandler) List(w http.ResponseWriter, r *http.Request) {
	consultantType := r.URL.Query().Get("type")

	consultants, err := h.consultants.List(r.Context(), consultantType)
	if err != nil {
		h.logger.Error("Failed to list consultants", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch consultants")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, consultants)
}

func (h *ConsultantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	consultant, err := h.consultants.Get(r.Context(), id)
	if err != nil {
		if err == storage.ErrConsultantNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "consultant not found")
			return
		}
		h.logger.Error("Failed to get consultant", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch consultant")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, consultant)
}

func (h *ConsultantHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	bookings, err := h.consultants.ListBookings(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch bookings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, bookings)
}

func (h *ConsultantHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking := &domain.Booking{
		UserID:           req.UserID,
		ConsultantID:     req.ConsultantID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		PropertyType:     req.PropertyType,
		ConsultationType: req.ConsultationType,
		PreferredDate:    req.PreferredDate,
		PreferredTime:    req.PreferredTime,
		Requirements:     req.Requirements,
		TotalAmount:      req.TotalAmount,
	}
	if err := h.consultants.CreateBooking(r.Context(), booking); err != nil {
		if err == storage.ErrConsultantNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "consultant not found")
			return
		}
		h.logger.Error("Failed to create booking", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, booking)
}
