package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"homevista/internal/middleware"
	"homevista/internal/service"
)

// ArmRequest marks a furniture item for the next drop
type ArmRequest struct {
	FurnitureID string `json:"furnitureId" validate:"required"`
}

// PlaceRequest carries raw drop coordinates plus the surface size used
// to normalize them into the 0-100 frame. A zero surface size means the
// coordinates are already normalized.
type PlaceRequest struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	SurfaceWidth  float64 `json:"surfaceWidth"`
	SurfaceHeight float64 `json:"surfaceHeight"`
}

// ViewRequest adjusts the camera
type ViewRequest struct {
	RotationDelta float64 `json:"rotationDelta"`
	ZoomDelta     float64 `json:"zoomDelta"`
}

// RoomTypeRequest switches the active room
type RoomTypeRequest struct {
	RoomType string `json:"roomType" validate:"required"`
}

// UploadEventRequest resolves an upload or analysis step
type UploadEventRequest struct {
	OK *bool `json:"ok" validate:"required"`
}

// ViewResponse reports the camera after a transform
type ViewResponse struct {
	Rotation float64 `json:"rotation"`
	Zoom     float64 `json:"zoom"`
}

// StudioHandler handles HTTP requests for the 2D placement surface
type StudioHandler struct {
	studio service.StudioService
	logger *zap.Logger
}

// NewStudioHandler creates a new StudioHandler
func NewStudioHandler(studio service.StudioService, logger *zap.Logger) *StudioHandler {
	return &StudioHandler{studio: studio, logger: logger}
}

// RegisterRoutes registers all studio session routes. Guards apply to
// the whole session subtree, so a caller can only drive their own
// surface.
func (h *StudioHandler) RegisterRoutes(r chi.Router, guards ...func(http.Handler) http.Handler) {
	r.Route("/api/studio/{userId}", func(r chi.Router) {
		for _, guard := range guards {
			r.Use(guard)
		}
		r.Get("/", h.State)
		r.Delete("/", h.Reset)
		r.Post("/arm", h.Arm)
		r.Post("/place", h.Place)
		r.Delete("/placements/{placementId}", h.RemovePlacement)
		r.Post("/view", h.TransformView)
		r.Post("/room-type", h.SetRoomType)
		r.Post("/upload", h.BeginUpload)
		r.Post("/upload/done", h.UploadDone)
		r.Post("/analysis/done", h.AnalysisDone)
	})
}

func (h *StudioHandler) State(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	middleware.RespondWithJSON(w, http.StatusOK, h.studio.State(userID))
}

func (h *StudioHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	h.studio.Reset(userID)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "session reset"})
}

func (h *StudioHandler) Arm(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req ArmRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.studio.Arm(userID, req.FurnitureID)
	middleware.RespondWithJSON(w, http.StatusOK, h.studio.State(userID))
}

func (h *StudioHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req PlaceRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	placed, err := h.studio.PlaceAt(userID, req.X, req.Y, req.SurfaceWidth, req.SurfaceHeight)
	if err != nil {
		switch err {
		case service.ErrNothingArmed:
			middleware.RespondWithError(w, http.StatusConflict, "no furniture item armed for placement")
		case service.ErrKeepOut:
			middleware.RespondWithError(w, http.StatusUnprocessableEntity, "position falls inside a keep-out zone")
		default:
			h.logger.Error("Failed to place item", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place item")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, placed)
}

func (h *StudioHandler) RemovePlacement(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	placementID := chi.URLParam(r, "placementId")

	h.studio.Remove(userID, placementID)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "placement removed"})
}

func (h *StudioHandler) TransformView(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req ViewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rotation, zoom := h.studio.TransformView(userID, req.RotationDelta, req.ZoomDelta)
	middleware.RespondWithJSON(w, http.StatusOK, ViewResponse{Rotation: rotation, Zoom: zoom})
}

func (h *StudioHandler) SetRoomType(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req RoomTypeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.studio.SetRoomType(userID, req.RoomType)
	middleware.RespondWithJSON(w, http.StatusOK, h.studio.State(userID))
}

func (h *StudioHandler) BeginUpload(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.studio.BeginUpload(userID); err != nil {
		middleware.RespondWithError(w, http.StatusConflict, "upload already in progress or finished")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.studio.State(userID))
}

func (h *StudioHandler) UploadDone(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req UploadEventRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.studio.UploadDone(userID, *req.OK); err != nil {
		middleware.RespondWithError(w, http.StatusConflict, "no upload in progress")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.studio.State(userID))
}

func (h *StudioHandler) AnalysisDone(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req UploadEventRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.studio.AnalysisDone(userID, *req.OK); err != nil {
		middleware.RespondWithError(w, http.StatusConflict, "no analysis in progress")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.studio.State(userID))
}
