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

// CreateChatRequest represents the new conversation payload
type CreateChatRequest struct {
	UserID   string               `json:"userId" validate:"required"`
	Title    string               `json:"title" validate:"required"`
	Messages []domain.ChatMessage `json:"messages"`
}

// UpdateChatRequest replaces the message history wholesale.
type UpdateChatRequest struct {
	Messages []domain.ChatMessage `json:"messages" validate:"required"`
}

// SendMessageRequest represents one user turn
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatHandler handles HTTP requests for assistant conversations
type ChatHandler struct {
	chats  service.ChatService
	logger *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chats service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chats: chats, logger: logger}
}

// RegisterRoutes registers all assistant chat routes
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/ai-chats", func(r chi.Router) {
		r.Get("/", h.ListByUser)
		r.Post("/", h.Create)
		r.Put("/{id}", h.ReplaceMessages)
		r.Post("/{id}/message", h.SendMessage)
	})
}

func (h *ChatHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	chats, err := h.chats.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list chats", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch chats")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chat := &domain.Chat{
		UserID:   req.UserID,
		Title:    req.Title,
		Messages: req.Messages,
	}
	if err := h.chats.Create(r.Context(), chat); err != nil {
		h.logger.Error("Failed to create chat", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create chat")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, chat)
}

func (h *ChatHandler) ReplaceMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateChatRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chat, err := h.chats.ReplaceMessages(r.Context(), id, req.Messages)
	if err != nil {
		if err == storage.ErrChatNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "chat not found")
			return
		}
		h.logger.Error("Failed to update chat", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update chat")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, chat)
}

// SendMessage appends a user turn, runs the assistant and returns the
// assistant's reply.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SendMessageRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.chats.SendMessage(r.Context(), id, req.Message)
	if err != nil {
		if err == storage.ErrChatNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "chat not found")
			return
		}
		h.logger.Error("Failed to process chat message", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]domain.ChatMessage{"message": reply})
}
