package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homevista/internal/domain"
	"homevista/internal/storage"
)

// Intent is the coarse category the assistant routes a message to.
type Intent int

const (
	IntentGeneral Intent = iota
	IntentProperty
	IntentDesign
)

// Classifier maps free text to an Intent. The default implementation is
// keyword based; a model-backed one can be swapped in without touching
// the chat flow.
type Classifier interface {
	Classify(text string) Intent
}

// KeywordClassifier routes on substring matches, mirroring what users
// actually type: "property"/"plot"/"land" for listings,
// "design"/"room"/"interior" for the studio.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(text string) Intent {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "property") || strings.Contains(lower, "plot") || strings.Contains(lower, "land"):
		return IntentProperty
	case strings.Contains(lower, "design") || strings.Contains(lower, "room") || strings.Contains(lower, "interior"):
		return IntentDesign
	default:
		return IntentGeneral
	}
}

// ChatService manages assistant conversations.
type ChatService interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Chat, error)
	Get(ctx context.Context, id string) (*domain.Chat, error)
	Create(ctx context.Context, chat *domain.Chat) error
	ReplaceMessages(ctx context.Context, id string, messages []domain.ChatMessage) (*domain.Chat, error)
	SendMessage(ctx context.Context, chatID, text string) (domain.ChatMessage, error)
}

type chatService struct {
	store      storage.Store
	classifier Classifier
}

// NewChatService creates a new instance of ChatService
func NewChatService(store storage.Store, classifier Classifier) ChatService {
	return &chatService{store: store, classifier: classifier}
}

func (s *chatService) ListByUser(ctx context.Context, userID string) ([]*domain.Chat, error) {
	chats, err := s.store.ListChatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

func (s *chatService) Get(ctx context.Context, id string) (*domain.Chat, error) {
	return s.store.GetChat(ctx, id)
}

func (s *chatService) Create(ctx context.Context, chat *domain.Chat) error {
	if err := s.store.CreateChat(ctx, chat); err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

func (s *chatService) ReplaceMessages(ctx context.Context, id string, messages []domain.ChatMessage) (*domain.Chat, error) {
	if err := s.store.UpdateChatMessages(ctx, id, messages); err != nil {
		return nil, err
	}
	return s.store.GetChat(ctx, id)
}

// SendMessage appends the user's message and the assistant's reply to
// the conversation in one store write, and returns the reply.
func (s *chatService) SendMessage(ctx context.Context, chatID, text string) (domain.ChatMessage, error) {
	chat, err := s.store.GetChat(ctx, chatID)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	reply, err := s.reply(ctx, text)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	messages := append(chat.Messages,
		domain.ChatMessage{Role: domain.RoleUser, Content: text, Timestamp: time.Now()},
		reply,
	)
	if err := s.store.UpdateChatMessages(ctx, chatID, messages); err != nil {
		return domain.ChatMessage{}, err
	}
	return reply, nil
}

func (s *chatService) reply(ctx context.Context, text string) (domain.ChatMessage, error) {
	reply := domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Timestamp: time.Now(),
	}

	switch s.classifier.Classify(text) {
	case IntentProperty:
		properties, err := s.store.ListProperties(ctx, storage.PropertyFilter{})
		if err != nil {
			return domain.ChatMessage{}, fmt.Errorf("failed to load property suggestions: %w", err)
		}
		if len(properties) > 2 {
			properties = properties[:2]
		}
		reply.Content = "I found some great properties that match your requirements! Here are my top recommendations:"
		for _, p := range properties {
			image := ""
			if len(p.Images) > 0 {
				image = p.Images[0]
			}
			reply.Suggestions = append(reply.Suggestions, domain.Suggestion{
				Type:     "property",
				ID:       p.ID,
				Title:    p.Title,
				Location: p.Location,
				Price:    p.Price,
				Image:    image,
				Action:   "View Property",
			})
		}
	case IntentDesign:
		reply.Content = "Perfect choice! I can help you create beautiful room designs. Here's a concept based on your preferences:"
		reply.Suggestions = []domain.Suggestion{{
			Type:        "design",
			Title:       "Modern Living Room Design",
			Description: "Features: Teal accent wall, wooden furniture, modern lighting",
			Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=300",
			Action:      "Start Designing",
		}}
	default:
		reply.Content = "I'm here to help you with property searches and room designs. Could you please provide more specific details about what you're looking for?"
	}

	return reply, nil
}
