package service

import (
	"context"
	"testing"

	"homevista/internal/domain"
	"homevista/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordClassifier(t *testing.T) {
	classifier := KeywordClassifier{}

	cases := []struct {
		text string
		want Intent
	}{
		{"show me a property in HSR Layout", IntentProperty},
		{"any PLOTS near the beach?", IntentProperty},
		{"looking for land for a warehouse", IntentProperty},
		{"help me design my bedroom", IntentDesign},
		{"what fits this room?", IntentDesign},
		{"interior ideas please", IntentDesign},
		{"hello there", IntentGeneral},
		{"", IntentGeneral},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifier.Classify(tc.text), "text: %q", tc.text)
	}
}

func TestChatSendMessagePropertyIntent(t *testing.T) {
	store := storage.NewMemoryStore()
	chats := NewChatService(store, KeywordClassifier{})
	ctx := context.Background()

	require.NoError(t, store.CreateProperty(ctx, &domain.Property{
		Title:    "3BHK Apartment",
		Purpose:  domain.PurposeBuy,
		Price:    8500000,
		Location: "HSR Layout, Bangalore",
		Images:   []string{"https://example.com/a.jpg"},
	}))

	chat := &domain.Chat{UserID: uuid.New().String(), Title: "New Chat"}
	require.NoError(t, chats.Create(ctx, chat))

	reply, err := chats.SendMessage(ctx, chat.ID, "show me property options")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	require.NotEmpty(t, reply.Suggestions)
	assert.Equal(t, "property", reply.Suggestions[0].Type)
	assert.Equal(t, "View Property", reply.Suggestions[0].Action)
	assert.Equal(t, "3BHK Apartment", reply.Suggestions[0].Title)

	// Both turns were persisted in one write
	stored, err := chats.Get(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, domain.RoleUser, stored.Messages[0].Role)
	assert.Equal(t, "show me property options", stored.Messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, stored.Messages[1].Role)
}

func TestChatSendMessageDesignIntent(t *testing.T) {
	store := storage.NewMemoryStore()
	chats := NewChatService(store, KeywordClassifier{})
	ctx := context.Background()

	chat := &domain.Chat{UserID: uuid.New().String(), Title: "New Chat"}
	require.NoError(t, chats.Create(ctx, chat))

	reply, err := chats.SendMessage(ctx, chat.ID, "I want to redesign my living room")
	require.NoError(t, err)
	require.Len(t, reply.Suggestions, 1)
	assert.Equal(t, "design", reply.Suggestions[0].Type)
	assert.Equal(t, "Start Designing", reply.Suggestions[0].Action)
}

func TestChatSendMessageGeneralFallback(t *testing.T) {
	store := storage.NewMemoryStore()
	chats := NewChatService(store, KeywordClassifier{})
	ctx := context.Background()

	chat := &domain.Chat{UserID: uuid.New().String(), Title: "New Chat"}
	require.NoError(t, chats.Create(ctx, chat))

	reply, err := chats.SendMessage(ctx, chat.ID, "hello")
	require.NoError(t, err)
	assert.Empty(t, reply.Suggestions)
	assert.Contains(t, reply.Content, "property searches and room designs")
}

func TestChatSendMessageUnknownChat(t *testing.T) {
	store := storage.NewMemoryStore()
	chats := NewChatService(store, KeywordClassifier{})

	_, err := chats.SendMessage(context.Background(), uuid.New().String(), "hello")
	assert.ErrorIs(t, err, storage.ErrChatNotFound)
}

func TestChatReplaceMessages(t *testing.T) {
	store := storage.NewMemoryStore()
	chats := NewChatService(store, KeywordClassifier{})
	ctx := context.Background()

	chat := &domain.Chat{UserID: uuid.New().String(), Title: "New Chat"}
	require.NoError(t, chats.Create(ctx, chat))

	updated, err := chats.ReplaceMessages(ctx, chat.ID, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "imported history"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Messages, 1)
	assert.Equal(t, "imported history", updated.Messages[0].Content)
}
