package domain

import "time"

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Suggestion is an actionable card attached to an assistant reply: a
// property to view or a design concept to start from.
type Suggestion struct {
	Type        string `json:"type" bson:"type"`
	ID          string `json:"id,omitempty" bson:"id,omitempty"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	Price       int64  `json:"price,omitempty" bson:"price,omitempty"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
	Action      string `json:"action" bson:"action"`
}

// ChatMessage is a single turn in an assistant conversation.
type ChatMessage struct {
	Role        string       `json:"role" bson:"role"`
	Content     string       `json:"content" bson:"content"`
	Timestamp   time.Time    `json:"timestamp" bson:"timestamp"`
	Suggestions []Suggestion `json:"suggestions,omitempty" bson:"suggestions,omitempty"`
}

// Chat is a stored assistant conversation.
type Chat struct {
	ID        string        `json:"id" bson:"_id"`
	UserID    string        `json:"userId" bson:"userId"`
	Title     string        `json:"title" bson:"title"`
	Messages  []ChatMessage `json:"messages" bson:"messages"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}
