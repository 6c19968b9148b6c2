package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message roles accepted at the wire boundary.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultChatTitle is assigned to chats created without an explicit title.
const DefaultChatTitle = "New chat"

// Message is a single entry in a chat's conversation. Messages live only
// inside their chat document and are never referenced independently.
type Message struct {
	Role    string `json:"role" bson:"role" validate:"required"`
	Content string `json:"content" bson:"content" validate:"required"`
}

// Chat represents a conversation owned by a single user. The owner never
// changes after creation; the messages array is append-only through the API.
type Chat struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Title     string             `json:"title" bson:"title"`
	Messages  []Message          `json:"messages" bson:"messages"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ChatSummary is the list-view projection of a chat.
type ChatSummary struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Title string             `json:"title" bson:"title"`
}

// ChatRename represents a title change request
type ChatRename struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title" validate:"required,max=50"`
}

// ChatRepository defines the interface for chat storage
type ChatRepository interface {
	Create(ctx context.Context, chat *Chat) error
	// GetOwned fetches the chat only if it exists AND belongs to userID, as
	// a single conjunctive query.
	GetOwned(ctx context.Context, userID, chatID primitive.ObjectID) (*Chat, error)
	Exists(ctx context.Context, chatID primitive.ObjectID) (bool, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]ChatSummary, error)
	// Rename and AppendMessage are conditional atomic updates filtered on
	// both chat id and owner; they report whether a document matched.
	Rename(ctx context.Context, userID, chatID primitive.ObjectID, title string) (bool, error)
	AppendMessage(ctx context.Context, userID, chatID primitive.ObjectID, msg Message) (bool, error)
	Delete(ctx context.Context, userID, chatID primitive.ObjectID) (bool, error)
}
