package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/nexodus/nexodus-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatService owns chat lifecycle and per-chat authorization
type ChatService struct {
	chatRepo domain.ChatRepository
}

// NewChatService creates a new chat service
func NewChatService(chatRepo domain.ChatRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo}
}

// Create starts a new chat from the caller's opening message. The first
// message of a chat must carry the user role.
func (s *ChatService) Create(ctx context.Context, userID primitive.ObjectID, msg domain.Message) (primitive.ObjectID, error) {
	if msg.Role != domain.RoleUser {
		return primitive.NilObjectID, fmt.Errorf("a chat must start with a user message: %w", domain.ErrInvalidInput)
	}

	content, err := sanitizeContent(msg.Content)
	if err != nil {
		return primitive.NilObjectID, err
	}

	chat := &domain.Chat{
		UserID:    userID,
		Title:     domain.DefaultChatTitle,
		Messages:  []domain.Message{{Role: domain.RoleUser, Content: content}},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return primitive.NilObjectID, err
	}
	return chat.ID, nil
}

// Get returns the full chat if it belongs to userID. Missing chats yield
// ErrNotFound, existing chats owned by someone else ErrForbidden.
func (s *ChatService) Get(ctx context.Context, userID, chatID primitive.ObjectID) (*domain.Chat, error) {
	chat, err := s.chatRepo.GetOwned(ctx, userID, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.classifyMiss(ctx, chatID)
		}
		return nil, err
	}
	return chat, nil
}

// List returns summaries of the caller's chats, newest first.
func (s *ChatService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatSummary, error) {
	return s.chatRepo.ListByUser(ctx, userID)
}

// Rename changes a chat's title via a conditional atomic update.
func (s *ChatService) Rename(ctx context.Context, userID, chatID primitive.ObjectID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title must not be empty: %w", domain.ErrInvalidInput)
	}
	if len(title) > 50 {
		return fmt.Errorf("title must be at most 50 characters: %w", domain.ErrInvalidInput)
	}

	matched, err := s.chatRepo.Rename(ctx, userID, chatID, html.EscapeString(title))
	if err != nil {
		return err
	}
	if !matched {
		return s.classifyMiss(ctx, chatID)
	}
	return nil
}

// Append adds a message to the chat's conversation. The update is an atomic
// array push filtered on id and owner, so concurrent appends all survive.
func (s *ChatService) Append(ctx context.Context, userID, chatID primitive.ObjectID, msg domain.Message) error {
	if msg.Role != domain.RoleUser && msg.Role != domain.RoleAssistant {
		return fmt.Errorf("role must be %q or %q: %w", domain.RoleUser, domain.RoleAssistant, domain.ErrInvalidInput)
	}

	content, err := sanitizeContent(msg.Content)
	if err != nil {
		return err
	}

	matched, err := s.chatRepo.AppendMessage(ctx, userID, chatID, domain.Message{
		Role:    msg.Role,
		Content: content,
	})
	if err != nil {
		return err
	}
	if !matched {
		return s.classifyMiss(ctx, chatID)
	}
	return nil
}

// Delete removes the chat if the caller owns it.
func (s *ChatService) Delete(ctx context.Context, userID, chatID primitive.ObjectID) error {
	deleted, err := s.chatRepo.Delete(ctx, userID, chatID)
	if err != nil {
		return err
	}
	if !deleted {
		return s.classifyMiss(ctx, chatID)
	}
	return nil
}

// classifyMiss decides between 404 and 403 after the conjunctive owner+id
// query missed: the chat either does not exist or belongs to someone else.
func (s *ChatService) classifyMiss(ctx context.Context, chatID primitive.ObjectID) error {
	exists, err := s.chatRepo.Exists(ctx, chatID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrForbidden
	}
	return domain.ErrNotFound
}

func sanitizeContent(content string) (string, error) {
	content = strings.TrimSpace(html.EscapeString(content))
	if content == "" {
		return "", fmt.Errorf("content must not be empty: %w", domain.ErrInvalidInput)
	}
	return content, nil
}
