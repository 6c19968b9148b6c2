package handler_test

import (
	"context"
	"sync"

	"github.com/nexodus/nexodus-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory domain.UserRepository for handler tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByToken(_ context.Context, token string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Token == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeUserRepo) ReplaceToken(_ context.Context, id primitive.ObjectID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Token = token
	return nil
}

// fakeChatRepo is an in-memory domain.ChatRepository for handler tests.
type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[primitive.ObjectID]*domain.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[primitive.ObjectID]*domain.Chat)}
}

func (f *fakeChatRepo) Create(_ context.Context, chat *domain.Chat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	chat.ID = primitive.NewObjectID()
	clone := *chat
	clone.Messages = append([]domain.Message(nil), chat.Messages...)
	f.chats[chat.ID] = &clone
	return nil
}

func (f *fakeChatRepo) GetOwned(_ context.Context, userID, chatID primitive.ObjectID) (*domain.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chats[chatID]
	if !ok || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	clone := *c
	clone.Messages = append([]domain.Message(nil), c.Messages...)
	return &clone, nil
}

func (f *fakeChatRepo) Exists(_ context.Context, chatID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.chats[chatID]
	return ok, nil
}

func (f *fakeChatRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.ChatSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summaries := []domain.ChatSummary{}
	for _, c := range f.chats {
		if c.UserID == userID {
			summaries = append(summaries, domain.ChatSummary{ID: c.ID, Title: c.Title})
		}
	}
	return summaries, nil
}

func (f *fakeChatRepo) Rename(_ context.Context, userID, chatID primitive.ObjectID, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chats[chatID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	c.Title = title
	return true, nil
}

func (f *fakeChatRepo) AppendMessage(_ context.Context, userID, chatID primitive.ObjectID, msg domain.Message) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chats[chatID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	c.Messages = append(c.Messages, msg)
	return true, nil
}

func (f *fakeChatRepo) Delete(_ context.Context, userID, chatID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chats[chatID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	delete(f.chats, chatID)
	return true, nil
}
