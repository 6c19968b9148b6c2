package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexodus/nexodus-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatsCollection = "chats"

// ChatRepository implements domain.ChatRepository
type ChatRepository struct {
	db *DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) collection() *mongo.Collection {
	return r.db.database.Collection(chatsCollection)
}

// EnsureIndexes creates the owner index backing the list and ownership
// queries.
func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create chat indexes: %w", err)
	}
	return nil
}

func (r *ChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	res, err := r.collection().InsertOne(ctx, chat)
	if err != nil {
		return translate(err, "failed to create chat")
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		chat.ID = id
	}
	return nil
}

// GetOwned fetches the chat through a single conjunctive filter on id and
// owner, leaving no window between the existence and ownership checks.
func (r *ChatRepository) GetOwned(ctx context.Context, userID, chatID primitive.ObjectID) (*domain.Chat, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	var chat domain.Chat
	err := r.collection().FindOne(ctx, bson.M{"_id": chatID, "user_id": userID}).Decode(&chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, translate(err, "failed to get chat")
	}
	return &chat, nil
}

func (r *ChatRepository) Exists(ctx context.Context, chatID primitive.ObjectID) (bool, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	count, err := r.collection().CountDocuments(ctx, bson.M{"_id": chatID}, options.Count().SetLimit(1))
	if err != nil {
		return false, translate(err, "failed to check chat")
	}
	return count > 0, nil
}

func (r *ChatRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatSummary, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "title": 1}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, translate(err, "failed to list chats")
	}
	defer cursor.Close(ctx)

	summaries := []domain.ChatSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, translate(err, "failed to decode chats")
	}
	return summaries, nil
}

func (r *ChatRepository) Rename(ctx context.Context, userID, chatID primitive.ObjectID, title string) (bool, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": chatID, "user_id": userID},
		bson.M{"$set": bson.M{"title": title}},
	)
	if err != nil {
		return false, translate(err, "failed to rename chat")
	}
	return res.MatchedCount > 0, nil
}

// AppendMessage pushes onto the embedded message array in place. Concurrent
// appends to the same chat both land; there is no read-modify-write replace
// to lose one of them.
func (r *ChatRepository) AppendMessage(ctx context.Context, userID, chatID primitive.ObjectID, msg domain.Message) (bool, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": chatID, "user_id": userID},
		bson.M{"$push": bson.M{"messages": msg}},
	)
	if err != nil {
		return false, translate(err, "failed to append message")
	}
	return res.MatchedCount > 0, nil
}

func (r *ChatRepository) Delete(ctx context.Context, userID, chatID primitive.ObjectID) (bool, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": chatID, "user_id": userID})
	if err != nil {
		return false, translate(err, "failed to delete chat")
	}
	return res.DeletedCount > 0, nil
}
