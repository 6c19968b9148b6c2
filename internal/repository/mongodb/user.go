package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexodus/nexodus-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// UserRepository implements domain.UserRepository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.db.database.Collection(usersCollection)
}

// EnsureIndexes creates the unique indexes the auth core relies on: one
// account per email, one user per token.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	res, err := r.collection().InsertOne(ctx, user)
	if err != nil {
		// The unique email index closes the race between the existence
		// check and the insert.
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return translate(err, "failed to create user")
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "failed to get user by id")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "failed to get user by email")
}

func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"token": token}, "failed to get user by token")
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, op string) (*domain.User, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	var user domain.User
	err := r.collection().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, translate(err, op)
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	count, err := r.collection().CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, translate(err, "failed to check email")
	}
	return count > 0, nil
}

// ReplaceToken overwrites the user's bearer token in a single atomic update,
// so two concurrent logins can never leave a half-written token.
func (r *UserRepository) ReplaceToken(ctx context.Context, id primitive.ObjectID, token string) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"token":      token,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return translate(err, "failed to replace token")
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
