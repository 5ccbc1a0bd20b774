package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kuisioner/internal/apperr"
	"kuisioner/internal/model"
)

// UserRepo handles MongoDB operations for users
type UserRepo interface {
	EnsureIndexes(ctx context.Context) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetOrCreate(ctx context.Context, email, name string, role model.Role) (*model.User, error)
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{collection: db.Collection("users")}
}

func (r *userRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreate returns the user with the given email, creating it first if
// needed. An existing user's name is refreshed when a non-empty name is
// submitted.
func (r *userRepo) GetOrCreate(ctx context.Context, email, name string, role model.Role) (*model.User, error) {
	existing, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if name != "" && name != existing.Name {
			existing.Name = name
			_, err = r.collection.UpdateOne(ctx,
				bson.M{"email": email},
				bson.M{"$set": bson.M{"name": name}})
			if err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		// Two concurrent first submissions can race on the unique email
		// index; the loser adopts the winner's row.
		if mongo.IsDuplicateKeyError(err) {
			existing, ferr := r.GetByEmail(ctx, email)
			if ferr == nil && existing != nil {
				return existing, nil
			}
			return nil, fmt.Errorf("user %s: %w", email, apperr.ErrDuplicate)
		}
		return nil, err
	}
	return user, nil
}
