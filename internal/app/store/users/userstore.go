package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/shelfhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetOrCreateByEmail resolves an email to its user row, creating the row on
// first sight. The same email always resolves to the same user id; the
// upsert against the unique email index keeps this idempotent under
// concurrent logins for a brand-new email.
func (s *Store) GetOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, errors.New("email is required")
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": bson.M{
			"email":      email,
			"created_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		// A concurrent upsert can trip the unique index; the row exists
		// now, so retry as a plain read.
		if wafflemongo.IsDup(err) {
			return s.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a user directly. Used by the seed loader and fixtures; the
// login flow goes through GetOrCreateByEmail.
func (s *Store) Create(ctx context.Context, email string) (models.User, error) {
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     normalizeEmail(email),
		CreatedAt: time.Now().UTC(),
	}
	if u.Email == "" {
		return models.User{}, errors.New("email is required")
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
