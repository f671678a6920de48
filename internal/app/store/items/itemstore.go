package itemstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/shelfhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no item matches the lookup.
var ErrNotFound = errors.New("item not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("items")}
}

// Create inserts a new item, setting NameCI and stamping LastUpdate.
// Field validation and sanitization happen in the catalog service before
// this is called.
func (s *Store) Create(ctx context.Context, it models.Item) (models.Item, error) {
	it.ID = primitive.NewObjectID()
	it.NameCI = text.Fold(it.Name)
	if it.LastUpdate == 0 {
		it.LastUpdate = time.Now().UnixMilli()
	}

	if _, err := s.c.InsertOne(ctx, it); err != nil {
		return models.Item{}, err
	}
	return it, nil
}

// GetByID loads an item by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error) {
	var it models.Item
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// Update overwrites the mutable fields of one item in a single write.
// LastUpdate must already hold the refreshed timestamp; concurrent updates
// race with last-write-wins semantics, each write atomic on its own.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Item) error {
	set := bson.M{
		"name":        mut.Name,
		"name_ci":     text.Fold(mut.Name),
		"description": mut.Description,
		"image_url":   mut.ImageURL,
		"category_id": mut.CategoryID,
		"last_update": mut.LastUpdate,
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the item permanently. No soft delete.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLatest returns up to limit items ordered by LastUpdate descending.
func (s *Store) ListLatest(ctx context.Context, limit int64) ([]models.Item, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "last_update", Value: -1}, {Key: "_id", Value: -1}}).
			SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Item
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByCategory returns the category's items ordered by name,
// case-insensitive ascending. A category with no items yields an empty
// slice, not an error.
func (s *Store) ListByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Item, error) {
	cur, err := s.c.Find(ctx, bson.M{"category_id": categoryID},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Item
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListAllByName returns every item ordered by name, case-insensitive
// ascending. Used by the all-items JSON endpoint.
func (s *Store) ListAllByName(ctx context.Context) ([]models.Item, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Item
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteSeedRun removes every item tagged with the given seed run id.
func (s *Store) DeleteSeedRun(ctx context.Context, runID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"seed_run": runID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteSeeded removes every item carrying a seed run tag, regardless of
// which run loaded it. Untagged items are untouched.
func (s *Store) DeleteSeeded(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"seed_run": bson.M{"$exists": true}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
