// Package catalog implements the validated, sanitized domain operations
// over items and categories.
//
// Every free-text field passes through the sanitizer before validation or
// storage. The authorization gate runs in the handlers before any mutating
// call reaches this service; the service validates fields and ordering
// semantics, not ownership.
package catalog

import (
	"context"
	"errors"
	"time"

	categorystore "github.com/dalemusser/shelfhub/internal/app/store/categories"
	itemstore "github.com/dalemusser/shelfhub/internal/app/store/items"
	"github.com/dalemusser/shelfhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/shelfhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultLatestLimit caps the index page's latest-items list.
const DefaultLatestLimit = 10

var (
	// ErrEmptyName rejects a create or update whose name sanitizes to
	// nothing. No row is written.
	ErrEmptyName = errors.New("name is required")
	// ErrInvalidCategory rejects a create or update whose category
	// reference is not a well-formed id.
	ErrInvalidCategory = errors.New("category reference is invalid")
	// ErrNotFound is returned when the target item does not exist.
	ErrNotFound = errors.New("item not found")
)

// Fields carries the raw free-text input for a create or update. All four
// values are sanitized before use.
type Fields struct {
	Name        string
	Description string
	ImageURL    string
	CategoryID  string
}

type Service struct {
	Items       *itemstore.Store
	Categories  *categorystore.Store
	Log         *zap.Logger
	LatestLimit int64
}

func NewService(items *itemstore.Store, categories *categorystore.Store, logger *zap.Logger) *Service {
	return &Service{
		Items:       items,
		Categories:  categories,
		Log:         logger,
		LatestLimit: DefaultLatestLimit,
	}
}

// ListCategories returns all categories ordered by name, case-insensitive
// ascending.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Categories.List(ctx)
}

// ListLatestItems returns the most recently updated items, newest first,
// capped at the configured limit.
func (s *Service) ListLatestItems(ctx context.Context) ([]models.Item, error) {
	limit := s.LatestLimit
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	return s.Items.ListLatest(ctx, limit)
}

// ListItemsByCategory returns the category's items ordered by name,
// case-insensitive ascending. An empty result is valid.
func (s *Service) ListItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Item, error) {
	return s.Items.ListByCategory(ctx, categoryID)
}

// ListAllItemsByName returns every item ordered by name, case-insensitive
// ascending.
func (s *Service) ListAllItemsByName(ctx context.Context) ([]models.Item, error) {
	return s.Items.ListAllByName(ctx)
}

// GetItem returns the single item with that id, or ErrNotFound.
func (s *Service) GetItem(ctx context.Context, itemID primitive.ObjectID) (*models.Item, error) {
	it, err := s.Items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, itemstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

// CreateItem sanitizes and validates fields, then persists a new item owned
// by ownerID with a fresh LastUpdate stamp.
func (s *Service) CreateItem(ctx context.Context, ownerID primitive.ObjectID, f Fields) (models.Item, error) {
	clean, catID, err := s.cleanFields(f)
	if err != nil {
		return models.Item{}, err
	}

	it := models.Item{
		Name:        clean.Name,
		Description: clean.Description,
		ImageURL:    clean.ImageURL,
		CategoryID:  catID,
		OwnerID:     ownerID,
		LastUpdate:  time.Now().UnixMilli(),
	}

	created, err := s.Items.Create(ctx, it)
	if err != nil {
		return models.Item{}, err
	}

	s.Log.Info("item created",
		zap.String("item_id", created.ID.Hex()),
		zap.String("owner_id", ownerID.Hex()))
	return created, nil
}

// UpdateItem overwrites the item's fields and refreshes LastUpdate. The
// ownership gate has already confirmed callerID may edit this item; callerID
// is carried for the log line only. On validation failure the stored item is
// left unchanged.
func (s *Service) UpdateItem(ctx context.Context, itemID, callerID primitive.ObjectID, f Fields) (models.Item, error) {
	it, err := s.GetItem(ctx, itemID)
	if err != nil {
		return models.Item{}, err
	}

	clean, catID, err := s.cleanFields(f)
	if err != nil {
		return models.Item{}, err
	}

	it.Name = clean.Name
	it.Description = clean.Description
	it.ImageURL = clean.ImageURL
	it.CategoryID = catID
	it.LastUpdate = nextUpdateMillis(it.LastUpdate)

	if err := s.Items.Update(ctx, itemID, *it); err != nil {
		if errors.Is(err, itemstore.ErrNotFound) {
			return models.Item{}, ErrNotFound
		}
		return models.Item{}, err
	}

	s.Log.Info("item updated",
		zap.String("item_id", itemID.Hex()),
		zap.String("caller_id", callerID.Hex()))
	return *it, nil
}

// DeleteItem removes the item permanently. callerID has already passed the
// ownership gate.
func (s *Service) DeleteItem(ctx context.Context, itemID, callerID primitive.ObjectID) error {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return err
	}

	if err := s.Items.Delete(ctx, itemID); err != nil {
		if errors.Is(err, itemstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.Log.Info("item deleted",
		zap.String("item_id", itemID.Hex()),
		zap.String("caller_id", callerID.Hex()))
	return nil
}

// cleanFields sanitizes every free-text field and validates the result.
func (s *Service) cleanFields(f Fields) (Fields, primitive.ObjectID, error) {
	clean := Fields{
		Name:        htmlsanitize.Strip(f.Name),
		Description: htmlsanitize.Strip(f.Description),
		ImageURL:    htmlsanitize.Strip(f.ImageURL),
		CategoryID:  htmlsanitize.Strip(f.CategoryID),
	}

	if clean.Name == "" {
		return Fields{}, primitive.NilObjectID, ErrEmptyName
	}

	catID, err := primitive.ObjectIDFromHex(clean.CategoryID)
	if err != nil {
		return Fields{}, primitive.NilObjectID, ErrInvalidCategory
	}

	return clean, catID, nil
}

// nextUpdateMillis returns the refreshed LastUpdate for an item currently
// stamped prev. The value never decreases, even across a wall-clock step
// backwards.
func nextUpdateMillis(prev int64) int64 {
	now := time.Now().UnixMilli()
	if now <= prev {
		return prev + 1
	}
	return now
}
