// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Problems are aggregated so any failure is visible and startup can fail fast.

The unique index on users.email is what makes the login flow's
get-or-create idempotent under concurrency. Categories have no uniqueness
constraint; duplicate names are allowed.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCategories(ctx, db); err != nil {
		problems = append(problems, "categories: "+err.Error())
	}
	if err := ensureItems(ctx, db); err != nil {
		problems = append(problems, "items: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_users_email"),
		},
	})
	return err
}

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("categories").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_categories_name_ci"),
		},
	})
	return err
}

func ensureItems(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("items").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Per-category listings sort by folded name.
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_items_category_name"),
		},
		// Index page reads the newest items.
		{
			Keys:    bson.D{{Key: "last_update", Value: -1}},
			Options: options.Index().SetName("idx_items_last_update"),
		},
		// All-items JSON sorts by folded name.
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_items_name_ci"),
		},
		// Seed-run cleanup; sparse because app-created rows carry no tag.
		{
			Keys:    bson.D{{Key: "seed_run", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_items_seed_run"),
		},
	})
	return err
}
