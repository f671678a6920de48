// internal/domain/models/item.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is a catalog entry owned by the user who created it.
//
// LastUpdate is epoch milliseconds, stamped on every create and update.
// It never decreases across successive updates to the same item.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"image_url" json:"image_url"`
	CategoryID  primitive.ObjectID `bson:"category_id" json:"category_id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	LastUpdate  int64              `bson:"last_update" json:"last_update"`

	// SeedRun tags rows loaded by the CSV seeder so a demo load can be
	// identified and wiped. Empty for rows created through the app.
	SeedRun string `bson:"seed_run,omitempty" json:"-"`
}
