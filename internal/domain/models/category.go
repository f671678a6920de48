// internal/domain/models/category.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a label items are grouped under.
//
// Names are stored as entered; NameCI carries the folded form used for
// case-insensitive ordering. Duplicate names are allowed and consumers
// must tolerate them.
type Category struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
}
