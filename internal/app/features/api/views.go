// internal/app/features/api/views.go
package api

import "github.com/dalemusser/shelfhub/internal/domain/models"

// ItemView is the wire shape of one catalog item. The sanitizer has already
// run on every text field at write time, so values are emitted as stored.
type ItemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	CategoryID  string `json:"category_id"`
	OwnerID     string `json:"owner_id"`
	LastUpdate  int64  `json:"last_update"`
}

// CategoryView is the wire shape of one category.
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// itemsEnvelope wraps item collections the way clients expect them.
type itemsEnvelope struct {
	Items []ItemView `json:"Items"`
}

func NewItemView(it models.Item) ItemView {
	return ItemView{
		ID:          it.ID.Hex(),
		Name:        it.Name,
		Description: it.Description,
		ImageURL:    it.ImageURL,
		CategoryID:  it.CategoryID.Hex(),
		OwnerID:     it.OwnerID.Hex(),
		LastUpdate:  it.LastUpdate,
	}
}

// NewItemViews never returns nil, so empty collections encode as [] rather
// than null.
func NewItemViews(items []models.Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, NewItemView(it))
	}
	return views
}

func NewCategoryView(c models.Category) CategoryView {
	return CategoryView{ID: c.ID.Hex(), Name: c.Name}
}

func NewCategoryViews(cats []models.Category) []CategoryView {
	views := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, NewCategoryView(c))
	}
	return views
}
