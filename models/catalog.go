package models

// Lister is the public view of the member who posted an item.
type Lister struct {
	Display   string `json:"display" bson:"display"`
	Username  string `json:"username" bson:"username"`
	AvatarURL string `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
}

// CatalogItem is a postable item as returned by the commerce backend.
// The engine never mutates it; every search and every "next" refetches.
type CatalogItem struct {
	ID          string   `json:"id" bson:"id"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Price       float64  `json:"price" bson:"price"`
	Images      []string `json:"images" bson:"images"`
	Categories  []int    `json:"categories" bson:"categories"`
	OwnerID     string   `json:"ownerId" bson:"ownerId"`
	Lister      Lister   `json:"lister" bson:"lister"`
}

// FirstImage returns the first image reference or "" when the item has none.
func (c CatalogItem) FirstImage() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0]
}

// HasCategory reports whether the item carries the given category code.
func (c CatalogItem) HasCategory(code int) bool {
	for _, cat := range c.Categories {
		if cat == code {
			return true
		}
	}
	return false
}
