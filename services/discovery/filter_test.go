package discovery

import (
	"testing"

	"closetcircle/models"

	"github.com/stretchr/testify/assert"
)

func item(id, title, description string, price float64, categories ...int) models.CatalogItem {
	return models.CatalogItem{
		ID:          id,
		Title:       title,
		Description: description,
		Price:       price,
		Images:      []string{"https://img.example/" + id + ".jpg"},
		Categories:  categories,
	}
}

func strPtr(s string) *string { return &s }

func ids(items []models.CatalogItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func testCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		item("1", "Red Running Shoes", "lightweight trainers", 40, ColorRed),
		item("2", "Black Sundress", "summer cotton dress", 25, ColorBlack, 3),
		item("3", "Red Evening Dress", "silk gown", 60, ColorRed),
		item("4", "Green Denim Jacket", "vintage", 35, ColorGreen),
		item("5", "Nike Air Max", "", 90, ColorWhite),
		item("6", "Plain Top", "black and white stripes", 12, ColorBlack, ColorWhite),
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "exact inclusion", a: "dress", b: "Black Sundress", want: 100},
		{name: "case insensitive", a: "GUCCI", b: "gucci bag", want: 100},
		{name: "argument order", a: "gucci bag", b: "Gucci", want: 100},
		{name: "one edit in window", a: "levis", b: "Levi's 501 jeans", want: 80},
		{name: "unrelated", a: "zzzz", b: "red dress", want: 0},
		{name: "empty", a: "", b: "red dress", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PartialRatio(tt.a, tt.b))
		})
	}
}

func TestFilterCandidates(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		want     []string
	}{
		{
			name:     "type synonym via sneakers",
			criteria: models.FilterCriteria{ItemType: strPtr(resolveType("sneakers"))},
			want:     []string{"1"},
		},
		{
			name:     "type canonical shoes",
			criteria: models.FilterCriteria{ItemType: strPtr("shoes")},
			want:     []string{"1"},
		},
		{
			name:     "literal type keeps catalog order",
			criteria: models.FilterCriteria{ItemType: strPtr("red")},
			want:     []string{"1", "3"},
		},
		{
			name:     "colour intersection",
			criteria: models.FilterCriteria{Colors: []int{ColorBlack, ColorGreen}},
			want:     []string{"2", "4", "6"},
		},
		{
			name:     "black dress only",
			criteria: models.FilterCriteria{ItemType: strPtr("dress"), Colors: []int{ColorBlack}},
			want:     []string{"2"},
		},
		{
			name:     "name substring in description",
			criteria: models.FilterCriteria{Name: strPtr("stripes")},
			want:     []string{"6"},
		},
		{
			name:     "name fuzzy on title",
			criteria: models.FilterCriteria{Name: strPtr("nikee")},
			want:     []string{"5"},
		},
		{
			name:     "no match",
			criteria: models.FilterCriteria{ItemType: strPtr("skirt")},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterCandidates(catalog, tt.criteria)))
		})
	}
}

func TestFilterColourIsExactIntersection(t *testing.T) {
	catalog := []models.CatalogItem{item("a", "Shirt", "", 1, ColorBlack, ColorGreen)}

	assert.Len(t, FilterCandidates(catalog, models.FilterCriteria{Colors: []int{ColorGreen}}), 1)
	assert.Empty(t, FilterCandidates(catalog, models.FilterCriteria{Colors: []int{ColorWhite}}))
}

func TestFilterNameThreshold(t *testing.T) {
	catalog := []models.CatalogItem{
		item("a", "abxye", "", 1),
		item("b", "abcxe", "", 1),
	}

	// "abxye" scores exactly 60 and must be rejected; "abcxe" scores 80.
	got := FilterCandidates(catalog, models.FilterCriteria{Name: strPtr("abcde")})
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestFilterIsSubsequence(t *testing.T) {
	catalog := testCatalog()
	got := FilterCandidates(catalog, models.FilterCriteria{Colors: []int{ColorRed, ColorWhite}})

	pos := 0
	for _, m := range got {
		for pos < len(catalog) && catalog[pos].ID != m.ID {
			pos++
		}
		assert.Less(t, pos, len(catalog), "item %s out of catalog order", m.ID)
		pos++
	}
}
