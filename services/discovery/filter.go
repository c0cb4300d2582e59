package discovery

import (
	"strings"

	"closetcircle/models"
)

// FilterCandidates returns the items matching every set criterion, in catalog order.
func FilterCandidates(items []models.CatalogItem, criteria models.FilterCriteria) []models.CatalogItem {
	var typeTerms []string
	if criteria.ItemType != nil {
		typeTerms = SearchTerms(*criteria.ItemType)
	}

	matches := make([]models.CatalogItem, 0)
	for _, item := range items {
		title := strings.ToLower(item.Title)
		if criteria.ItemType != nil && !matchesType(title, typeTerms) {
			continue
		}
		if criteria.Colors != nil && !matchesColor(item, criteria.Colors) {
			continue
		}
		if criteria.Name != nil && !matchesName(title, strings.ToLower(item.Description), *criteria.Name) {
			continue
		}
		matches = append(matches, item)
	}
	return matches
}

func matchesType(title string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(title, term) {
			return true
		}
	}
	return false
}

func matchesColor(item models.CatalogItem, colors []int) bool {
	for _, code := range colors {
		if item.HasCategory(code) {
			return true
		}
	}
	return false
}

func matchesName(title, description, name string) bool {
	name = strings.ToLower(name)
	if strings.Contains(title, name) || strings.Contains(description, name) {
		return true
	}
	return PartialRatio(name, title) > NameMatchThreshold ||
		PartialRatio(name, description) > NameMatchThreshold
}
