package discovery

import (
	"strings"

	"closetcircle/models"
)

// Normalize turns the entities of the current turn into filter criteria.
// Only the current turn is considered; slots from earlier turns never reach here.
// It returns ErrInsufficientCriteria when nothing usable remains.
func Normalize(entities []models.Entity) (models.FilterCriteria, error) {
	latest := make(map[string]models.EntityValue, len(entities))
	for _, e := range entities {
		switch e.Entity {
		case models.EntityColor, models.EntityItemType, models.EntityItemName:
			latest[e.Entity] = e.Value
		}
	}

	var criteria models.FilterCriteria

	if v, ok := latest[models.EntityItemType]; ok {
		if raw := normalizeText(v.First()); raw != "" {
			term := resolveType(raw)
			criteria.ItemType = &term
		}
	}

	if v, ok := latest[models.EntityColor]; ok {
		criteria.Colors = normalizeColors(v.Values)
	}

	if v, ok := latest[models.EntityItemName]; ok {
		if name := normalizeText(v.First()); name != "" {
			criteria.Name = &name
		}
	}

	if criteria.IsEmpty() {
		return models.FilterCriteria{}, ErrInsufficientCriteria
	}
	return criteria, nil
}

// normalizeColors maps colour names to codes, silently dropping unknown names.
// An empty result is nil ("any colour").
func normalizeColors(values []string) []int {
	var codes []int
	seen := make(map[int]bool)
	for _, v := range values {
		code, ok := colorCode(normalizeText(v))
		if !ok || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}
	return codes
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
