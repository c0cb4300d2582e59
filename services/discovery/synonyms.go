package discovery

import "strconv"

type typeCluster struct {
	key      string
	synonyms []string
}

// typeClusters is ordered: a term resolves to the first cluster that has it as
// key or synonym, so "jeans" widens to the whole "pants" cluster.
var typeClusters = []typeCluster{
	{"shoes", []string{"shoes", "sneakers", "boots", "heels", "sandals", "loafers", "cleats", "footwear", "pumps"}},
	{"shirt", []string{"shirt", "top", "tee", "t-shirt", "blouse", "button up"}},
	{"pants", []string{"pants", "trousers", "slacks", "chinos", "leggings", "jeans"}},
	{"jacket", []string{"jacket", "blazer", "coat", "cardigan", "sweater", "hoodie", "puffer"}},
	{"dress", []string{"dress", "gown", "frock", "sundress"}},
	{"skirt", []string{"skirt", "miniskirt"}},
	{"shorts", []string{"shorts"}},
	{"jeans", []string{"jeans", "denim"}},
}

// Reserved colour category codes.
const (
	ColorBlack = 10
	ColorWhite = 11
	ColorRed   = 12
	ColorBlue  = 13
	ColorGreen = 14
	ColorPink  = 15
)

var colorCodes = map[string]int{
	"black": ColorBlack,
	"white": ColorWhite,
	"red":   ColorRed,
	"blue":  ColorBlue,
	"green": ColorGreen,
	"pink":  ColorPink,
}

func isColorCode(code int) bool {
	return code >= ColorBlack && code <= ColorPink
}

// resolveType returns the canonical cluster key for a lower-cased term,
// or the term itself when no cluster knows it.
func resolveType(term string) string {
	for _, c := range typeClusters {
		if c.key == term {
			return c.key
		}
		for _, s := range c.synonyms {
			if s == term {
				return c.key
			}
		}
	}
	return term
}

// SearchTerms expands a canonical type term into the substrings a title may contain.
func SearchTerms(itemType string) []string {
	for _, c := range typeClusters {
		if c.key == itemType {
			return c.synonyms
		}
	}
	return []string{itemType}
}

// colorCode maps a colour name, or a reserved code written as digits, to its code.
func colorCode(value string) (int, bool) {
	if code, ok := colorCodes[value]; ok {
		return code, true
	}
	if n, err := strconv.Atoi(value); err == nil && isColorCode(n) {
		return n, true
	}
	return 0, false
}

// IsTypeTerm reports whether term is a cluster key or one of its synonyms.
func IsTypeTerm(term string) bool {
	for _, c := range typeClusters {
		for _, s := range c.synonyms {
			if s == term {
				return true
			}
		}
	}
	return false
}

// IsColorName reports whether name maps to a reserved colour code.
func IsColorName(name string) bool {
	_, ok := colorCodes[name]
	return ok
}
