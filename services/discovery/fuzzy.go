package discovery

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// NameMatchThreshold is the partial-ratio score a name term must exceed.
const NameMatchThreshold = 60

// PartialRatio scores 0-100 how well the shorter string aligns inside the longer
// one, case-insensitively. Exact inclusion scores 100.
func PartialRatio(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	if strings.Contains(string(long), string(short)) {
		return 100
	}

	needle := string(short)
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		dist := levenshtein.ComputeDistance(needle, string(long[i:i+len(short)]))
		score := int(math.Round(100 * (1 - float64(dist)/float64(len(short)))))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}
