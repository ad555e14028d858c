package feeds

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// parsePriceToCents cleans a display price ("$49.99", "1,299.00 ") and
// returns it in integer cents. Negative or unparseable values are rejected;
// the caller skips the row.
func parsePriceToCents(raw string) (int, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '$' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || f < 0 {
		return 0, false
	}
	return int(math.Round(f * 100)), true
}
