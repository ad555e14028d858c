// Package feeds contains the feed adapters that turn heterogeneous affiliate
// feed payloads into normalized RAM listings. Affiliate feeds are frequently
// malformed in production, so the adapters are deliberately permissive: bad
// rows are skipped, never the whole batch.
package feeds

import (
	"context"
	"strings"

	"github.com/cheapram/cheapram-api/internal/models"
)

// Source produces normalized listings from one external feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.NormalizedListing, error)
}

// ramKeywords marks a feed row as RAM when any of them appears in the
// title+category text. Reduces false positives from mixed catalog feeds.
var ramKeywords = []string{
	"RAM",
	"MEMORY",
	"DDR4",
	"DDR5",
	"DRAM",
	"SODIMM",
	"DIMM",
	"DESKTOP MEMORY",
	"LAPTOP MEMORY",
}

// isRAMRow reports whether a title/category pair looks like a RAM product.
func isRAMRow(title, category string) bool {
	text := strings.ToUpper(title) + " " + strings.ToUpper(category)
	for _, k := range ramKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// truncateName caps product names at the column limit.
func truncateName(name string) string {
	const maxLen = 500
	if len(name) > maxLen {
		return name[:maxLen]
	}
	return name
}

// dedupeListings drops listings whose external id was already seen, keeping
// the first occurrence in order.
func dedupeListings(listings []models.NormalizedListing) []models.NormalizedListing {
	seen := make(map[string]bool, len(listings))
	out := make([]models.NormalizedListing, 0, len(listings))
	for _, l := range listings {
		if seen[l.ExternalID] {
			continue
		}
		seen[l.ExternalID] = true
		out = append(out, l)
	}
	return out
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
