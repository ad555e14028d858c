package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/models"
)

// NeweggSource fetches the Newegg affiliate product feed. The feed URL from
// the affiliate dashboard serves either CSV or XML; the payload is sniffed
// and routed to the matching parser. Product URLs in the feed already carry
// the affiliate id.
type NeweggSource struct {
	retailerID int
	feedURL    string
	httpClient *http.Client
}

// NewNeweggSource constructs a NeweggSource with a bounded fetch timeout.
func NewNeweggSource(retailerID int, feedURL string, timeout time.Duration) *NeweggSource {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &NeweggSource{
		retailerID: retailerID,
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name implements Source.
func (s *NeweggSource) Name() string { return "newegg" }

// Fetch downloads the feed and parses it. A timed-out or non-success fetch is
// fatal for this source's run; the caller logs it and moves on to the next
// source.
func (s *NeweggSource) Fetch(ctx context.Context) ([]models.NormalizedListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/xml, text/xml, */*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	text := string(body)
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "xml") || strings.HasPrefix(strings.TrimSpace(text), "<") {
		return s.parseXML(text), nil
	}
	return s.parseCSV(text), nil
}

// parseCSV parses the CSV flavor of the feed. Column roles are inferred from
// the header row by fuzzy name matching; when the title, URL, or price column
// cannot be resolved the whole parse yields nothing. Individual bad rows are
// skipped.
func (s *NeweggSource) parseCSV(text string) []models.NormalizedListing {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimRight(l, "\r"))
		}
	}
	if len(lines) < 2 {
		return nil
	}

	headers := splitFeedLine(lines[0])
	titleIdx := findColumn(headers, "title", "productname", "name", "product name")
	urlIdx := findColumn(headers, "url", "producturl", "link", "product url")
	priceIdx := findColumn(headers, "price", "currentprice", "sale price")
	imageIdx := findColumn(headers, "image", "imageurl", "image url", "thumbnail")
	idIdx := findColumn(headers, "sku", "id", "productid", "item id")
	categoryIdx := findColumn(headers, "category", "producttype", "categorypath")

	if titleIdx < 0 || urlIdx < 0 || priceIdx < 0 {
		log.Warn().Str("source", s.Name()).Msg("feed is missing title, url, or price columns")
		return nil
	}

	var listings []models.NormalizedListing
	for i := 1; i < len(lines); i++ {
		row := splitFeedLine(lines[i])
		title := cell(row, titleIdx)
		url := strings.TrimSpace(cell(row, urlIdx))
		category := cell(row, categoryIdx)

		if url == "" || title == "" {
			continue
		}
		if !isRAMRow(title, category) {
			continue
		}

		priceCents, ok := parsePriceToCents(cell(row, priceIdx))
		if !ok {
			continue
		}

		externalID := strings.TrimSpace(cell(row, idIdx))
		if externalID == "" {
			externalID = fmt.Sprintf("newegg-%d-%s", i, urlSuffix(url, 20))
		}

		listings = append(listings, s.normalize(title, url, cell(row, imageIdx), externalID, priceCents))
	}
	return listings
}

var (
	itemBlockRe = regexp.MustCompile(`(?is)<item[^>]*>(.*?)</item>|<product[^>]*>(.*?)</product>`)
	markupRe    = regexp.MustCompile(`<[^>]+>`)
	nonWordRe   = regexp.MustCompile(`\W`)
)

// parseXML scans for <item> or <product> blocks by pattern matching rather
// than a real XML parser. Affiliate feeds are routinely truncated or
// malformed mid-document; unparseable blocks are skipped, the rest of the
// feed still yields listings.
func (s *NeweggSource) parseXML(text string) []models.NormalizedListing {
	var listings []models.NormalizedListing
	for _, m := range itemBlockRe.FindAllStringSubmatch(text, -1) {
		block := m[1]
		if block == "" {
			block = m[2]
		}

		title := firstTag(block, "title", "name")
		url := firstTag(block, "link", "url")
		category := firstTag(block, "category")

		if url == "" || title == "" {
			continue
		}
		if !isRAMRow(title, category) {
			continue
		}

		priceCents, ok := parsePriceToCents(firstTag(block, "price", "currentprice"))
		if !ok {
			continue
		}

		externalID := firstTag(block, "sku", "id", "asin")
		if externalID == "" {
			externalID = fmt.Sprintf("newegg-xml-%d-%s", len(listings), urlSuffix(url, 15))
		}

		listings = append(listings, s.normalize(title, url, firstTag(block, "image", "imageurl"), externalID, priceCents))
	}
	return listings
}

// normalize builds the listing record shared by both parse paths.
func (s *NeweggSource) normalize(title, url, image, externalID string, priceCents int) models.NormalizedListing {
	attrs := ParseTitle(title)
	var imageURL *string
	if img := strings.TrimSpace(image); img != "" {
		imageURL = strPtr(img)
	}
	return models.NormalizedListing{
		RetailerID: s.retailerID,
		ExternalID: externalID,
		Name:       truncateName(title),
		CapacityGB: attrs.CapacityGB,
		SpeedMHz:   attrs.SpeedMHz,
		DDRType:    attrs.DDRType,
		FormFactor: attrs.FormFactor,
		ProductURL: url,
		ImageURL:   imageURL,
		PriceCents: priceCents,
		Currency:   "USD",
	}
}

// firstTag extracts the first matching child tag's text, stripping any
// nested markup.
func firstTag(block string, tags ...string) string {
	for _, tag := range tags {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>(.*?)</` + tag + `>`)
		if m := re.FindStringSubmatch(block); m != nil {
			return strings.TrimSpace(markupRe.ReplaceAllString(m[1], ""))
		}
	}
	return ""
}

// urlSuffix keeps the last n characters of a URL with non-word characters
// removed, used for synthetic external ids.
func urlSuffix(url string, n int) string {
	if len(url) > n {
		url = url[len(url)-n:]
	}
	return nonWordRe.ReplaceAllString(url, "")
}
