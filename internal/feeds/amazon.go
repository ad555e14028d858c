package feeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/cheapram/cheapram-api/internal/models"
	"github.com/cheapram/cheapram-api/pkg/paapi"
)

// amazonSearches are the fixed search phrases queried each refresh cycle.
var amazonSearches = []string{"DDR5 RAM", "DDR4 RAM", "computer memory 32GB"}

// amazonResources are the PA-API resources needed to build a listing.
var amazonResources = []string{
	"Images.Primary.Medium",
	"ItemInfo.Title",
	"Offers.Listings.Price",
}

// AmazonSource queries the Product Advertising API for a fixed set of RAM
// search phrases and normalizes the results. Aggregated results are deduped
// by ASIN, first occurrence wins.
type AmazonSource struct {
	retailerID int
	client     *paapi.Client
	tag        string
}

// NewAmazonSource constructs an AmazonSource using the given PA-API client
// and partner tag.
func NewAmazonSource(retailerID int, client *paapi.Client, tag string) *AmazonSource {
	return &AmazonSource{retailerID: retailerID, client: client, tag: tag}
}

// Name implements Source.
func (s *AmazonSource) Name() string { return "amazon" }

// Fetch implements Source. A failing search query aborts this source's run;
// the caller logs it and moves on to the next source.
func (s *AmazonSource) Fetch(ctx context.Context) ([]models.NormalizedListing, error) {
	var all []models.NormalizedListing
	for _, keywords := range amazonSearches {
		result, err := s.client.SearchItems(ctx, paapi.SearchItemsRequest{
			Keywords:    keywords,
			SearchIndex: "Computers",
			ItemCount:   10,
			Resources:   amazonResources,
		})
		if err != nil {
			return nil, fmt.Errorf("search %q failed: %w", keywords, err)
		}

		for _, item := range result.Items {
			title := item.Title()
			if item.ASIN == "" || title == "" || !isRAMRow(title, "") {
				continue
			}

			priceCents, ok := parsePriceToCents(item.PriceDisplay())
			if !ok {
				continue
			}

			// The detail URL usually carries the tag already; fall back to a
			// tagged /dp link when it does not.
			productURL := item.DetailPageURL
			if !strings.Contains(productURL, "tag=") {
				productURL = fmt.Sprintf("https://www.amazon.com/dp/%s?tag=%s", item.ASIN, s.tag)
			}

			var imageURL *string
			if img := item.ImageURL(); img != "" {
				imageURL = strPtr(img)
			}

			attrs := ParseTitle(title)
			all = append(all, models.NormalizedListing{
				RetailerID: s.retailerID,
				ExternalID: item.ASIN,
				Name:       truncateName(title),
				CapacityGB: attrs.CapacityGB,
				SpeedMHz:   attrs.SpeedMHz,
				DDRType:    attrs.DDRType,
				FormFactor: attrs.FormFactor,
				ProductURL: productURL,
				ImageURL:   imageURL,
				PriceCents: priceCents,
				Currency:   "USD",
			})
		}
	}
	return dedupeListings(all), nil
}
