package feeds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheapram/cheapram-api/pkg/paapi"
)

func amazonItem(asin, title, price, url string) paapi.Item {
	return paapi.Item{
		ASIN:          asin,
		DetailPageURL: url,
		ItemInfo:      &paapi.ItemInfo{Title: &paapi.DisplayValue{DisplayValue: title}},
		Offers: &paapi.Offers{Listings: []paapi.OfferListing{
			{Price: &paapi.OfferPrice{DisplayAmount: price}},
		}},
	}
}

func TestAmazonFetchNormalizesAndDedupes(t *testing.T) {
	// Every search returns the same two items plus one non-RAM product, so the
	// aggregate exercises both the keyword filter and ASIN dedupe.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(paapi.SearchItemsResponse{
			SearchResult: paapi.SearchResult{Items: []paapi.Item{
				amazonItem("B0AAA11111", "Corsair Vengeance 32GB DDR5 5600MHz", "$89.99", "https://www.amazon.com/dp/B0AAA11111?tag=cheapram-20"),
				amazonItem("B0BBB22222", "Kingston FURY 16GB DDR4 SODIMM", "$45.00", "https://www.amazon.com/dp/B0BBB22222"),
				amazonItem("B0CCC33333", "Logitech MX Master 3S Mouse", "$99.99", "https://www.amazon.com/dp/B0CCC33333"),
			}},
		})
	}))
	defer server.Close()

	client := paapi.NewClient(paapi.Config{
		AccessKey:  "AKIAEXAMPLE",
		SecretKey:  "secret",
		PartnerTag: "cheapram-20",
		Endpoint:   server.URL,
	})
	src := NewAmazonSource(9, client, "cheapram-20")
	assert.Equal(t, "amazon", src.Name())

	listings, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, 9, first.RetailerID)
	assert.Equal(t, "B0AAA11111", first.ExternalID)
	assert.Equal(t, 8999, first.PriceCents)
	assert.Equal(t, "https://www.amazon.com/dp/B0AAA11111?tag=cheapram-20", first.ProductURL)
	require.NotNil(t, first.CapacityGB)
	assert.Equal(t, 32, *first.CapacityGB)

	// Detail URL without a tag is rewritten to a tagged /dp link.
	second := listings[1]
	assert.Equal(t, "https://www.amazon.com/dp/B0BBB22222?tag=cheapram-20", second.ProductURL)
	require.NotNil(t, second.FormFactor)
	assert.Equal(t, "SODIMM", *second.FormFactor)
}

func TestAmazonFetchSearchErrorAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(paapi.SearchItemsResponse{
			Errors: []paapi.APIError{{Code: "AccessDenied", Message: "bad credentials"}},
		})
	}))
	defer server.Close()

	client := paapi.NewClient(paapi.Config{
		AccessKey:  "AKIAEXAMPLE",
		SecretKey:  "secret",
		PartnerTag: "cheapram-20",
		Endpoint:   server.URL,
	})
	src := NewAmazonSource(9, client, "cheapram-20")

	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestAmazonFetchSkipsItemsWithoutPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(paapi.SearchItemsResponse{
			SearchResult: paapi.SearchResult{Items: []paapi.Item{
				{
					ASIN:     "B0DDD44444",
					ItemInfo: &paapi.ItemInfo{Title: &paapi.DisplayValue{DisplayValue: "Crucial 8GB DDR4 RAM"}},
				},
			}},
		})
	}))
	defer server.Close()

	client := paapi.NewClient(paapi.Config{
		AccessKey:  "AKIAEXAMPLE",
		SecretKey:  "secret",
		PartnerTag: "cheapram-20",
		Endpoint:   server.URL,
	})
	src := NewAmazonSource(9, client, "cheapram-20")

	listings, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listings)
}
