package paapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint string) *Client {
	return NewClient(Config{
		AccessKey:  "AKIAEXAMPLE",
		SecretKey:  "secret",
		PartnerTag: "cheapram-20",
		Endpoint:   endpoint,
	})
}

func TestSearchItemsSignsAndFillsPartner(t *testing.T) {
	var gotReq SearchItemsRequest
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(SearchItemsResponse{
			SearchResult: SearchResult{
				Items: []Item{{ASIN: "B0TEST1234", DetailPageURL: "https://www.amazon.com/dp/B0TEST1234?tag=cheapram-20"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.SearchItems(context.Background(), SearchItemsRequest{
		Keywords:    "DDR5 RAM",
		SearchIndex: "Computers",
		ItemCount:   10,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "B0TEST1234", result.Items[0].ASIN)

	assert.Equal(t, "cheapram-20", gotReq.PartnerTag)
	assert.Equal(t, "Associates", gotReq.PartnerType)
	assert.Equal(t, "DDR5 RAM", gotReq.Keywords)

	assert.Contains(t, gotHeaders.Get("Authorization"), "AWS4-HMAC-SHA256")
	assert.Equal(t, "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems", gotHeaders.Get("X-Amz-Target"))
	assert.Equal(t, "amz-1.0", gotHeaders.Get("Content-Encoding"))
}

func TestSearchItemsSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(SearchItemsResponse{
			Errors: []APIError{{Code: "TooManyRequests", Message: "slow down"}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SearchItems(context.Background(), SearchItemsRequest{Keywords: "DDR4 RAM"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TooManyRequests")
	assert.Contains(t, err.Error(), "slow down")
}

func TestItemAccessorsNilSafe(t *testing.T) {
	var item Item
	assert.Equal(t, "", item.Title())
	assert.Equal(t, "", item.PriceDisplay())
	assert.Equal(t, "", item.ImageURL())
}
