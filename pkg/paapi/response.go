package paapi

// SearchItemsResponse is the top-level SearchItems reply.
type SearchItemsResponse struct {
	SearchResult SearchResult `json:"SearchResult"`
	Errors       []APIError   `json:"Errors,omitempty"`
}

// APIError is one entry of the PA-API Errors array.
type APIError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// SearchResult holds the matched items.
type SearchResult struct {
	TotalResultCount int    `json:"TotalResultCount"`
	Items            []Item `json:"Items"`
}

// Item is one product in a search result. Nested objects are pointers since
// PA-API omits whole subtrees when a resource was not requested or has no
// data.
type Item struct {
	ASIN          string    `json:"ASIN"`
	DetailPageURL string    `json:"DetailPageURL"`
	ItemInfo      *ItemInfo `json:"ItemInfo,omitempty"`
	Offers        *Offers   `json:"Offers,omitempty"`
	Images        *Images   `json:"Images,omitempty"`
}

// ItemInfo carries descriptive attributes.
type ItemInfo struct {
	Title *DisplayValue `json:"Title,omitempty"`
}

// DisplayValue is PA-API's wrapper for a display string.
type DisplayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

// Offers carries the offer listings.
type Offers struct {
	Listings []OfferListing `json:"Listings,omitempty"`
}

// OfferListing is one offer with its price.
type OfferListing struct {
	Price *OfferPrice `json:"Price,omitempty"`
}

// OfferPrice is the price of an offer listing.
type OfferPrice struct {
	Amount        float64 `json:"Amount"`
	Currency      string  `json:"Currency"`
	DisplayAmount string  `json:"DisplayAmount"`
}

// Images carries the image variants.
type Images struct {
	Primary *ImageSet `json:"Primary,omitempty"`
}

// ImageSet groups the size variants of one image.
type ImageSet struct {
	Medium *ImageDetail `json:"Medium,omitempty"`
}

// ImageDetail is one image variant.
type ImageDetail struct {
	URL    string `json:"URL"`
	Height int    `json:"Height"`
	Width  int    `json:"Width"`
}

// Title returns the item's display title, or empty when absent.
func (i Item) Title() string {
	if i.ItemInfo == nil || i.ItemInfo.Title == nil {
		return ""
	}
	return i.ItemInfo.Title.DisplayValue
}

// PriceDisplay returns the first offer's display amount, or empty when the
// item carries no offer.
func (i Item) PriceDisplay() string {
	if i.Offers == nil || len(i.Offers.Listings) == 0 || i.Offers.Listings[0].Price == nil {
		return ""
	}
	return i.Offers.Listings[0].Price.DisplayAmount
}

// ImageURL returns the primary medium image URL, or empty when absent.
func (i Item) ImageURL() string {
	if i.Images == nil || i.Images.Primary == nil || i.Images.Primary.Medium == nil {
		return ""
	}
	return i.Images.Primary.Medium.URL
}
