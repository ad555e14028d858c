package models

// NormalizedListing is the record shape every feed adapter produces,
// regardless of source format. Raw vendor payloads never travel past the
// adapter boundary.
type NormalizedListing struct {
	RetailerID int
	ExternalID string
	Name       string
	CapacityGB *int
	SpeedMHz   *int
	DDRType    *string
	FormFactor *string
	ProductURL string
	ImageURL   *string
	PriceCents int
	Currency   string
}

// RAMListing is one current listing row as served to the storefront.
type RAMListing struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	CapacityGB     *int    `json:"capacityGb"`
	SpeedMHz       *int    `json:"speedMhz"`
	DDRType        *string `json:"ddrType"`
	FormFactor     *string `json:"formFactor"`
	ProductURL     string  `json:"productUrl"`
	ImageURL       *string `json:"imageUrl"`
	PriceCents     int     `json:"priceCents"`
	Currency       string  `json:"currency"`
	RetailerName   string  `json:"retailerName"`
	RetailerDomain string  `json:"retailerDomain"`
	CouponCode     *string `json:"couponCode"`
}

// FiltersData describes the filter options the front end can offer.
type FiltersData struct {
	Capacities  []int            `json:"capacities"`
	Retailers   []RetailerOption `json:"retailers"`
	DDRTypes    []string         `json:"ddrTypes"`
	FormFactors []string         `json:"formFactors"`
}

// CapacityBest is the cheapest current listing for one capacity.
type CapacityBest struct {
	Capacity   int    `json:"capacity"`
	PriceCents int    `json:"priceCents"`
	Name       string `json:"name"`
	ID         int    `json:"id"`
}

// SourceResult summarizes one feed adapter's run within a refresh cycle.
type SourceResult struct {
	Source   string `json:"source"`
	Listings int    `json:"listings"`
	Error    string `json:"error,omitempty"`
}
