package models

import "time"

// Memory generation tags. A product either carries one of these or none at
// all when the title gives no hint.
const (
	DDRTypeDDR4 = "DDR4"
	DDRTypeDDR5 = "DDR5"
)

// Form factor tags. Titles without a form-factor keyword default to DIMM.
const (
	FormFactorDIMM   = "DIMM"
	FormFactorSODIMM = "SODIMM"
)

// DDRTypes and FormFactors are the fixed closed sets exposed by the filters
// endpoint.
var (
	DDRTypes    = []string{DDRTypeDDR4, DDRTypeDDR5}
	FormFactors = []string{FormFactorDIMM, FormFactorSODIMM}
)

// Product is one catalog row owned by a retailer. The (RetailerID,
// ExternalID) pair is unique; descriptive fields are overwritten in place
// each time the product is re-observed in a feed.
type Product struct {
	ID         int        `db:"id" json:"id"`
	RetailerID int        `db:"retailer_id" json:"retailerId"`
	ExternalID string     `db:"external_id" json:"externalId"`
	Name       string     `db:"name" json:"name"`
	CapacityGB *int       `db:"capacity_gb" json:"capacityGb"`
	SpeedMHz   *int       `db:"speed_mhz" json:"speedMhz"`
	DDRType    *string    `db:"ddr_type" json:"ddrType"`
	FormFactor *string    `db:"form_factor" json:"formFactor"`
	ProductURL string     `db:"product_url" json:"productUrl"`
	ImageURL   *string    `db:"image_url" json:"imageUrl"`
	LastSeenAt *time.Time `db:"last_seen_at" json:"lastSeenAt"`
}
