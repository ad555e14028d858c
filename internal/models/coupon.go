package models

import "time"

// Coupon is a manually curated discount code, optionally scoped to a retailer
// or a single product. Coupons are never written by ingestion; the query
// layer consumes them read-only.
type Coupon struct {
	ID          int        `db:"id" json:"id"`
	RetailerID  *int       `db:"retailer_id" json:"retailerId"`
	ProductID   *int       `db:"product_id" json:"productId"`
	Code        string     `db:"code" json:"code"`
	Description *string    `db:"description" json:"description"`
	Expiry      *time.Time `db:"expiry" json:"expiry"`
	SourceURL   *string    `db:"source_url" json:"sourceUrl"`
}
