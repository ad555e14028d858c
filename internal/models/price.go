package models

import "time"

// Price is one observation of a product's price. The table is append-only:
// every refresh that sees a product inserts a new row, so the full cost
// history stays reconstructible. The row with the latest RecordedAt is the
// product's current price.
type Price struct {
	ID         int       `db:"id" json:"id"`
	ProductID  int       `db:"product_id" json:"productId"`
	PriceCents int       `db:"price_cents" json:"priceCents"`
	Currency   *string   `db:"currency" json:"currency"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}
