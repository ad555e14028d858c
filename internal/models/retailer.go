package models

// Retailer is an affiliate source site. A row is created on first sighting of
// a domain and never deleted; name and affiliate param keep their first
// observed values even if later feed runs supply different ones.
type Retailer struct {
	ID             int     `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Domain         string  `db:"domain" json:"domain"`
	AffiliateParam *string `db:"affiliate_param" json:"affiliateParam,omitempty"`
	Active         bool    `db:"active" json:"active"`
}

// RetailerOption is the compact id/name shape used by the filters endpoint.
type RetailerOption struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
