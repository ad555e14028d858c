package paapi

// SearchItemsRequest is the payload for the SearchItems operation. Field
// names follow the PA-API wire format.
type SearchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex,omitempty"`
	ItemCount   int      `json:"ItemCount,omitempty"`
	Resources   []string `json:"Resources,omitempty"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
}
