package feeds

import (
	"context"

	"github.com/cheapram/cheapram-api/internal/models"
)

// MockSource returns a fixed set of sample listings so the storefront has
// non-empty data in development and demos. It runs only when no real feed
// credentials are configured.
type MockSource struct {
	retailerID int
}

// NewMockSource constructs a MockSource owned by the given retailer.
func NewMockSource(retailerID int) *MockSource {
	return &MockSource{retailerID: retailerID}
}

// Name implements Source.
func (s *MockSource) Name() string { return "mock" }

// Fetch implements Source with five hardcoded listings.
func (s *MockSource) Fetch(_ context.Context) ([]models.NormalizedListing, error) {
	return []models.NormalizedListing{
		{
			RetailerID: s.retailerID,
			ExternalID: "mock-1",
			Name:       "Corsair Vengeance 32GB (2x16GB) DDR5 5600MHz",
			CapacityGB: intPtr(32),
			SpeedMHz:   intPtr(5600),
			DDRType:    strPtr(models.DDRTypeDDR5),
			FormFactor: strPtr(models.FormFactorDIMM),
			ProductURL: "https://example.com/ram/1",
			PriceCents: 8999,
			Currency:   "USD",
		},
		{
			RetailerID: s.retailerID,
			ExternalID: "mock-2",
			Name:       "G.Skill Trident Z5 16GB DDR5 6000MHz",
			CapacityGB: intPtr(16),
			SpeedMHz:   intPtr(6000),
			DDRType:    strPtr(models.DDRTypeDDR5),
			FormFactor: strPtr(models.FormFactorDIMM),
			ProductURL: "https://example.com/ram/2",
			PriceCents: 6499,
			Currency:   "USD",
		},
		{
			RetailerID: s.retailerID,
			ExternalID: "mock-3",
			Name:       "Crucial Pro 32GB DDR4 3200MHz",
			CapacityGB: intPtr(32),
			SpeedMHz:   intPtr(3200),
			DDRType:    strPtr(models.DDRTypeDDR4),
			FormFactor: strPtr(models.FormFactorDIMM),
			ProductURL: "https://example.com/ram/3",
			PriceCents: 5499,
			Currency:   "USD",
		},
		{
			RetailerID: s.retailerID,
			ExternalID: "mock-4",
			Name:       "Kingston FURY Beast 64GB (2x32GB) DDR5 5200MHz",
			CapacityGB: intPtr(64),
			SpeedMHz:   intPtr(5200),
			DDRType:    strPtr(models.DDRTypeDDR5),
			FormFactor: strPtr(models.FormFactorDIMM),
			ProductURL: "https://example.com/ram/4",
			PriceCents: 17999,
			Currency:   "USD",
		},
		{
			RetailerID: s.retailerID,
			ExternalID: "mock-5",
			Name:       "Teamgroup T-Force Vulcan 16GB DDR4 3200 SODIMM",
			CapacityGB: intPtr(16),
			SpeedMHz:   intPtr(3200),
			DDRType:    strPtr(models.DDRTypeDDR4),
			FormFactor: strPtr(models.FormFactorSODIMM),
			ProductURL: "https://example.com/ram/5",
			PriceCents: 4299,
			Currency:   "USD",
		},
	}, nil
}
