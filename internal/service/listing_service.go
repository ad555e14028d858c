package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/cheapram/cheapram-api/internal/models"
	"github.com/cheapram/cheapram-api/internal/repository"
)

// ListingFilter narrows the listing result set. Nil fields match everything.
type ListingFilter struct {
	Capacity   *int
	DDRType    *string
	FormFactor *string
	RetailerID *int
	Sort       string // "price" (default) or "newest"
}

// ListingService assembles the storefront listing view from the joined
// product/price rows.
type ListingService struct {
	listings  *repository.ListingRepository
	retailers *repository.RetailerRepository
	products  *repository.ProductRepository
	coupons   *repository.CouponRepository
}

// NewListingService constructs a ListingService.
func NewListingService(
	listings *repository.ListingRepository,
	retailers *repository.RetailerRepository,
	products *repository.ProductRepository,
	coupons *repository.CouponRepository,
) *ListingService {
	return &ListingService{
		listings:  listings,
		retailers: retailers,
		products:  products,
		coupons:   coupons,
	}
}

// GetListings returns the current (latest-price) listing per product,
// filtered and sorted. The join arrives newest observation first, so the
// first row seen per product carries its current price.
func (s *ListingService) GetListings(ctx context.Context, filter ListingFilter) ([]models.RAMListing, error) {
	rows, err := s.latestPerProduct(ctx)
	if err != nil {
		return nil, err
	}

	filtered := rows[:0]
	for _, row := range rows {
		if filter.Capacity != nil && (row.CapacityGB == nil || *row.CapacityGB != *filter.Capacity) {
			continue
		}
		if filter.DDRType != nil && (row.DDRType == nil || *row.DDRType != *filter.DDRType) {
			continue
		}
		if filter.FormFactor != nil && (row.FormFactor == nil || *row.FormFactor != *filter.FormFactor) {
			continue
		}
		if filter.RetailerID != nil && row.RetailerID != *filter.RetailerID {
			continue
		}
		filtered = append(filtered, row)
	}

	if filter.Sort == "newest" {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ProductID > filtered[j].ProductID
		})
	} else {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PriceCents < filtered[j].PriceCents
		})
	}

	out := make([]models.RAMListing, 0, len(filtered))
	for _, row := range filtered {
		coupon, err := s.coupons.GetForProduct(ctx, row.ProductID)
		if err != nil {
			return nil, fmt.Errorf("coupon lookup for product %d: %w", row.ProductID, err)
		}

		currency := "USD"
		if row.Currency != nil && *row.Currency != "" {
			currency = *row.Currency
		}

		listing := models.RAMListing{
			ID:             row.ProductID,
			Name:           row.Name,
			CapacityGB:     row.CapacityGB,
			SpeedMHz:       row.SpeedMHz,
			DDRType:        row.DDRType,
			FormFactor:     row.FormFactor,
			ProductURL:     row.ProductURL,
			ImageURL:       row.ImageURL,
			PriceCents:     row.PriceCents,
			Currency:       currency,
			RetailerName:   row.RetailerName,
			RetailerDomain: row.RetailerDomain,
		}
		if coupon != nil {
			listing.CouponCode = &coupon.Code
		}
		out = append(out, listing)
	}
	return out, nil
}

// GetCheapestByCapacity returns the lowest-priced current listing for each
// capacity, ordered by capacity ascending. Listings without a parsed
// capacity are skipped.
func (s *ListingService) GetCheapestByCapacity(ctx context.Context) ([]models.CapacityBest, error) {
	rows, err := s.latestPerProduct(ctx)
	if err != nil {
		return nil, err
	}

	best := make(map[int]repository.ListingRow)
	for _, row := range rows {
		if row.CapacityGB == nil {
			continue
		}
		capacity := *row.CapacityGB
		current, ok := best[capacity]
		if !ok || row.PriceCents < current.PriceCents {
			best[capacity] = row
		}
	}

	out := make([]models.CapacityBest, 0, len(best))
	for capacity, row := range best {
		out = append(out, models.CapacityBest{
			Capacity:   capacity,
			PriceCents: row.PriceCents,
			Name:       row.Name,
			ID:         row.ProductID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Capacity < out[j].Capacity })
	return out, nil
}

// GetFilters returns the filter options to offer: capacities present in the
// catalog, known retailers, and the fixed type/form vocabularies.
func (s *ListingService) GetFilters(ctx context.Context) (*models.FiltersData, error) {
	capacities, err := s.products.DistinctCapacities(ctx)
	if err != nil {
		return nil, fmt.Errorf("capacities: %w", err)
	}
	retailers, err := s.retailers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("retailers: %w", err)
	}

	return &models.FiltersData{
		Capacities:  capacities,
		Retailers:   retailers,
		DDRTypes:    models.DDRTypes,
		FormFactors: models.FormFactors,
	}, nil
}

// latestPerProduct collapses the joined price history to one row per
// product, keeping the newest observation.
func (s *ListingService) latestPerProduct(ctx context.Context) ([]repository.ListingRow, error) {
	rows, err := s.listings.GetJoined(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing join: %w", err)
	}

	seen := make(map[int]bool, len(rows))
	latest := make([]repository.ListingRow, 0, len(rows))
	for _, row := range rows {
		if seen[row.ProductID] {
			continue
		}
		seen[row.ProductID] = true
		latest = append(latest, row)
	}
	return latest, nil
}
