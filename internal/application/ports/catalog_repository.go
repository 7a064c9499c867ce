package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/domain/catalog"
)

// CatalogRepository provides the read side over pharmacies, masks, and
// opening hours. All operations are pure reads.
type CatalogRepository interface {
	// FindOpenSlots returns pharmacy/interval pairs, filtered by canonical day
	// code and/or "HH:MM" time of day when given (inclusive boundaries).
	FindOpenSlots(ctx context.Context, day, timeOfDay string) ([]catalog.OpenSlot, error)

	// GetPharmacyByName resolves a pharmacy by exact name.
	GetPharmacyByName(ctx context.Context, name string) (*catalog.Pharmacy, error)

	// GetMasksByPharmacy lists a pharmacy's masks sorted by sortBy/order with
	// insertion-order (id) tie-break.
	GetMasksByPharmacy(ctx context.Context, pharmacyID int64, sortBy, order string) ([]catalog.Mask, error)

	// GetInventoriesInPriceRange returns every pharmacy together with its
	// masks priced within [minPrice, maxPrice], both bounds inclusive.
	// Pharmacies with no masks in range appear with an empty mask slice.
	GetInventoriesInPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]catalog.PharmacyInventory, error)

	ListPharmacyNames(ctx context.Context) ([]string, error)
	ListMaskNames(ctx context.Context) ([]string, error)
}
