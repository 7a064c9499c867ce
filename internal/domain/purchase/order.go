package purchase

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
)

// LineItem is one (pharmacy, mask, quantity) entry of a purchase order.
type LineItem struct {
	PharmacyID int64
	MaskID     int64
	Quantity   int
}

// Order is a multi-item purchase request from one user.
type Order struct {
	UserID int64
	Items  []LineItem
}

// Validate rejects structurally invalid orders before any store access.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return domainErrors.ErrNoItemsToOrder
	}
	for i, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d (mask %d, pharmacy %d): %w",
				i, item.MaskID, item.PharmacyID, domainErrors.ErrInvalidQuantity)
		}
	}
	return nil
}

// ItemDetail is the per-line breakdown returned with a completed purchase.
type ItemDetail struct {
	PharmacyID   int64
	PharmacyName string
	MaskID       int64
	MaskName     string
	Quantity     int
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
}

// Receipt is the outcome of a committed purchase.
type Receipt struct {
	TotalCost        decimal.Decimal
	RemainingBalance decimal.Decimal
	Details          []ItemDetail
}
