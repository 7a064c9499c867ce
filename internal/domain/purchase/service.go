package purchase

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
)

// ItemCost prices one line item. Rounding happens per item, not on the grand
// total: the order total is the sum of already-rounded item costs.
func ItemCost(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// TotalCost sums the already-rounded line totals of a detail breakdown.
func TotalCost(details []ItemDetail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.TotalPrice)
	}
	return total
}

// CheckFunds verifies the buyer can cover the order total.
func CheckFunds(balance, totalCost decimal.Decimal) error {
	if balance.LessThan(totalCost) {
		return fmt.Errorf("balance %s below order total %s: %w",
			balance.StringFixed(2), totalCost.StringFixed(2), domainErrors.ErrInsufficientFunds)
	}
	return nil
}
