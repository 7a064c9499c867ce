package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a buyer with a cash balance. Balances never go negative; the
// purchase engine checks funds before debiting.
type User struct {
	ID          int64
	Name        string
	CashBalance decimal.Decimal
}

// PurchaseHistory is the immutable record of one completed line-item sale.
// MaskName is a value snapshot taken at purchase time, not a reference to the
// mask row, so history stays accurate if the mask is later renamed.
type PurchaseHistory struct {
	ID                int64
	UserID            int64
	PharmacyID        int64
	MaskName          string
	TransactionAmount decimal.Decimal
	TransactionDate   time.Time
}

// TopUser is a user ranked by summed transaction amount over a date range.
type TopUser struct {
	ID          int64
	Name        string
	CashBalance decimal.Decimal
	TotalAmount decimal.Decimal
}

// TransactionSummary aggregates purchase histories over a date range.
type TransactionSummary struct {
	TotalTransactions int
	TotalAmount       decimal.Decimal
}
