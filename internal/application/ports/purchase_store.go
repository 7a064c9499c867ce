package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/domain/account"
	"github.com/Skye-project/phantom-mask/internal/domain/catalog"
)

// PurchaseStore opens transaction-scoped handles for the single write path.
type PurchaseStore interface {
	BeginTx(ctx context.Context) (PurchaseTx, error)
}

// PurchaseTx is one atomic purchase transaction. ForUpdate reads take row
// locks so concurrent purchases against the same user or pharmacy serialize
// their balance updates. Rollback after Commit is a no-op.
type PurchaseTx interface {
	GetUserForUpdate(ctx context.Context, userID int64) (*account.User, error)
	GetMaskInPharmacy(ctx context.Context, maskID, pharmacyID int64) (*catalog.Mask, error)
	GetPharmacyForUpdate(ctx context.Context, pharmacyID int64) (*catalog.Pharmacy, error)
	CreditPharmacy(ctx context.Context, pharmacyID int64, amount decimal.Decimal) error
	DebitUser(ctx context.Context, userID int64, amount decimal.Decimal) error
	InsertHistory(ctx context.Context, history account.PurchaseHistory) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
