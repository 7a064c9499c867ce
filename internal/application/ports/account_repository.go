package ports

import (
	"context"
	"time"

	"github.com/Skye-project/phantom-mask/internal/domain/account"
)

// AccountRepository provides the read side over users and purchase histories.
type AccountRepository interface {
	// TopUsersByAmount ranks users by summed transaction amount over histories
	// dated within [from, to]; users without matching histories are excluded.
	// Nil bounds are open.
	TopUsersByAmount(ctx context.Context, top int, from, to *time.Time) ([]account.TopUser, error)

	// SummarizeTransactions counts and sums histories dated within [from, to].
	SummarizeTransactions(ctx context.Context, from, to *time.Time) (*account.TransactionSummary, error)
}
