package use_cases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Skye-project/phantom-mask/internal/application/ports"
	"github.com/Skye-project/phantom-mask/internal/domain/account"
	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
	"github.com/Skye-project/phantom-mask/internal/domain/purchase"
	"github.com/Skye-project/phantom-mask/internal/pkg/clock"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type PurchaseUseCase struct {
	store ports.PurchaseStore
	clock clock.Clock
	log   *logger.Logger

	retryAttempts int
}

func NewPurchaseUseCase(store ports.PurchaseStore, clk clock.Clock, log *logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{
		store:         store,
		clock:         clk,
		log:           log,
		retryAttempts: 2,
	}
}

// ExecutePurchase runs a multi-item order as one atomic transaction: validate
// every line item, check funds, credit sellers, record history, debit the
// buyer. Transaction conflicts retry a bounded number of times; business
// failures never retry.
func (uc *PurchaseUseCase) ExecutePurchase(ctx context.Context, order purchase.Order) (*purchase.Receipt, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	var receipt *purchase.Receipt
	var err error

	for attempt := 0; attempt < uc.retryAttempts; attempt++ {
		receipt, err = uc.attemptPurchase(ctx, order)
		if err == nil {
			break
		}

		if isBusinessError(err) {
			break
		}

		uc.log.Warn("Purchase attempt failed",
			"attempt", attempt+1,
			"user_id", order.UserID,
			"error", err.Error(),
		)

		if attempt < uc.retryAttempts-1 {
			time.Sleep(time.Millisecond * time.Duration(100*(attempt+1)))
		}
	}

	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("purchase did not complete after %d attempts (%v): %w",
			uc.retryAttempts, err, domainErrors.ErrTransactionFailed)
	}

	uc.log.Info("Purchase completed",
		"user_id", order.UserID,
		"items", len(order.Items),
		"total_cost", receipt.TotalCost.StringFixed(2),
	)

	return receipt, nil
}

func (uc *PurchaseUseCase) attemptPurchase(ctx context.Context, order purchase.Order) (receipt *purchase.Receipt, err error) {
	tx, err := uc.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Locking the buyer row first, then pharmacy rows in ascending id order,
	// gives every purchase the same lock order.
	user, err := tx.GetUserForUpdate(ctx, order.UserID)
	if err != nil {
		return nil, err
	}

	// Validate every line item before mutating anything.
	details := make([]purchase.ItemDetail, 0, len(order.Items))
	for _, item := range order.Items {
		mask, maskErr := tx.GetMaskInPharmacy(ctx, item.MaskID, item.PharmacyID)
		if maskErr != nil {
			err = maskErr
			return nil, err
		}

		details = append(details, purchase.ItemDetail{
			PharmacyID: item.PharmacyID,
			MaskID:     mask.ID,
			MaskName:   mask.Name,
			Quantity:   item.Quantity,
			UnitPrice:  mask.Price,
			TotalPrice: purchase.ItemCost(mask.Price, item.Quantity),
		})
	}

	totalCost := purchase.TotalCost(details)
	if err = purchase.CheckFunds(user.CashBalance, totalCost); err != nil {
		return nil, err
	}

	pharmacyNames := make(map[int64]string)
	for _, id := range uniquePharmacyIDs(order.Items) {
		pharmacy, lockErr := tx.GetPharmacyForUpdate(ctx, id)
		if lockErr != nil {
			err = lockErr
			return nil, err
		}
		pharmacyNames[pharmacy.ID] = pharmacy.Name
	}

	// One timestamp shared by every history row of the order.
	now := uc.clock.Now()

	for i, item := range order.Items {
		// Re-resolve the mask under the pharmacy lock.
		mask, maskErr := tx.GetMaskInPharmacy(ctx, item.MaskID, item.PharmacyID)
		if maskErr != nil {
			err = maskErr
			return nil, err
		}

		details[i].PharmacyName = pharmacyNames[item.PharmacyID]
		details[i].MaskName = mask.Name
		details[i].UnitPrice = mask.Price
		details[i].TotalPrice = purchase.ItemCost(mask.Price, item.Quantity)

		if err = tx.CreditPharmacy(ctx, item.PharmacyID, details[i].TotalPrice); err != nil {
			return nil, err
		}

		if err = tx.InsertHistory(ctx, account.PurchaseHistory{
			UserID:            order.UserID,
			PharmacyID:        item.PharmacyID,
			MaskName:          mask.Name,
			TransactionAmount: details[i].TotalPrice,
			TransactionDate:   now,
		}); err != nil {
			return nil, err
		}
	}

	totalCost = purchase.TotalCost(details)

	if err = tx.DebitUser(ctx, order.UserID, totalCost); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &purchase.Receipt{
		TotalCost:        totalCost,
		RemainingBalance: user.CashBalance.Sub(totalCost),
		Details:          details,
	}, nil
}

func uniquePharmacyIDs(items []purchase.LineItem) []int64 {
	seen := make(map[int64]bool, len(items))
	var ids []int64
	for _, item := range items {
		if !seen[item.PharmacyID] {
			seen[item.PharmacyID] = true
			ids = append(ids, item.PharmacyID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func isBusinessError(err error) bool {
	switch {
	case errors.Is(err, domainErrors.ErrUserNotFound),
		errors.Is(err, domainErrors.ErrMaskNotFound),
		errors.Is(err, domainErrors.ErrPharmacyNotFound),
		errors.Is(err, domainErrors.ErrInsufficientFunds),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrNoItemsToOrder):
		return true
	default:
		return false
	}
}
