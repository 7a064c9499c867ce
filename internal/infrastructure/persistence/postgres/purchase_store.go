package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/application/ports"
	"github.com/Skye-project/phantom-mask/internal/domain/account"
	"github.com/Skye-project/phantom-mask/internal/domain/catalog"
	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/monitoring"
)

// PurchaseStore is the write path. Each BeginTx spans one purchase; balance
// rows are locked with SELECT ... FOR UPDATE so concurrent purchases against
// the same user or pharmacy serialize.
type PurchaseStore struct {
	db *sql.DB
}

func NewPurchaseStore(conn *Connection) *PurchaseStore {
	return &PurchaseStore{
		db: conn.GetDB(),
	}
}

func (s *PurchaseStore) BeginTx(ctx context.Context) (ports.PurchaseTx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return nil, err
	}

	return &purchaseTx{tx: tx}, nil
}

type purchaseTx struct {
	tx *sql.Tx
}

func (t *purchaseTx) GetUserForUpdate(ctx context.Context, userID int64) (*account.User, error) {
	query := `
		SELECT id, name, cash_balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`

	var u account.User
	row := monitoring.InstrumentTxQueryRow(ctx, t.tx, "SELECT", "users", query, userID)
	if err := row.Scan(&u.ID, &u.Name, &u.CashBalance); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %d: %w", userID, domainErrors.ErrUserNotFound)
		}
		return nil, err
	}

	return &u, nil
}

func (t *purchaseTx) GetMaskInPharmacy(ctx context.Context, maskID, pharmacyID int64) (*catalog.Mask, error) {
	query := `
		SELECT id, pharmacy_id, name, price
		FROM masks
		WHERE id = $1 AND pharmacy_id = $2
	`

	var m catalog.Mask
	row := monitoring.InstrumentTxQueryRow(ctx, t.tx, "SELECT", "masks", query, maskID, pharmacyID)
	if err := row.Scan(&m.ID, &m.PharmacyID, &m.Name, &m.Price); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("mask %d in pharmacy %d: %w", maskID, pharmacyID, domainErrors.ErrMaskNotFound)
		}
		return nil, err
	}

	return &m, nil
}

func (t *purchaseTx) GetPharmacyForUpdate(ctx context.Context, pharmacyID int64) (*catalog.Pharmacy, error) {
	query := `
		SELECT id, name, cash_balance
		FROM pharmacies
		WHERE id = $1
		FOR UPDATE
	`

	var p catalog.Pharmacy
	row := monitoring.InstrumentTxQueryRow(ctx, t.tx, "SELECT", "pharmacies", query, pharmacyID)
	if err := row.Scan(&p.ID, &p.Name, &p.CashBalance); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pharmacy %d: %w", pharmacyID, domainErrors.ErrPharmacyNotFound)
		}
		return nil, err
	}

	return &p, nil
}

func (t *purchaseTx) CreditPharmacy(ctx context.Context, pharmacyID int64, amount decimal.Decimal) error {
	query := `
		UPDATE pharmacies
		SET cash_balance = cash_balance + $2
		WHERE id = $1
	`

	result, err := monitoring.InstrumentTxExec(ctx, t.tx, "UPDATE", "pharmacies", query, pharmacyID, amount)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("pharmacy %d: %w", pharmacyID, domainErrors.ErrPharmacyNotFound)
	}

	return nil
}

func (t *purchaseTx) DebitUser(ctx context.Context, userID int64, amount decimal.Decimal) error {
	query := `
		UPDATE users
		SET cash_balance = cash_balance - $2
		WHERE id = $1
	`

	result, err := monitoring.InstrumentTxExec(ctx, t.tx, "UPDATE", "users", query, userID, amount)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("user %d: %w", userID, domainErrors.ErrUserNotFound)
	}

	return nil
}

func (t *purchaseTx) InsertHistory(ctx context.Context, history account.PurchaseHistory) error {
	query := `
		INSERT INTO purchase_histories (user_id, pharmacy_id, mask_name, transaction_amount, transaction_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := monitoring.InstrumentTxExec(ctx, t.tx, "INSERT", "purchase_histories", query,
		history.UserID, history.PharmacyID, history.MaskName, history.TransactionAmount, history.TransactionDate,
	)
	if err == nil {
		monitoring.PurchaseItemsRecorded.Inc()
	}
	return err
}

func (t *purchaseTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *purchaseTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback()
}
