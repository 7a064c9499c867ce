package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/pkg/hours"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

const transactionDateLayout = "2006-01-02 15:04:05"

type MaskRecord struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type PharmacyRecord struct {
	Name         string          `json:"name"`
	CashBalance  decimal.Decimal `json:"cashBalance"`
	OpeningHours string          `json:"openingHours"`
	Masks        []MaskRecord    `json:"masks"`
}

type PurchaseHistoryRecord struct {
	PharmacyName      string          `json:"pharmacyName"`
	MaskName          string          `json:"maskName"`
	TransactionAmount decimal.Decimal `json:"transactionAmount"`
	TransactionDate   string          `json:"transactionDate"`
}

type UserRecord struct {
	Name              string                  `json:"name"`
	CashBalance       decimal.Decimal         `json:"cashBalance"`
	PurchaseHistories []PurchaseHistoryRecord `json:"purchaseHistories"`
}

// Loader seeds the database from the raw pharmacy and user JSON exports.
// Each file loads inside a single transaction, so a mid-file failure leaves
// nothing behind.
type Loader struct {
	conn *pgx.Conn
	log  *logger.Logger
}

func NewLoader(conn *pgx.Conn, log *logger.Logger) *Loader {
	return &Loader{
		conn: conn,
		log:  log,
	}
}

// batchSender is the subset of pgx.Tx the loader inserts through.
type batchSender interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func (l *Loader) LoadAll(ctx context.Context, pharmaciesPath, usersPath string) error {
	pharmacyIDs, err := l.LoadPharmacies(ctx, pharmaciesPath)
	if err != nil {
		return fmt.Errorf("load pharmacies: %w", err)
	}

	if err := l.LoadUsers(ctx, usersPath, pharmacyIDs); err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	return nil
}

// LoadPharmacies inserts pharmacies with their opening hours and masks, and
// returns a name to id map for resolving purchase histories.
func (l *Loader) LoadPharmacies(ctx context.Context, path string) (map[string]int64, error) {
	var records []PharmacyRecord
	if err := readJSONFile(path, &records); err != nil {
		return nil, err
	}

	tx, err := l.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	pharmacyIDs := make(map[string]int64, len(records))
	totalSkipped := 0

	for _, record := range records {
		var pharmacyID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO pharmacies (name, cash_balance) VALUES ($1, $2) RETURNING id`,
			record.Name, record.CashBalance.String(),
		).Scan(&pharmacyID)
		if err != nil {
			return nil, fmt.Errorf("insert pharmacy %q: %w", record.Name, err)
		}
		pharmacyIDs[record.Name] = pharmacyID

		intervals, skipped := hours.ParseSchedule(record.OpeningHours)
		if skipped > 0 {
			totalSkipped += skipped
			l.log.Warn("Skipped malformed opening hour segments",
				"pharmacy", record.Name,
				"skipped", skipped,
			)
		}

		batch := &pgx.Batch{}
		for _, interval := range intervals {
			batch.Queue(
				`INSERT INTO opening_hours (pharmacy_id, day_of_week, open_time, close_time) VALUES ($1, $2, $3, $4)`,
				pharmacyID, interval.DayOfWeek, interval.OpenTime, interval.CloseTime,
			)
		}
		for _, mask := range record.Masks {
			batch.Queue(
				`INSERT INTO masks (pharmacy_id, name, price) VALUES ($1, $2, $3)`,
				pharmacyID, mask.Name, mask.Price.String(),
			)
		}

		if err := l.sendBatch(ctx, tx, batch); err != nil {
			return nil, fmt.Errorf("insert details for pharmacy %q: %w", record.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	l.log.Info("Pharmacies loaded",
		"count", len(records),
		"skipped_segments", totalSkipped,
	)

	return pharmacyIDs, nil
}

// LoadUsers inserts users and their purchase histories. Histories referencing
// an unknown pharmacy or carrying an unparseable date are skipped, not fatal.
func (l *Loader) LoadUsers(ctx context.Context, path string, pharmacyIDs map[string]int64) error {
	var records []UserRecord
	if err := readJSONFile(path, &records); err != nil {
		return err
	}

	tx, err := l.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	loadedHistories := 0
	skippedHistories := 0

	for _, record := range records {
		var userID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO users (name, cash_balance) VALUES ($1, $2) RETURNING id`,
			record.Name, record.CashBalance.String(),
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("insert user %q: %w", record.Name, err)
		}

		rows, skipped := l.resolveHistories(record.Name, record.PurchaseHistories, pharmacyIDs)
		skippedHistories += skipped

		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(
				`INSERT INTO purchase_histories (user_id, pharmacy_id, mask_name, transaction_amount, transaction_date) VALUES ($1, $2, $3, $4, $5)`,
				userID, row.PharmacyID, row.MaskName, row.TransactionAmount.String(), row.TransactionDate,
			)
			loadedHistories++
		}

		if err := l.sendBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("insert histories for user %q: %w", record.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	l.log.Info("Users loaded",
		"count", len(records),
		"histories", loadedHistories,
		"skipped_histories", skippedHistories,
	)

	return nil
}

// historyRow is a purchase history record resolved against the loaded
// pharmacies, ready for insertion.
type historyRow struct {
	PharmacyID        int64
	MaskName          string
	TransactionAmount decimal.Decimal
	TransactionDate   time.Time
}

// resolveHistories maps raw history records to insertable rows. Rows naming
// an unknown pharmacy or carrying an unparseable date are dropped; the second
// return value counts the drops.
func (l *Loader) resolveHistories(user string, histories []PurchaseHistoryRecord, pharmacyIDs map[string]int64) ([]historyRow, int) {
	rows := make([]historyRow, 0, len(histories))
	skipped := 0

	for _, history := range histories {
		pharmacyID, ok := pharmacyIDs[history.PharmacyName]
		if !ok {
			skipped++
			l.log.Warn("Skipped purchase history with unknown pharmacy",
				"user", user,
				"pharmacy", history.PharmacyName,
			)
			continue
		}

		transactionDate, err := time.Parse(transactionDateLayout, history.TransactionDate)
		if err != nil {
			skipped++
			l.log.Warn("Skipped purchase history with malformed date",
				"user", user,
				"date", history.TransactionDate,
			)
			continue
		}

		rows = append(rows, historyRow{
			PharmacyID:        pharmacyID,
			MaskName:          history.MaskName,
			TransactionAmount: history.TransactionAmount,
			TransactionDate:   transactionDate,
		})
	}

	return rows, skipped
}

func (l *Loader) sendBatch(ctx context.Context, tx batchSender, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

func readJSONFile(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}
