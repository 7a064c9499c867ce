package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/domain/catalog"
	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/monitoring"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{
		db: conn.GetDB(),
	}
}

func (r *CatalogRepository) FindOpenSlots(ctx context.Context, day, timeOfDay string) ([]catalog.OpenSlot, error) {
	query := `
		SELECT p.id, p.name, oh.day_of_week, to_char(oh.open_time, 'HH24:MI'), to_char(oh.close_time, 'HH24:MI')
		FROM pharmacies p
		JOIN opening_hours oh ON oh.pharmacy_id = p.id
	`

	var conditions []string
	var args []interface{}

	if day != "" {
		args = append(args, day)
		conditions = append(conditions, fmt.Sprintf("oh.day_of_week = $%d", len(args)))
	}
	if timeOfDay != "" {
		args = append(args, timeOfDay)
		conditions = append(conditions, fmt.Sprintf("oh.open_time <= $%d::time AND oh.close_time >= $%d::time", len(args), len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY p.id, oh.id"

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "opening_hours", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []catalog.OpenSlot
	for rows.Next() {
		var s catalog.OpenSlot
		if err := rows.Scan(&s.PharmacyID, &s.PharmacyName, &s.DayOfWeek, &s.OpenTime, &s.CloseTime); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}

	return slots, rows.Err()
}

func (r *CatalogRepository) GetPharmacyByName(ctx context.Context, name string) (*catalog.Pharmacy, error) {
	query := `
		SELECT id, name, cash_balance
		FROM pharmacies
		WHERE name = $1
	`

	var p catalog.Pharmacy
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "pharmacies", query, name)
	err := row.Scan(&p.ID, &p.Name, &p.CashBalance)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pharmacy %q: %w", name, domainErrors.ErrPharmacyNotFound)
		}
		return nil, err
	}

	return &p, nil
}

func (r *CatalogRepository) GetMasksByPharmacy(ctx context.Context, pharmacyID int64, sortBy, order string) ([]catalog.Mask, error) {
	column := "name"
	if sortBy == "price" {
		column = "price"
	}
	direction := "ASC"
	if order == "desc" {
		direction = "DESC"
	}

	// Tie-break on id keeps equal keys in insertion order.
	query := fmt.Sprintf(`
		SELECT id, pharmacy_id, name, price
		FROM masks
		WHERE pharmacy_id = $1
		ORDER BY %s %s, id ASC
	`, column, direction)

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "masks", query, pharmacyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var masks []catalog.Mask
	for rows.Next() {
		var m catalog.Mask
		if err := rows.Scan(&m.ID, &m.PharmacyID, &m.Name, &m.Price); err != nil {
			return nil, err
		}
		masks = append(masks, m)
	}

	return masks, rows.Err()
}

func (r *CatalogRepository) GetInventoriesInPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]catalog.PharmacyInventory, error) {
	// LEFT JOIN keeps pharmacies with no masks in range; count-threshold
	// filtering with op=lt must see them with an empty subset.
	query := `
		SELECT p.id, p.name, p.cash_balance, m.id, m.name, m.price
		FROM pharmacies p
		LEFT JOIN masks m ON m.pharmacy_id = p.id AND m.price BETWEEN $1 AND $2
		ORDER BY p.id, m.id
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "pharmacies", query, minPrice, maxPrice)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []catalog.PharmacyInventory
	byID := make(map[int64]int)

	for rows.Next() {
		var p catalog.Pharmacy
		var maskID sql.NullInt64
		var maskName sql.NullString
		var maskPrice decimal.NullDecimal

		if err := rows.Scan(&p.ID, &p.Name, &p.CashBalance, &maskID, &maskName, &maskPrice); err != nil {
			return nil, err
		}

		idx, ok := byID[p.ID]
		if !ok {
			idx = len(inventories)
			byID[p.ID] = idx
			inventories = append(inventories, catalog.PharmacyInventory{Pharmacy: p, Masks: []catalog.Mask{}})
		}

		if maskID.Valid {
			inventories[idx].Masks = append(inventories[idx].Masks, catalog.Mask{
				ID:         maskID.Int64,
				PharmacyID: p.ID,
				Name:       maskName.String,
				Price:      maskPrice.Decimal,
			})
		}
	}

	return inventories, rows.Err()
}

func (r *CatalogRepository) ListPharmacyNames(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "pharmacies")
}

func (r *CatalogRepository) ListMaskNames(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "masks")
}

func (r *CatalogRepository) listNames(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf("SELECT name FROM %s ORDER BY id", table)

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", table, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
