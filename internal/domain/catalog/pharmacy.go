package catalog

import (
	"github.com/shopspring/decimal"
)

// Pharmacy is a seller with a cash balance and a mask inventory. Balances are
// only ever adjusted by completed purchases.
type Pharmacy struct {
	ID          int64
	Name        string
	CashBalance decimal.Decimal
}

// Mask is a priced inventory item owned by exactly one pharmacy. Mask names
// are not globally unique; inventory lookup is by (pharmacy id, mask id).
type Mask struct {
	ID         int64
	PharmacyID int64
	Name       string
	Price      decimal.Decimal
}

// OpeningHour is one same-day opening interval of a pharmacy. A pharmacy may
// have several intervals per day. Times are "HH:MM" wall-clock strings.
type OpeningHour struct {
	ID         int64
	PharmacyID int64
	DayOfWeek  string
	OpenTime   string
	CloseTime  string
}

// OpenSlot pairs a pharmacy with one of its opening intervals, as returned by
// the open-pharmacy lookup.
type OpenSlot struct {
	PharmacyID   int64
	PharmacyName string
	DayOfWeek    string
	OpenTime     string
	CloseTime    string
}

// PharmacyInventory bundles a pharmacy with the subset of its masks inside a
// price range, for count-threshold filtering.
type PharmacyInventory struct {
	Pharmacy Pharmacy
	Masks    []Mask
}
