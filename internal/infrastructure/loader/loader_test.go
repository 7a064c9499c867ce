package loader

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

func TestResolveHistories(t *testing.T) {
	l := NewLoader(nil, logger.NewLogger())

	pharmacyIDs := map[string]int64{
		"DFW Wellness": 10,
		"Carepoint":    11,
	}

	t.Run("unknown pharmacy skipped", func(t *testing.T) {
		rows, skipped := l.resolveHistories("Yvonne Guerrero", []PurchaseHistoryRecord{
			{PharmacyName: "DFW Wellness", MaskName: "MaskT", TransactionAmount: decimal.RequireFromString("12.35"), TransactionDate: "2021-01-04 15:18:51"},
			{PharmacyName: "Closed Down Pharmacy", MaskName: "MaskT", TransactionAmount: decimal.RequireFromString("5.00"), TransactionDate: "2021-01-05 10:00:00"},
		}, pharmacyIDs)

		if skipped != 1 {
			t.Errorf("skipped = %d, want 1", skipped)
		}
		if len(rows) != 1 {
			t.Fatalf("got %d rows, want 1", len(rows))
		}
		if rows[0].PharmacyID != 10 {
			t.Errorf("PharmacyID = %d, want 10", rows[0].PharmacyID)
		}
	})

	t.Run("malformed date skipped", func(t *testing.T) {
		rows, skipped := l.resolveHistories("Lester Arnold", []PurchaseHistoryRecord{
			{PharmacyName: "Carepoint", MaskName: "Second Smile", TransactionAmount: decimal.RequireFromString("31.98"), TransactionDate: "January 4th"},
			{PharmacyName: "Carepoint", MaskName: "Second Smile", TransactionAmount: decimal.RequireFromString("31.98"), TransactionDate: "2021-01-04 15:18:51"},
		}, pharmacyIDs)

		if skipped != 1 {
			t.Errorf("skipped = %d, want 1", skipped)
		}
		if len(rows) != 1 {
			t.Fatalf("got %d rows, want 1", len(rows))
		}
		want := time.Date(2021, 1, 4, 15, 18, 51, 0, time.UTC)
		if !rows[0].TransactionDate.Equal(want) {
			t.Errorf("TransactionDate = %v, want %v", rows[0].TransactionDate, want)
		}
	})

	t.Run("all resolvable rows kept in order", func(t *testing.T) {
		rows, skipped := l.resolveHistories("Yvonne Guerrero", []PurchaseHistoryRecord{
			{PharmacyName: "Carepoint", MaskName: "MaskT", TransactionAmount: decimal.RequireFromString("9.50"), TransactionDate: "2021-01-01 08:00:00"},
			{PharmacyName: "DFW Wellness", MaskName: "True Barrier", TransactionAmount: decimal.RequireFromString("13.70"), TransactionDate: "2021-01-02 09:00:00"},
		}, pharmacyIDs)

		if skipped != 0 {
			t.Errorf("skipped = %d, want 0", skipped)
		}
		if len(rows) != 2 || rows[0].PharmacyID != 11 || rows[1].PharmacyID != 10 {
			t.Errorf("rows = %+v, want Carepoint then DFW Wellness", rows)
		}
	})

	t.Run("empty histories", func(t *testing.T) {
		rows, skipped := l.resolveHistories("Yvonne Guerrero", nil, pharmacyIDs)
		if len(rows) != 0 || skipped != 0 {
			t.Errorf("rows = %d, skipped = %d, want 0 and 0", len(rows), skipped)
		}
	})
}
