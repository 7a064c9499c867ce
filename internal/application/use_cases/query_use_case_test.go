package use_cases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/domain/account"
	"github.com/Skye-project/phantom-mask/internal/domain/catalog"
	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type mockCatalogRepository struct {
	slots       []catalog.OpenSlot
	pharmacies  map[string]catalog.Pharmacy
	masks       map[int64][]catalog.Mask
	inventories []catalog.PharmacyInventory

	pharmacyNames []string
	maskNames     []string

	lastDay  string
	lastTime string
}

func (m *mockCatalogRepository) FindOpenSlots(_ context.Context, day, timeOfDay string) ([]catalog.OpenSlot, error) {
	m.lastDay = day
	m.lastTime = timeOfDay
	return m.slots, nil
}

func (m *mockCatalogRepository) GetPharmacyByName(_ context.Context, name string) (*catalog.Pharmacy, error) {
	pharmacy, ok := m.pharmacies[name]
	if !ok {
		return nil, domainErrors.ErrPharmacyNotFound
	}
	return &pharmacy, nil
}

func (m *mockCatalogRepository) GetMasksByPharmacy(_ context.Context, pharmacyID int64, _, _ string) ([]catalog.Mask, error) {
	return m.masks[pharmacyID], nil
}

func (m *mockCatalogRepository) GetInventoriesInPriceRange(_ context.Context, _, _ decimal.Decimal) ([]catalog.PharmacyInventory, error) {
	return m.inventories, nil
}

func (m *mockCatalogRepository) ListPharmacyNames(_ context.Context) ([]string, error) {
	return m.pharmacyNames, nil
}

func (m *mockCatalogRepository) ListMaskNames(_ context.Context) ([]string, error) {
	return m.maskNames, nil
}

type mockAccountRepository struct {
	topUsers []account.TopUser
	summary  account.TransactionSummary

	lastFrom *time.Time
	lastTo   *time.Time
}

func (m *mockAccountRepository) TopUsersByAmount(_ context.Context, _ int, from, to *time.Time) ([]account.TopUser, error) {
	m.lastFrom = from
	m.lastTo = to
	return m.topUsers, nil
}

func (m *mockAccountRepository) SummarizeTransactions(_ context.Context, from, to *time.Time) (*account.TransactionSummary, error) {
	m.lastFrom = from
	m.lastTo = to
	summary := m.summary
	return &summary, nil
}

func newQueryTestCase(catalogRepo *mockCatalogRepository, accountRepo *mockAccountRepository) *QueryUseCase {
	return NewQueryUseCase(catalogRepo, accountRepo, logger.NewLogger())
}

func TestOpenPharmacies(t *testing.T) {
	t.Run("normalizes day alias", func(t *testing.T) {
		repo := &mockCatalogRepository{}
		uc := newQueryTestCase(repo, &mockAccountRepository{})

		if _, err := uc.OpenPharmacies(context.Background(), "Thursday", "14:30"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastDay != "Thu" {
			t.Errorf("day passed to repo = %q, want %q", repo.lastDay, "Thu")
		}
		if repo.lastTime != "14:30" {
			t.Errorf("time passed to repo = %q, want %q", repo.lastTime, "14:30")
		}
	})

	t.Run("rejects out of range time", func(t *testing.T) {
		uc := newQueryTestCase(&mockCatalogRepository{}, &mockAccountRepository{})

		_, err := uc.OpenPharmacies(context.Background(), "", "25:61")
		if !errors.Is(err, domainErrors.ErrInvalidTime) {
			t.Fatalf("error = %v, want ErrInvalidTime", err)
		}
	})

	t.Run("empty filters pass through", func(t *testing.T) {
		repo := &mockCatalogRepository{}
		uc := newQueryTestCase(repo, &mockAccountRepository{})

		if _, err := uc.OpenPharmacies(context.Background(), "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastDay != "" || repo.lastTime != "" {
			t.Errorf("filters = (%q, %q), want empty", repo.lastDay, repo.lastTime)
		}
	})
}

func TestListMasks(t *testing.T) {
	repo := &mockCatalogRepository{
		pharmacies: map[string]catalog.Pharmacy{
			"DFW Wellness": {ID: 10, Name: "DFW Wellness"},
		},
		masks: map[int64][]catalog.Mask{
			10: {{ID: 1, Name: "MaskT", Price: decimal.RequireFromString("9.50")}},
		},
	}
	uc := newQueryTestCase(repo, &mockAccountRepository{})

	t.Run("defaults to name ascending", func(t *testing.T) {
		masks, err := uc.ListMasks(context.Background(), "DFW Wellness", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(masks) != 1 {
			t.Fatalf("got %d masks, want 1", len(masks))
		}
	})

	t.Run("unknown pharmacy", func(t *testing.T) {
		_, err := uc.ListMasks(context.Background(), "Nowhere", "", "")
		if !errors.Is(err, domainErrors.ErrPharmacyNotFound) {
			t.Fatalf("error = %v, want ErrPharmacyNotFound", err)
		}
	})

	t.Run("invalid sort field", func(t *testing.T) {
		_, err := uc.ListMasks(context.Background(), "DFW Wellness", "color", "")
		if !errors.Is(err, domainErrors.ErrInvalidSortField) {
			t.Fatalf("error = %v, want ErrInvalidSortField", err)
		}
	})

	t.Run("invalid order", func(t *testing.T) {
		_, err := uc.ListMasks(context.Background(), "DFW Wellness", "price", "sideways")
		if !errors.Is(err, domainErrors.ErrInvalidOrder) {
			t.Fatalf("error = %v, want ErrInvalidOrder", err)
		}
	})
}

func TestFilterByMaskCount(t *testing.T) {
	inventories := []catalog.PharmacyInventory{
		{Pharmacy: catalog.Pharmacy{ID: 1, Name: "Empty"}, Masks: nil},
		{Pharmacy: catalog.Pharmacy{ID: 2, Name: "Two"}, Masks: make([]catalog.Mask, 2)},
		{Pharmacy: catalog.Pharmacy{ID: 3, Name: "Five"}, Masks: make([]catalog.Mask, 5)},
	}
	repo := &mockCatalogRepository{inventories: inventories}
	uc := newQueryTestCase(repo, &mockAccountRepository{})

	minPrice := decimal.Zero
	maxPrice := decimal.RequireFromString("100")

	t.Run("strictly greater", func(t *testing.T) {
		result, err := uc.FilterByMaskCount(context.Background(), minPrice, maxPrice, 2, OpGreaterThan)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result) != 1 || result[0].Pharmacy.Name != "Five" {
			t.Errorf("gt 2 matched %d pharmacies, want only Five", len(result))
		}
	})

	t.Run("strictly less includes zero mask pharmacies", func(t *testing.T) {
		result, err := uc.FilterByMaskCount(context.Background(), minPrice, maxPrice, 2, OpLessThan)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result) != 1 || result[0].Pharmacy.Name != "Empty" {
			t.Errorf("lt 2 matched %d pharmacies, want only Empty", len(result))
		}
	})

	t.Run("boundary is exclusive", func(t *testing.T) {
		result, err := uc.FilterByMaskCount(context.Background(), minPrice, maxPrice, 5, OpGreaterThan)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("gt 5 matched %d pharmacies, want 0", len(result))
		}
	})

	t.Run("invalid operator", func(t *testing.T) {
		_, err := uc.FilterByMaskCount(context.Background(), minPrice, maxPrice, 2, "ge")
		if !errors.Is(err, domainErrors.ErrInvalidOperator) {
			t.Fatalf("error = %v, want ErrInvalidOperator", err)
		}
	})
}

func TestSearch(t *testing.T) {
	repo := &mockCatalogRepository{
		pharmacyNames: []string{"Keep Healthy City", "First Care"},
		maskNames:     []string{"True Barrier (green) (3 per pack)"},
	}
	uc := newQueryTestCase(repo, &mockAccountRepository{})

	t.Run("ranked hits", func(t *testing.T) {
		hits, err := uc.Search(context.Background(), "Care")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hits) != 1 || hits[0].Name != "First Care" {
			t.Fatalf("hits = %v, want just First Care", hits)
		}
	})

	t.Run("empty keyword rejected", func(t *testing.T) {
		_, err := uc.Search(context.Background(), "")
		if !errors.Is(err, domainErrors.ErrEmptyKeyword) {
			t.Fatalf("error = %v, want ErrEmptyKeyword", err)
		}
	})
}

func TestTopUsers(t *testing.T) {
	t.Run("end date day fully included", func(t *testing.T) {
		repo := &mockAccountRepository{}
		uc := newQueryTestCase(&mockCatalogRepository{}, repo)

		if _, err := uc.TopUsers(context.Background(), 5, "2021-01-01", "2021-01-31"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantFrom := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
		wantTo := time.Date(2021, 1, 31, 23, 59, 59, 0, time.UTC)
		if repo.lastFrom == nil || !repo.lastFrom.Equal(wantFrom) {
			t.Errorf("from = %v, want %v", repo.lastFrom, wantFrom)
		}
		if repo.lastTo == nil || !repo.lastTo.Equal(wantTo) {
			t.Errorf("to = %v, want %v", repo.lastTo, wantTo)
		}
	})

	t.Run("amounts rounded to cents", func(t *testing.T) {
		repo := &mockAccountRepository{
			topUsers: []account.TopUser{
				{ID: 1, Name: "Yvonne Guerrero", TotalAmount: decimal.RequireFromString("12.345")},
			},
		}
		uc := newQueryTestCase(&mockCatalogRepository{}, repo)

		users, err := uc.TopUsers(context.Background(), 5, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.RequireFromString("12.35")
		if !users[0].TotalAmount.Equal(want) {
			t.Errorf("TotalAmount = %s, want %s", users[0].TotalAmount, want)
		}
	})

	t.Run("non positive top rejected", func(t *testing.T) {
		uc := newQueryTestCase(&mockCatalogRepository{}, &mockAccountRepository{})
		_, err := uc.TopUsers(context.Background(), 0, "", "")
		if !errors.Is(err, domainErrors.ErrInvalidTopLimit) {
			t.Fatalf("error = %v, want ErrInvalidTopLimit", err)
		}
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		uc := newQueryTestCase(&mockCatalogRepository{}, &mockAccountRepository{})
		_, err := uc.TopUsers(context.Background(), 5, "01/01/2021", "")
		if !errors.Is(err, domainErrors.ErrInvalidDate) {
			t.Fatalf("error = %v, want ErrInvalidDate", err)
		}
	})
}

func TestTransactionSummary(t *testing.T) {
	repo := &mockAccountRepository{
		summary: account.TransactionSummary{
			TotalTransactions: 3,
			TotalAmount:       decimal.RequireFromString("61.035"),
		},
	}
	uc := newQueryTestCase(&mockCatalogRepository{}, repo)

	summary, err := uc.TransactionSummary(context.Background(), "2021-01-01", "2021-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalTransactions != 3 {
		t.Errorf("TotalTransactions = %d, want 3", summary.TotalTransactions)
	}
	want := decimal.RequireFromString("61.04")
	if !summary.TotalAmount.Equal(want) {
		t.Errorf("TotalAmount = %s, want %s", summary.TotalAmount, want)
	}
}
