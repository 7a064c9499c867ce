package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/application/use_cases"
	"github.com/Skye-project/phantom-mask/internal/domain/account"
	"github.com/Skye-project/phantom-mask/internal/domain/catalog"
	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type stubCatalogRepository struct {
	slots       []catalog.OpenSlot
	inventories []catalog.PharmacyInventory
}

func (s *stubCatalogRepository) FindOpenSlots(_ context.Context, _, _ string) ([]catalog.OpenSlot, error) {
	return s.slots, nil
}

func (s *stubCatalogRepository) GetPharmacyByName(_ context.Context, _ string) (*catalog.Pharmacy, error) {
	return nil, domainErrors.ErrPharmacyNotFound
}

func (s *stubCatalogRepository) GetMasksByPharmacy(_ context.Context, _ int64, _, _ string) ([]catalog.Mask, error) {
	return nil, nil
}

func (s *stubCatalogRepository) GetInventoriesInPriceRange(_ context.Context, _, _ decimal.Decimal) ([]catalog.PharmacyInventory, error) {
	return s.inventories, nil
}

func (s *stubCatalogRepository) ListPharmacyNames(_ context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubCatalogRepository) ListMaskNames(_ context.Context) ([]string, error) {
	return nil, nil
}

type stubAccountRepository struct{}

func (s *stubAccountRepository) TopUsersByAmount(_ context.Context, _ int, _, _ *time.Time) ([]account.TopUser, error) {
	return nil, nil
}

func (s *stubAccountRepository) SummarizeTransactions(_ context.Context, _, _ *time.Time) (*account.TransactionSummary, error) {
	return &account.TransactionSummary{}, nil
}

func newTestQueries(catalogRepo *stubCatalogRepository) *use_cases.QueryUseCase {
	return use_cases.NewQueryUseCase(catalogRepo, &stubAccountRepository{}, logger.NewLogger())
}

func TestHandleOpenPharmacies(t *testing.T) {
	t.Run("returns slots", func(t *testing.T) {
		repo := &stubCatalogRepository{
			slots: []catalog.OpenSlot{
				{PharmacyID: 1, PharmacyName: "DFW Wellness", DayOfWeek: "Mon", OpenTime: "08:00", CloseTime: "17:00"},
			},
		}
		handler := NewPharmacyHandler(newTestQueries(repo), logger.NewLogger())

		req := httptest.NewRequest(http.MethodGet, "/pharmacies/open?day=Monday&time=09:00", nil)
		rec := httptest.NewRecorder()
		handler.HandleOpenPharmacies(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body []OpenPharmacyResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(body) != 1 || body[0].Name != "DFW Wellness" {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("malformed time yields 400", func(t *testing.T) {
		handler := NewPharmacyHandler(newTestQueries(&stubCatalogRepository{}), logger.NewLogger())

		req := httptest.NewRequest(http.MethodGet, "/pharmacies/open?time=25:61", nil)
		rec := httptest.NewRecorder()
		handler.HandleOpenPharmacies(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandleMaskCount(t *testing.T) {
	handler := NewPharmacyHandler(newTestQueries(&stubCatalogRepository{}), logger.NewLogger())

	t.Run("missing parameters yield 422", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/pharmacies/mask_count?min_price=5", nil)
		rec := httptest.NewRecorder()
		handler.HandleMaskCount(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("malformed number yields 422", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/pharmacies/mask_count?min_price=cheap&max_price=50&count=2&op=gt", nil)
		rec := httptest.NewRecorder()
		handler.HandleMaskCount(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("invalid operator yields 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/pharmacies/mask_count?min_price=5&max_price=50&count=2&op=ge", nil)
		rec := httptest.NewRecorder()
		handler.HandleMaskCount(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("reports mask counts", func(t *testing.T) {
		repo := &stubCatalogRepository{
			inventories: []catalog.PharmacyInventory{
				{
					Pharmacy: catalog.Pharmacy{ID: 1, Name: "Carepoint"},
					Masks: []catalog.Mask{
						{ID: 1, Name: "MaskT", Price: decimal.RequireFromString("9.50")},
						{ID: 2, Name: "Second Smile", Price: decimal.RequireFromString("15.00")},
					},
				},
			},
		}
		handler := NewPharmacyHandler(newTestQueries(repo), logger.NewLogger())

		req := httptest.NewRequest(http.MethodGet,
			"/pharmacies/mask_count?min_price=5&max_price=50&count=1&op=gt", nil)
		rec := httptest.NewRecorder()
		handler.HandleMaskCount(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body []PharmacyMaskCountResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(body) != 1 || body[0].MaskCount != 2 {
			t.Errorf("body = %+v", body)
		}
	})
}

func TestHandleListMasksUnknownPharmacy(t *testing.T) {
	handler := NewPharmacyHandler(newTestQueries(&stubCatalogRepository{}), logger.NewLogger())

	r := chi.NewRouter()
	r.Get("/pharmacies/{pharmacy_name}/masks", handler.HandleListMasks)

	req := httptest.NewRequest(http.MethodGet, "/pharmacies/Nowhere/masks", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleSearchEmptyKeyword(t *testing.T) {
	handler := NewSearchHandler(newTestQueries(&stubCatalogRepository{}), logger.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	handler.HandleSearch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTopUsersValidation(t *testing.T) {
	handler := NewUserHandler(newTestQueries(&stubCatalogRepository{}), logger.NewLogger())

	t.Run("malformed top yields 422", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/top_users?top=five", nil)
		rec := httptest.NewRecorder()
		handler.HandleTopUsers(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("zero top yields 422", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/top_users?top=0", nil)
		rec := httptest.NewRecorder()
		handler.HandleTopUsers(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("defaults apply", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/top_users", nil)
		rec := httptest.NewRecorder()
		handler.HandleTopUsers(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})
}

func TestHandlePurchaseMalformedBody(t *testing.T) {
	handler := NewPurchaseHandler(nil, logger.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/purchase", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.HandlePurchase(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
