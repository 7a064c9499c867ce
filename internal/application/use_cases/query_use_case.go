package use_cases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/application/ports"
	"github.com/Skye-project/phantom-mask/internal/domain/account"
	"github.com/Skye-project/phantom-mask/internal/domain/catalog"
	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
	"github.com/Skye-project/phantom-mask/internal/pkg/hours"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

const (
	SortByName  = "name"
	SortByPrice = "price"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	OpGreaterThan = "gt"
	OpLessThan    = "lt"
)

type QueryUseCase struct {
	catalogRepo ports.CatalogRepository
	accountRepo ports.AccountRepository
	log         *logger.Logger
}

func NewQueryUseCase(
	catalogRepo ports.CatalogRepository,
	accountRepo ports.AccountRepository,
	log *logger.Logger,
) *QueryUseCase {
	return &QueryUseCase{
		catalogRepo: catalogRepo,
		accountRepo: accountRepo,
		log:         log,
	}
}

// OpenPharmacies returns pharmacy/interval pairs open on the given day and/or
// at the given "HH:MM" time. Day aliases such as "Monday" normalize to the
// canonical code before filtering; empty arguments mean no filter.
func (uc *QueryUseCase) OpenPharmacies(ctx context.Context, day, timeOfDay string) ([]catalog.OpenSlot, error) {
	if day != "" {
		day = hours.NormalizeDay(day)
	}

	if timeOfDay != "" {
		parsed, ok := hours.ParseClock(timeOfDay)
		if !ok {
			return nil, fmt.Errorf("time %q: %w", timeOfDay, domainErrors.ErrInvalidTime)
		}
		timeOfDay = parsed
	}

	return uc.catalogRepo.FindOpenSlots(ctx, day, timeOfDay)
}

// ListMasks lists a pharmacy's masks sorted by name or price in either order.
func (uc *QueryUseCase) ListMasks(ctx context.Context, pharmacyName, sortBy, order string) ([]catalog.Mask, error) {
	if sortBy == "" {
		sortBy = SortByName
	}
	if order == "" {
		order = OrderAsc
	}

	if sortBy != SortByName && sortBy != SortByPrice {
		return nil, fmt.Errorf("sort_by %q: %w", sortBy, domainErrors.ErrInvalidSortField)
	}
	if order != OrderAsc && order != OrderDesc {
		return nil, fmt.Errorf("order %q: %w", order, domainErrors.ErrInvalidOrder)
	}

	pharmacy, err := uc.catalogRepo.GetPharmacyByName(ctx, pharmacyName)
	if err != nil {
		return nil, err
	}

	return uc.catalogRepo.GetMasksByPharmacy(ctx, pharmacy.ID, sortBy, order)
}

// FilterByMaskCount returns pharmacies whose count of masks priced within
// [minPrice, maxPrice] is strictly greater (op=gt) or strictly less (op=lt)
// than count, each with its matching mask subset.
func (uc *QueryUseCase) FilterByMaskCount(ctx context.Context, minPrice, maxPrice decimal.Decimal, count int, op string) ([]catalog.PharmacyInventory, error) {
	if op != OpGreaterThan && op != OpLessThan {
		return nil, fmt.Errorf("op %q: %w", op, domainErrors.ErrInvalidOperator)
	}

	inventories, err := uc.catalogRepo.GetInventoriesInPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, err
	}

	result := make([]catalog.PharmacyInventory, 0, len(inventories))
	for _, inv := range inventories {
		matched := len(inv.Masks)
		if (op == OpGreaterThan && matched > count) || (op == OpLessThan && matched < count) {
			result = append(result, inv)
		}
	}

	return result, nil
}

// Search ranks pharmacies and masks whose names contain keyword, best
// coverage first.
func (uc *QueryUseCase) Search(ctx context.Context, keyword string) ([]catalog.SearchHit, error) {
	if keyword == "" {
		return nil, domainErrors.ErrEmptyKeyword
	}

	pharmacyNames, err := uc.catalogRepo.ListPharmacyNames(ctx)
	if err != nil {
		return nil, err
	}

	maskNames, err := uc.catalogRepo.ListMaskNames(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.RankNames(keyword, pharmacyNames, maskNames), nil
}

// TopUsers ranks the top spenders over an optional date range. The end date's
// whole day is included.
func (uc *QueryUseCase) TopUsers(ctx context.Context, top int, startDate, endDate string) ([]account.TopUser, error) {
	if top < 1 {
		return nil, fmt.Errorf("top %d: %w", top, domainErrors.ErrInvalidTopLimit)
	}

	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	users, err := uc.accountRepo.TopUsersByAmount(ctx, top, from, to)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].TotalAmount = users[i].TotalAmount.Round(2)
	}

	return users, nil
}

// TransactionSummary totals purchase histories over an optional date range,
// independent of user.
func (uc *QueryUseCase) TransactionSummary(ctx context.Context, startDate, endDate string) (*account.TransactionSummary, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary, err := uc.accountRepo.SummarizeTransactions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary.TotalAmount = summary.TotalAmount.Round(2)
	return summary, nil
}
