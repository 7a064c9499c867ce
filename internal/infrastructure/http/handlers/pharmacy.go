package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Skye-project/phantom-mask/internal/application/use_cases"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/http/response"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type PharmacyHandler struct {
	queries *use_cases.QueryUseCase
	log     *logger.Logger
}

func NewPharmacyHandler(queries *use_cases.QueryUseCase, log *logger.Logger) *PharmacyHandler {
	return &PharmacyHandler{
		queries: queries,
		log:     log,
	}
}

type OpenPharmacyResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	DayOfWeek string `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type MaskResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type PharmacyMaskCountResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	MaskCount int            `json:"mask_count"`
	Masks     []MaskResponse `json:"masks"`
}

func (h *PharmacyHandler) HandleOpenPharmacies(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	timeOfDay := r.URL.Query().Get("time")

	slots, err := h.queries.OpenPharmacies(r.Context(), day, timeOfDay)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	result := make([]OpenPharmacyResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, OpenPharmacyResponse{
			ID:        slot.PharmacyID,
			Name:      slot.PharmacyName,
			DayOfWeek: slot.DayOfWeek,
			OpenTime:  slot.OpenTime,
			CloseTime: slot.CloseTime,
		})
	}

	response.WriteSuccess(w, result)
}

func (h *PharmacyHandler) HandleListMasks(w http.ResponseWriter, r *http.Request) {
	pharmacyName := chi.URLParam(r, "pharmacy_name")
	sortBy := r.URL.Query().Get("sort_by")
	order := r.URL.Query().Get("order")

	masks, err := h.queries.ListMasks(r.Context(), pharmacyName, sortBy, order)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	result := make([]MaskResponse, 0, len(masks))
	for _, mask := range masks {
		result = append(result, MaskResponse{
			Name:  mask.Name,
			Price: mask.Price.InexactFloat64(),
		})
	}

	response.WriteSuccess(w, result)
}

func (h *PharmacyHandler) HandleMaskCount(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fieldErrors := make(map[string]string)
	for _, param := range []string{"min_price", "max_price", "count", "op"} {
		if query.Get(param) == "" {
			fieldErrors[param] = "required"
		}
	}
	if len(fieldErrors) > 0 {
		response.WriteValidationError(w, "Missing required parameters", fieldErrors)
		return
	}

	minPrice, err := decimal.NewFromString(query.Get("min_price"))
	if err != nil {
		fieldErrors["min_price"] = "must be a number"
	}
	maxPrice, err := decimal.NewFromString(query.Get("max_price"))
	if err != nil {
		fieldErrors["max_price"] = "must be a number"
	}
	count, err := strconv.Atoi(query.Get("count"))
	if err != nil {
		fieldErrors["count"] = "must be an integer"
	}
	if len(fieldErrors) > 0 {
		response.WriteValidationError(w, "Malformed parameters", fieldErrors)
		return
	}

	pharmacies, err := h.queries.FilterByMaskCount(r.Context(), minPrice, maxPrice, count, query.Get("op"))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	result := make([]PharmacyMaskCountResponse, 0, len(pharmacies))
	for _, inv := range pharmacies {
		masks := make([]MaskResponse, 0, len(inv.Masks))
		for _, mask := range inv.Masks {
			masks = append(masks, MaskResponse{
				Name:  mask.Name,
				Price: mask.Price.InexactFloat64(),
			})
		}
		result = append(result, PharmacyMaskCountResponse{
			ID:        inv.Pharmacy.ID,
			Name:      inv.Pharmacy.Name,
			MaskCount: len(inv.Masks),
			Masks:     masks,
		})
	}

	response.WriteSuccess(w, result)
}
