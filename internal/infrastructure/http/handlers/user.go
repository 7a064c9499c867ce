package handlers

import (
	"net/http"
	"strconv"

	"github.com/Skye-project/phantom-mask/internal/application/use_cases"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/http/response"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type UserHandler struct {
	queries *use_cases.QueryUseCase
	log     *logger.Logger
}

func NewUserHandler(queries *use_cases.QueryUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{
		queries: queries,
		log:     log,
	}
}

type TopUserResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	CashBalance float64 `json:"cash_balance"`
	TotalAmount float64 `json:"total_amount"`
}

func (h *UserHandler) HandleTopUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	top := 5
	if raw := query.Get("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.WriteValidationError(w, "Malformed parameters", map[string]string{
				"top": "must be an integer",
			})
			return
		}
		top = parsed
	}

	users, err := h.queries.TopUsers(r.Context(), top, query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	result := make([]TopUserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, TopUserResponse{
			ID:          user.ID,
			Name:        user.Name,
			CashBalance: user.CashBalance.InexactFloat64(),
			TotalAmount: user.TotalAmount.InexactFloat64(),
		})
	}

	response.WriteSuccess(w, result)
}
