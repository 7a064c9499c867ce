package handlers

import (
	"net/http"

	"github.com/Skye-project/phantom-mask/internal/application/use_cases"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/http/response"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type TransactionHandler struct {
	queries *use_cases.QueryUseCase
	log     *logger.Logger
}

func NewTransactionHandler(queries *use_cases.QueryUseCase, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		queries: queries,
		log:     log,
	}
}

type TransactionSummaryResponse struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalAmount       float64 `json:"total_amount"`
}

func (h *TransactionHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	summary, err := h.queries.TransactionSummary(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, TransactionSummaryResponse{
		TotalTransactions: summary.TotalTransactions,
		TotalAmount:       summary.TotalAmount.InexactFloat64(),
	})
}
