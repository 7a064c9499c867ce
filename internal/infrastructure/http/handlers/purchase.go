package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Skye-project/phantom-mask/internal/application/use_cases"
	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
	"github.com/Skye-project/phantom-mask/internal/domain/purchase"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/http/response"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/monitoring"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type PurchaseHandler struct {
	purchaseUseCase *use_cases.PurchaseUseCase
	log             *logger.Logger
}

func NewPurchaseHandler(purchaseUseCase *use_cases.PurchaseUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUseCase: purchaseUseCase,
		log:             log,
	}
}

type PurchaseItemRequest struct {
	PharmacyID int64 `json:"pharmacy_id"`
	MaskID     int64 `json:"mask_id"`
	Quantity   int   `json:"quantity"`
}

type PurchaseRequest struct {
	UserID    int64                 `json:"user_id"`
	Purchases []PurchaseItemRequest `json:"purchases"`
}

type PurchaseItemDetailResponse struct {
	PharmacyID   int64   `json:"pharmacy_id"`
	PharmacyName string  `json:"pharmacy_name"`
	MaskID       int64   `json:"mask_id"`
	MaskName     string  `json:"mask_name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
}

type PurchaseResponse struct {
	Message          string                       `json:"message"`
	TotalCost        float64                      `json:"total_cost"`
	RemainingBalance float64                      `json:"remaining_balance"`
	Details          []PurchaseItemDetailResponse `json:"details"`
}

func (h *PurchaseHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, "Malformed request body", map[string]string{
			"body": "must be valid JSON",
		})
		return
	}

	items := make([]purchase.LineItem, 0, len(req.Purchases))
	for _, item := range req.Purchases {
		items = append(items, purchase.LineItem{
			PharmacyID: item.PharmacyID,
			MaskID:     item.MaskID,
			Quantity:   item.Quantity,
		})
	}

	order := purchase.Order{
		UserID: req.UserID,
		Items:  items,
	}

	monitoring.PurchaseAttemptsTotal.Inc()

	receipt, err := h.purchaseUseCase.ExecutePurchase(r.Context(), order)
	if err != nil {
		h.log.Error("Purchase failed",
			"user_id", req.UserID,
			"error", err.Error(),
		)
		monitoring.PurchaseFailureTotal.WithLabelValues(failureReason(err)).Inc()
		response.WriteDomainError(w, err)
		return
	}

	monitoring.PurchaseSuccessTotal.Inc()
	monitoring.PurchaseAmountTotal.Add(receipt.TotalCost.InexactFloat64())

	details := make([]PurchaseItemDetailResponse, 0, len(receipt.Details))
	for _, detail := range receipt.Details {
		details = append(details, PurchaseItemDetailResponse{
			PharmacyID:   detail.PharmacyID,
			PharmacyName: detail.PharmacyName,
			MaskID:       detail.MaskID,
			MaskName:     detail.MaskName,
			Quantity:     detail.Quantity,
			UnitPrice:    detail.UnitPrice.InexactFloat64(),
			TotalPrice:   detail.TotalPrice.InexactFloat64(),
		})
	}

	response.WriteSuccess(w, PurchaseResponse{
		Message:          "Purchase successful",
		TotalCost:        receipt.TotalCost.InexactFloat64(),
		RemainingBalance: receipt.RemainingBalance.InexactFloat64(),
		Details:          details,
	})
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domainErrors.ErrUserNotFound),
		errors.Is(err, domainErrors.ErrPharmacyNotFound),
		errors.Is(err, domainErrors.ErrMaskNotFound):
		return "not_found"
	case errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrNoItemsToOrder):
		return "invalid_input"
	default:
		return "internal"
	}
}
