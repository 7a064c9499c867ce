package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrPharmacyNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Pharmacy not found",
	},
	domainErrors.ErrUserNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "User not found",
	},
	domainErrors.ErrMaskNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Mask not found",
	},
	domainErrors.ErrInvalidTime: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Invalid time format",
	},
	domainErrors.ErrInvalidDate: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Invalid date format",
	},
	domainErrors.ErrInvalidQuantity: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Quantity must be positive",
	},
	domainErrors.ErrInvalidSortField: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Invalid sort field",
	},
	domainErrors.ErrInvalidOrder: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Invalid sort order",
	},
	domainErrors.ErrInvalidOperator: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Invalid comparison operator",
	},
	domainErrors.ErrInvalidTopLimit: {
		HTTPStatus: http.StatusUnprocessableEntity,
		Status:     StatusValidationError,
		Message:    "top must be at least 1",
	},
	domainErrors.ErrEmptyKeyword: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Keyword must not be empty",
	},
	domainErrors.ErrNoItemsToOrder: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "No items to purchase",
	},
	domainErrors.ErrMissingParameter: {
		HTTPStatus: http.StatusUnprocessableEntity,
		Status:     StatusValidationError,
		Message:    "Missing required parameter",
	},
	domainErrors.ErrInsufficientFunds: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Insufficient balance",
	},
	domainErrors.ErrTransactionFailed: {
		HTTPStatus: http.StatusInternalServerError,
		Status:     StatusInternalError,
		Message:    "Transaction failed",
	},
}

// MapDomainError resolves a (possibly wrapped) domain error to its transport
// status. The wrapped detail names the offending entity.
func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
