package dto

import (
	"net/http"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Insufficient stock is a 400: the request asked for more than the
// ledger can cover.
var errorCodeHTTPStatus = map[string]int{
	domain.CodeValidation:        http.StatusBadRequest,
	domain.CodeInsufficientStock: http.StatusBadRequest,
	domain.CodeNotFound:          http.StatusNotFound,
	domain.CodeAlreadyExists:     http.StatusConflict,
	domain.CodeUnauthorized:      http.StatusUnauthorized,
	domain.CodeForbidden:         http.StatusForbidden,
	domain.CodeUnavailable:       http.StatusServiceUnavailable,
	domain.CodeInternal:          http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
