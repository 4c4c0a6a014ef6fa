package dto

import (
	"net/http"

	"github.com/retailpos/backend/internal/domain/shared"
)

// Transport-level error codes. Domain errors carry their own codes
// (e.g. "Sale.PaymentShort"); these cover failures raised at the HTTP edge.
const (
	ErrCodeInternal     = "Request.Internal"
	ErrCodeBadRequest   = "Request.Invalid"
	ErrCodeValidation   = "Request.Validation"
	ErrCodeNotFound     = "Request.NotFound"
	ErrCodeUnauthorized = "Request.Unauthorized"
)

// kindHTTPStatus maps domain error kinds to HTTP status codes
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindNotFound:     http.StatusNotFound,
	shared.KindUnauthorized: http.StatusUnauthorized,
	shared.KindValidation:   http.StatusBadRequest,
	shared.KindConflict:     http.StatusConflict,
	shared.KindInternal:     http.StatusInternalServerError,
}

// HTTPStatusForKind returns the HTTP status code for a domain error kind.
// Unknown kinds read as internal errors.
func HTTPStatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
