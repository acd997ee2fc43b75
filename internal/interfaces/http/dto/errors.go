package dto

import "net/http"

// Domain error codes surfaced over HTTP. The domain layer owns these
// strings; this map only decides the status line.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,

	"ALREADY_EXISTS":        http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,
	"INVALID_CREDENTIALS":   http.StatusUnauthorized,

	// validation-flavored domain codes
	"INVALID_SERIAL":      http.StatusBadRequest,
	"INVALID_SERIAL_TYPE": http.StatusBadRequest,
	"INVALID_PREMIUM":     http.StatusBadRequest,
	"INVALID_AGENT":       http.StatusBadRequest,
	"INVALID_POLICY":      http.StatusBadRequest,
	"INVALID_NAME":        http.StatusBadRequest,
	"INVALID_CATEGORY":    http.StatusBadRequest,
	"INVALID_ROLE":        http.StatusBadRequest,
	"INVALID_ATTACHMENT":  http.StatusBadRequest,

	// lifecycle violations
	"ALREADY_ISSUED":   http.StatusConflict,
	"ALREADY_DECLINED": http.StatusConflict,
	"NOT_ISSUED":       http.StatusUnprocessableEntity,
	"UNSCHEDULED":      http.StatusUnprocessableEntity,
	"INVALID_STATE":    http.StatusUnprocessableEntity,

	// serial provisioning
	"SERIAL_EXHAUSTED": http.StatusNotFound,
	"SERIAL_NOT_FOUND": http.StatusNotFound,

	"STORAGE_FAILURE": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
