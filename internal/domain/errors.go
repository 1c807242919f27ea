package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrProfileMissing signals a ledger row referencing a profile that no
	// longer exists. This is data corruption, never silently skipped.
	ErrProfileMissing = errors.New("referenced profile no longer exists")
)

// ─── Coded Errors ───────────────────────────────────────────────────────────
// Error is the business-error taxonomy carried from the core to the HTTP
// boundary: Unauthorized, NotFound, BadRequest, ServerError. The boundary
// renders it as {status, error: {code, message, detail?}}.

// Error is a coded business error with an HTTP status.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Status  int    `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes coded errors comparable by code via errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Unauthorized builds a 401 for an identity or ownership mismatch.
func Unauthorized(detail string) *Error {
	return &Error{Code: "Unauthorized", Message: "Unauthorized", Detail: detail, Status: http.StatusUnauthorized}
}

// NotFound builds a 404 for an absent entity.
func NotFound(message string) *Error {
	return &Error{Code: "NotFound", Message: message, Status: http.StatusNotFound}
}

// BadRequest builds a 400 for a business-rule violation.
func BadRequest(detail string) *Error {
	return &Error{Code: "BadRequest", Message: "Invalid request", Detail: detail, Status: http.StatusBadRequest}
}

// InvalidParam builds a 400 for a malformed request parameter.
func InvalidParam(detail string) *Error {
	return &Error{Code: "BadRequest", Message: "Invalid parameter", Detail: detail, Status: http.StatusBadRequest}
}

// ParamMissing builds a 400 for an absent required parameter.
func ParamMissing(message string) *Error {
	return &Error{Code: "ParamMissing", Message: message, Status: http.StatusBadRequest}
}

// ServerError builds a 500. Internals are logged at the boundary, never
// leaked to the caller.
func ServerError() *Error {
	return &Error{Code: "ServerError", Message: "Internal Server Error", Status: http.StatusInternalServerError}
}

// AsError unwraps err to a coded *Error if it carries one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
