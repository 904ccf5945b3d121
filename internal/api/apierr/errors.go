package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidWager       = "INVALID_WAGER"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeClaimCooldown      = "CLAIM_COOLDOWN"
	CodeEntryNotFound      = "ENTRY_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeNoDecisionPending  = "NO_DECISION_PENDING"
	CodeInvalidDecision    = "INVALID_DECISION"
	CodeSessionResolved    = "SESSION_RESOLVED"
	CodeSessionAborted     = "SESSION_ABORTED"
	CodeSessionNotResolved = "SESSION_NOT_RESOLVED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeAdminDisabled      = "ADMIN_DISABLED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Typed economy errors carry amounts worth surfacing
	var insufficient *model.InsufficientFundsError
	if errors.As(err, &insufficient) {
		return &httpError{http.StatusConflict, APIError{CodeInsufficientFunds, insufficient.Error()}}
	}
	var cooldown *model.ClaimCooldownError
	if errors.As(err, &cooldown) {
		return &httpError{http.StatusConflict, APIError{CodeClaimCooldown, cooldown.Error()}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidWager):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWager, "Wager must be a positive amount"}}
	case errors.Is(err, model.ErrEntryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEntryNotFound, "Player has no ledger entry"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrNoDecisionPending):
		return &httpError{http.StatusConflict, APIError{CodeNoDecisionPending, "No decision is pending for this session"}}
	case errors.Is(err, model.ErrInvalidDecision):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDecision, "Decision must be hit or stand"}}
	case errors.Is(err, model.ErrSessionResolved):
		return &httpError{http.StatusConflict, APIError{CodeSessionResolved, "Session is already resolved"}}
	case errors.Is(err, model.ErrSessionAborted):
		return &httpError{http.StatusGone, APIError{CodeSessionAborted, "Session was aborted"}}
	case errors.Is(err, model.ErrSessionNotResolved):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotResolved, "Session is not resolved yet"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid admin password"}}
	case errors.Is(err, auth.ErrAdminDisabled):
		return &httpError{http.StatusForbidden, APIError{CodeAdminDisabled, "Admin access is not configured"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
