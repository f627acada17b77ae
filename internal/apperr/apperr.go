// Package apperr defines the closed error taxonomy shared by the whole
// engine. Every failure the engine can produce is one *Error carrying
// exactly one Kind; callers never see raw panics or untyped errors.
package apperr

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category groups kinds for logging and coarse handling.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryNetwork    Category = "network"
	CategoryAPI        Category = "api"
	CategoryAuth       Category = "auth"
	CategoryProfit     Category = "profit_calculation"
	CategoryCart       Category = "cart"
	CategoryUnknown    Category = "unknown"
)

// Kind identifies one failure cause. The set is closed; anything that does
// not map to a concrete kind falls back to KindUnknown.
type Kind string

const (
	// Validation
	KindRequiredField   Kind = "required_field"
	KindInvalidEmail    Kind = "invalid_email"
	KindInvalidPassword Kind = "invalid_password"
	KindInvalidNumber   Kind = "invalid_number"
	KindNegativeNumber  Kind = "negative_number"
	KindInvalidImageURL Kind = "invalid_image_url"
	KindOutOfRange      Kind = "out_of_range"

	// Network
	KindConnectionFailed Kind = "connection_failed"
	KindNetworkTimeout   Kind = "network_timeout"

	// API
	KindUnauthorized        Kind = "unauthorized"
	KindTokenExpired        Kind = "token_expired"
	KindNotFound            Kind = "not_found"
	KindRateLimitExceeded   Kind = "rate_limit_exceeded"
	KindInternalServerError Kind = "internal_server_error"
	KindAPIUnavailable      Kind = "api_unavailable"

	// Auth
	KindLoginFailed    Kind = "login_failed"
	KindSessionExpired Kind = "session_expired"

	// Profit calculation
	KindCostGreaterThanPrice Kind = "cost_greater_than_price"
	KindInsufficientData     Kind = "insufficient_data"
	KindDegenerateSeries     Kind = "degenerate_series"

	// Cart
	KindInvalidQuantity Kind = "invalid_quantity"

	KindUnknown Kind = "unknown"
)

// Category returns the category a kind belongs to.
func (k Kind) Category() Category {
	switch k {
	case KindRequiredField, KindInvalidEmail, KindInvalidPassword,
		KindInvalidNumber, KindNegativeNumber, KindInvalidImageURL, KindOutOfRange:
		return CategoryValidation
	case KindConnectionFailed, KindNetworkTimeout:
		return CategoryNetwork
	case KindUnauthorized, KindTokenExpired, KindNotFound,
		KindRateLimitExceeded, KindInternalServerError, KindAPIUnavailable:
		return CategoryAPI
	case KindLoginFailed, KindSessionExpired:
		return CategoryAuth
	case KindCostGreaterThanPrice, KindInsufficientData, KindDegenerateSeries:
		return CategoryProfit
	case KindInvalidQuantity:
		return CategoryCart
	default:
		return CategoryUnknown
	}
}

// UserMessage is a ready-to-display bilingual message pair. The caller
// chooses which language to render; neither side is developer-facing.
type UserMessage struct {
	EN string `json:"en"`
	JA string `json:"ja"`
}

// Error is one occurrence of a failure. Construct it through the New*
// helpers so the status and user message always come from the taxonomy
// table; never mutate it after construction.
type Error struct {
	Kind        Kind
	ID          string // occurrence ID for log correlation
	Message     string // developer-facing, never shown to end users
	UserMessage UserMessage
	HTTPStatus  int
	Context     map[string]CtxValue // offending field/value, never secrets
	OccurredAt  time.Time
}

// Error implements the error interface with the developer-facing message.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Field returns the "field" context entry, if the error carries one.
func (e *Error) Field() string {
	if v, ok := e.Context["field"]; ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return ""
}

// LogTag returns the short console tag for this error's category.
func (e *Error) LogTag() string {
	switch e.Kind.Category() {
	case CategoryValidation:
		return "VALID"
	case CategoryNetwork:
		return "NET"
	case CategoryAPI:
		return "API"
	case CategoryAuth:
		return "AUTH"
	case CategoryProfit:
		return "PROFIT"
	case CategoryCart:
		return "CART"
	default:
		return "ERROR"
	}
}

func newError(kind Kind, message string, ctx map[string]CtxValue) *Error {
	entry := lookupMessage(kind)
	return &Error{
		Kind:        kind,
		ID:          uuid.NewString(),
		Message:     message,
		UserMessage: UserMessage{EN: entry.en, JA: entry.ja},
		HTTPStatus:  entry.status,
		Context:     ctx,
		OccurredAt:  time.Now().UTC(),
	}
}

// NewValidation builds a validation error for one field. The field name is
// recorded in the context so callers can key errors by field.
func NewValidation(kind Kind, field, message string, ctx map[string]CtxValue) *Error {
	if ctx == nil {
		ctx = make(map[string]CtxValue, 1)
	}
	ctx["field"] = Str(field)
	return newError(kind, message, ctx)
}

// NewNetwork builds a transport-level error (no HTTP status).
func NewNetwork(kind Kind, message string, ctx map[string]CtxValue) *Error {
	return newError(kind, message, ctx)
}

// NewAPI builds an API error. A positive status overrides the table default
// so passthrough statuses survive normalization.
func NewAPI(kind Kind, status int, message string, ctx map[string]CtxValue) *Error {
	e := newError(kind, message, ctx)
	if status > 0 {
		e.HTTPStatus = status
	}
	return e
}

// NewAuth builds an authentication error.
func NewAuth(kind Kind, message string, ctx map[string]CtxValue) *Error {
	return newError(kind, message, ctx)
}

// NewProfit builds a profit-calculation error.
func NewProfit(kind Kind, message string, ctx map[string]CtxValue) *Error {
	return newError(kind, message, ctx)
}

// NewCart builds a cart business-rule error.
func NewCart(kind Kind, message string, ctx map[string]CtxValue) *Error {
	return newError(kind, message, ctx)
}
