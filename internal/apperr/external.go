package apperr

import "fmt"

// ExternalFailure describes an externally-observed failure before
// normalization: a transport error, a timeout, or an HTTP error status from
// an upstream API. Zero values mean "not observed".
type ExternalFailure struct {
	ConnRefused bool
	Timeout     bool
	StatusCode  int // 0 = no HTTP response
	HasRequest  bool
	Message     string
}

// FromExternal normalizes any externally-observed failure into one *Error.
// The dispatch is a fixed table; the KindUnknown fallback makes it total.
func FromExternal(raw ExternalFailure) *Error {
	ctx := map[string]CtxValue{}
	if raw.StatusCode > 0 {
		ctx["status_code"] = Int(raw.StatusCode)
	}

	switch {
	case raw.Timeout:
		return NewNetwork(KindNetworkTimeout, raw.Message, ctx)
	case raw.ConnRefused:
		return NewNetwork(KindConnectionFailed, raw.Message, ctx)
	}

	switch raw.StatusCode {
	case 401:
		return NewAPI(KindUnauthorized, 401, raw.Message, ctx)
	case 403:
		return NewAPI(KindTokenExpired, 403, raw.Message, ctx)
	case 404:
		return NewAPI(KindNotFound, 404, raw.Message, ctx)
	case 429:
		return NewAPI(KindRateLimitExceeded, 429, raw.Message, ctx)
	case 500:
		return NewAPI(KindInternalServerError, 500, raw.Message, ctx)
	}

	if raw.StatusCode > 0 {
		// Unrecognized status: keep it as-is so the caller can inspect it.
		return NewAPI(KindAPIUnavailable, raw.StatusCode, raw.Message, ctx)
	}

	if raw.HasRequest {
		// A request went out but nothing came back.
		return NewNetwork(KindConnectionFailed, raw.Message, ctx)
	}

	msg := raw.Message
	if msg == "" {
		msg = fmt.Sprintf("unclassified failure: %+v", raw)
	}
	return newError(KindUnknown, msg, ctx)
}
