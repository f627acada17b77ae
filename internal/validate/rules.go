// Package validate checks raw form input against semantic rules and
// composes per-field checks into whole-form pipelines. Field errors
// accumulate so a form can be corrected in one round trip; warnings advise
// but never block.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"sedori-engine/internal/apperr"
)

// MinPasswordLength is the floor for password-class fields.
const MinPasswordLength = 6

// FieldOutcome is the result of validating one field: either the accepted
// (normalized) value or exactly one error.
type FieldOutcome struct {
	Valid  bool
	Name   string
	Value  string  // normalized input
	Number float64 // populated by numeric rules
	Err    *apperr.Error
}

func accept(name, value string) FieldOutcome {
	return FieldOutcome{Valid: true, Name: name, Value: value}
}

func acceptNumber(name, value string, n float64) FieldOutcome {
	return FieldOutcome{Valid: true, Name: name, Value: value, Number: n}
}

func reject(name string, err *apperr.Error) FieldOutcome {
	return FieldOutcome{Name: name, Err: err}
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Required rejects empty (or whitespace-only) input.
func Required(name, raw string) FieldOutcome {
	v := strings.TrimSpace(raw)
	if v == "" {
		return reject(name, apperr.NewValidation(
			apperr.KindRequiredField, name, fmt.Sprintf("%s is empty", name), nil))
	}
	return accept(name, v)
}

// Email checks the basic local@domain.tld shape. It does not try to verify
// deliverability.
func Email(name, raw string) FieldOutcome {
	v := strings.TrimSpace(raw)
	if !emailShape.MatchString(v) {
		return reject(name, apperr.NewValidation(
			apperr.KindInvalidEmail, name, fmt.Sprintf("%s does not look like an email address", name),
			map[string]apperr.CtxValue{"value": apperr.Str(v)}))
	}
	return accept(name, v)
}

// MinLength enforces a password-class minimum length.
func MinLength(name, raw string, min int) FieldOutcome {
	if len([]rune(raw)) < min {
		return reject(name, apperr.NewValidation(
			apperr.KindInvalidPassword, name,
			fmt.Sprintf("%s is shorter than %d characters", name, min),
			map[string]apperr.CtxValue{"min_length": apperr.Int(min)}))
	}
	return accept(name, raw)
}

// NonNegativeNumber sanitizes first, then rejects negatives. Unparseable
// input has already become 0 by the time the rule looks at it.
func NonNegativeNumber(name, raw string) FieldOutcome {
	n := SanitizeNumber(raw)
	if n < 0 {
		return reject(name, apperr.NewValidation(
			apperr.KindNegativeNumber, name, fmt.Sprintf("%s is negative", name),
			map[string]apperr.CtxValue{"value": apperr.Num(n)}))
	}
	return acceptNumber(name, strings.TrimSpace(raw), n)
}

// Integer rejects fractional numeric input.
func Integer(name, raw string) FieldOutcome {
	if !IsIntegral(raw) {
		return reject(name, apperr.NewValidation(
			apperr.KindInvalidNumber, name, fmt.Sprintf("%s is not a whole number", name),
			map[string]apperr.CtxValue{"value": apperr.Str(strings.TrimSpace(raw))}))
	}
	n := SanitizeInteger(raw)
	return acceptNumber(name, strings.TrimSpace(raw), float64(n))
}

// InRange sanitizes first, then enforces a business-rule range on the
// numeric value (inclusive on both ends).
func InRange(name, raw string, min, max float64) FieldOutcome {
	n := SanitizeNumber(raw)
	if n < min || n > max {
		return reject(name, apperr.NewValidation(
			apperr.KindOutOfRange, name,
			fmt.Sprintf("%s = %v is outside [%v, %v]", name, n, min, max),
			map[string]apperr.CtxValue{
				"value": apperr.Num(n),
				"min":   apperr.Num(min),
				"max":   apperr.Num(max),
			}))
	}
	return acceptNumber(name, strings.TrimSpace(raw), n)
}

// ImageURL accepts an empty value (the field is optional) or an http(s) URL
// whose path ends in a known image extension.
func ImageURL(name, raw string) FieldOutcome {
	v := strings.TrimSpace(raw)
	if v == "" {
		return accept(name, v)
	}
	invalid := func() FieldOutcome {
		return reject(name, apperr.NewValidation(
			apperr.KindInvalidImageURL, name, fmt.Sprintf("%s is not an image URL", name),
			map[string]apperr.CtxValue{"value": apperr.Str(v)}))
	}
	lowered := strings.ToLower(v)
	if !strings.HasPrefix(lowered, "http://") && !strings.HasPrefix(lowered, "https://") {
		return invalid()
	}
	// Extension check ignores any query string.
	if i := strings.IndexByte(lowered, '?'); i >= 0 {
		lowered = lowered[:i]
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return accept(name, v)
		}
	}
	return invalid()
}
