package validate

import (
	"fmt"
	"strconv"

	"sedori-engine/internal/apperr"
	"sedori-engine/internal/engine"
)

// FormKind selects which rule table and cross-field checks apply.
type FormKind string

const (
	FormLogin    FormKind = "login"
	FormRegister FormKind = "register"
	FormProduct  FormKind = "product"
	FormCartItem FormKind = "cart_item"
)

// Limits holds the advisory thresholds used by the form pipelines.
type Limits struct {
	// LowMarginPct warns at or below this margin.
	LowMarginPct float64
	// HighMarginPct warns above this margin (too good to be true).
	HighMarginPct float64
	// MaxDescriptionLen warns on longer product descriptions.
	MaxDescriptionLen int
	// LargeQuantity warns on bigger cart quantities without blocking them.
	LargeQuantity int
}

// DefaultLimits returns the production thresholds.
func DefaultLimits() Limits {
	return Limits{
		LowMarginPct:      10,
		HighMarginPct:     80,
		MaxDescriptionLen: 1000,
		LargeQuantity:     99,
	}
}

// Outcome is the combined result of validating a whole form. Valid is true
// exactly when Errors is empty; warnings never block acceptance.
type Outcome struct {
	Valid    bool
	Errors   []*apperr.Error
	Warnings []string
	// Fields holds the accepted, normalized value per field so a caller can
	// feed the outcome straight back into the pipeline.
	Fields map[string]string
}

// ErrorFor returns the error recorded for a field, if any. Field errors are
// independent of field declaration order.
func (o Outcome) ErrorFor(field string) *apperr.Error {
	for _, e := range o.Errors {
		if e.Field() == field {
			return e
		}
	}
	return nil
}

// ValidateForm runs the pipeline for one form kind with default limits.
func ValidateForm(record map[string]string, kind FormKind) Outcome {
	return ValidateFormWithLimits(record, kind, DefaultLimits())
}

// ValidateFormWithLimits validates every applicable field independently
// (no short-circuit, so the caller sees all errors at once), then applies
// kind-specific cross-field rules.
func ValidateFormWithLimits(record map[string]string, kind FormKind, limits Limits) Outcome {
	o := Outcome{Fields: make(map[string]string)}

	switch kind {
	case FormLogin:
		o.checkChain(Required("email", record["email"]), func(v string) FieldOutcome {
			return Email("email", v)
		})
		o.checkChain(Required("password", record["password"]), func(v string) FieldOutcome {
			return MinLength("password", record["password"], MinPasswordLength)
		})

	case FormRegister:
		o.checkChain(Required("email", record["email"]), func(v string) FieldOutcome {
			return Email("email", v)
		})
		passwordOK := o.checkChain(Required("password", record["password"]), func(v string) FieldOutcome {
			return MinLength("password", record["password"], MinPasswordLength)
		})
		confirmOK := o.check(Required("password_confirm", record["password_confirm"]))
		if passwordOK && confirmOK && record["password"] != record["password_confirm"] {
			o.fail(apperr.NewValidation(
				apperr.KindInvalidPassword, "password_confirm", "password confirmation mismatch",
				map[string]apperr.CtxValue{"reason": apperr.Str("do not match")}))
		}

	case FormProduct:
		o.check(Required("name", record["name"]))
		costOut := NonNegativeNumber("cost", record["cost"])
		priceOut := NonNegativeNumber("price", record["price"])
		o.checkNumber(costOut)
		o.checkNumber(priceOut)
		o.check(ImageURL("image_url", record["image_url"]))
		o.Fields["description"] = record["description"]

		if costOut.Valid && priceOut.Valid {
			cost := engine.NewMoney(costOut.Number)
			price := engine.NewMoney(priceOut.Number)
			if err := engine.AssertProfitable(cost, price); err != nil {
				// Blocking, not advisory: a non-profitable pair must not be
				// submitted even though the live report still renders it.
				o.fail(err)
			} else if report := engine.ComputeProfit(cost, price); report.IsProfitable {
				if report.MarginPercent <= limits.LowMarginPct {
					o.warn(fmt.Sprintf("low margin: %s", engine.FormatPercent(report.MarginPercent)))
				}
				if report.MarginPercent > limits.HighMarginPct {
					o.warn(fmt.Sprintf("margin %s is unusually high, verify competitiveness", engine.FormatPercent(report.MarginPercent)))
				}
			}
		}
		if len([]rune(record["description"])) > limits.MaxDescriptionLen {
			o.warn(fmt.Sprintf("very long description (over %d characters)", limits.MaxDescriptionLen))
		}

	case FormCartItem:
		qty := Integer("quantity", record["quantity"])
		if !qty.Valid || qty.Number < 1 {
			o.fail(apperr.NewCart(
				apperr.KindInvalidQuantity, "quantity must be a positive integer",
				map[string]apperr.CtxValue{
					"field": apperr.Str("quantity"),
					"value": apperr.Str(record["quantity"]),
				}))
		} else {
			o.Fields["quantity"] = strconv.Itoa(int(qty.Number))
			if int(qty.Number) > limits.LargeQuantity {
				// Large but legal orders still go through.
				o.warn(fmt.Sprintf("large quantity (%d), double-check before ordering", int(qty.Number)))
			}
		}
	}

	o.Valid = len(o.Errors) == 0
	return o
}

// check records a field outcome: the accepted value or its error.
func (o *Outcome) check(fo FieldOutcome) bool {
	if !fo.Valid {
		o.Errors = append(o.Errors, fo.Err)
		return false
	}
	o.Fields[fo.Name] = fo.Value
	return true
}

// checkNumber is check for numeric rules; the stored value is the canonical
// number so re-validating the outcome is a no-op.
func (o *Outcome) checkNumber(fo FieldOutcome) bool {
	if !fo.Valid {
		o.Errors = append(o.Errors, fo.Err)
		return false
	}
	o.Fields[fo.Name] = strconv.FormatFloat(fo.Number, 'f', -1, 64)
	return true
}

// checkChain runs a follow-up rule only when the first accepted, keeping
// one error per field while still checking every field of the form.
func (o *Outcome) checkChain(first FieldOutcome, next func(accepted string) FieldOutcome) bool {
	if !first.Valid {
		o.Errors = append(o.Errors, first.Err)
		return false
	}
	return o.check(next(first.Value))
}

func (o *Outcome) fail(err *apperr.Error) {
	o.Errors = append(o.Errors, err)
}

func (o *Outcome) warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}
