package apperr

import "strconv"

type ctxKind uint8

const (
	ctxString ctxKind = iota
	ctxNumber
	ctxBool
)

// CtxValue is a closed tagged union over string, number, and bool. Error
// context stays assertable in tests instead of an opaque any-typed blob.
type CtxValue struct {
	kind ctxKind
	s    string
	n    float64
	b    bool
}

// Str wraps a string context value.
func Str(s string) CtxValue { return CtxValue{kind: ctxString, s: s} }

// Num wraps a float context value.
func Num(n float64) CtxValue { return CtxValue{kind: ctxNumber, n: n} }

// Int wraps an integer context value.
func Int(i int) CtxValue { return CtxValue{kind: ctxNumber, n: float64(i)} }

// Bool wraps a boolean context value.
func Bool(b bool) CtxValue { return CtxValue{kind: ctxBool, b: b} }

// AsString returns the string payload and whether the value holds one.
func (v CtxValue) AsString() (string, bool) { return v.s, v.kind == ctxString }

// AsNumber returns the numeric payload and whether the value holds one.
func (v CtxValue) AsNumber() (float64, bool) { return v.n, v.kind == ctxNumber }

// AsBool returns the boolean payload and whether the value holds one.
func (v CtxValue) AsBool() (bool, bool) { return v.b, v.kind == ctxBool }

// String renders the value for diagnostics output.
func (v CtxValue) String() string {
	switch v.kind {
	case ctxNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case ctxBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}
