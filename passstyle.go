package capmarshal

import (
	"math"
	"reflect"
)

// Classify inspects v and returns its PassStyle, or a *ClassifyError if v
// fits no legal pass-style (spec C1, §4.1). Classify is total: every call
// returns exactly one of the two.
//
// Decision order follows spec §4.1 exactly; see the numbered comments
// below.
func Classify(v any) (PassStyle, error) {
	return classifyAt(v, "$")
}

func classifyAt(v any, path string) (PassStyle, error) {
	// 1. Primitive type test.
	if v == nil {
		return PassUnit, nil
	}
	switch vv := v.(type) {
	case undefinedType:
		return PassUnit, nil // DESIGN.md Open Question #3
	case bool:
		return PassBoolean, nil
	case string:
		return PassString, nil
	case *BigInt:
		if vv == nil {
			return "", newClassifyError(ErrNotImmutable, path)
		}
		return PassBigInt, nil
	case Symbol:
		if vv != AsyncIterator {
			return "", newClassifyError(ErrForbiddenSymbol, path)
		}
		return PassSymbol, nil
	}

	if isNumericKind(v) {
		return PassNumeric, nil
	}

	// 2. Registered remote lookup.
	if r, ok := v.(*Remote); ok {
		if r == nil {
			return "", newClassifyError(ErrNotRemotable, path)
		}
		if _, registered := getInterfaceOf(r); registered {
			return PassRemote, nil
		}
		// A *Remote always registers itself in Remotable(); an
		// unregistered one can only mean the caller fabricated the
		// struct directly, bypassing the constructor.
		return "", newClassifyError(ErrNotRemotable, path)
	}

	// 4. Reserved field check (applies to Records before anything else).
	if rec, ok := v.(Record); ok {
		if _, reserved := rec[sentinelField]; reserved {
			return "", newClassifyError(ErrReservedField, path)
		}
	}

	// 5. Immutability precondition. Primitives never reach here.
	if !IsHardened(v) {
		return "", newClassifyError(ErrNotImmutable, path)
	}

	// 6. Future check.
	if fut, ok := v.(*Future); ok {
		if fut == nil {
			return "", newClassifyError(ErrNotRemotable, path)
		}
		return PassFuture, nil
	}

	// 7. Thenable rejection: a record exposing a "then" field is always
	// a forbidden thenable in this domain, since a legitimate pending
	// value must be a *Future (spec's "iteration-continuation operation"
	// not a Future fails here).
	if rec, ok := v.(Record); ok {
		if _, hasThen := rec["then"]; hasThen {
			return "", newClassifyError(ErrThenable, path)
		}
	}

	// 8. Error shape.
	if _, ok := v.(error); ok {
		return PassCopyError, nil
	}

	// 9. Array shape.
	if _, ok := v.(Array); ok {
		return PassCopyArray, nil
	}

	// 10. Record shape (non-empty; empty Record falls through to the
	// remote fallback per the §3 invariant).
	if rec, ok := v.(Record); ok {
		if len(rec) > 0 {
			return PassCopyRecord, nil
		}
	}

	// Bare functions are rejected outright rather than attempted as
	// remote, per spec §4.1 ("Operations/functions... are rejected").
	if reflect.ValueOf(v).Kind() == reflect.Func {
		return "", newClassifyError(ErrBareFunction, path)
	}

	// 11. Structural remote validation fallback.
	if validateRemoteShape(v) {
		return PassRemote, nil
	}
	return "", newClassifyError(ErrMalformedShape, path)
}

// isNumericKind reports whether v's underlying kind is any Go numeric
// type. Using reflect.Kind (rather than a type switch over every sized
// int/float type) mirrors the dispatch-by-kind style cereal/processor.go
// uses to classify struct fields.
func isNumericKind(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// isUnrepresentable reports whether f is one of the three unrepresentable
// numerics spec §4.4 special-cases (NaN, +Infinity, -Infinity).
func isUnrepresentable(f float64) (qclass string, ok bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	default:
		return "", false
	}
}

// validateRemoteShape implements the spec §4.1 step-11 structural fallback:
// a value with no registered tag can still classify as remote if it is
// shaped like one. In this Go model the only such shape is the empty
// Record (spec §3: "the empty record is remote-style"); every other
// unregistered non-primitive is rejected, since this domain represents
// "operation-typed own properties" structurally via *Remote, not via ad
// hoc struct shape sniffing.
func validateRemoteShape(v any) bool {
	rec, ok := v.(Record)
	return ok && len(rec) == 0
}
