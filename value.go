package capmarshal

import (
	"context"
	"math/big"
)

// PassStyle is the total classification tag assigned by the classifier
// (spec C1, §3, §4.1). Every legal value has exactly one PassStyle.
type PassStyle string

// Pass-style tags, per spec §3.
const (
	PassUnit       PassStyle = "unit"
	PassBoolean    PassStyle = "boolean"
	PassNumeric    PassStyle = "numeric"
	PassBigInt     PassStyle = "bigint"
	PassString     PassStyle = "string"
	PassSymbol     PassStyle = "symbol"
	PassCopyRecord PassStyle = "copyRecord"
	PassCopyArray  PassStyle = "copyArray"
	PassCopyError  PassStyle = "copyError"
	PassRemote     PassStyle = "remote"
	PassFuture     PassStyle = "future"
)

// sentinelField is the reserved field name ("qclass" in spec prose) used to
// discriminate encoded envelopes from natural records. Fixed, repository
// wide, per spec §6.
const sentinelField = "@qclass"

// Record is an opaque bag of named fields (spec §3's "record"). It is the
// copyRecord pass-style's Go representation: string-keyed, no symbol keys,
// all values enumerable by construction (a Go map has no hidden keys).
//
// An empty Record is remote-style, not copyRecord (spec invariant in §3):
// the empty bag exists only to support identity comparison and is treated
// like any other unregistered object under classification.
type Record map[string]any

// Array is an ordered sequence of values (spec §3's "sequence"). It is the
// copyArray pass-style's Go representation: a Go slice has no holes, no
// accessor properties, and no non-indexed fields by construction.
type Array []any

// Symbol is a well-known iteration marker. Spec §3/§4.1 admits exactly one:
// AsyncIterator. Any other Symbol value fails classification
// (ErrForbiddenSymbol) — the type exists so implementations (and tests) can
// construct the forbidden case without reaching into package internals.
type Symbol string

// AsyncIterator is the one admissible well-known symbol (spec's
// "@@asyncIterator").
const AsyncIterator Symbol = "@@asyncIterator"

// undefinedType is the Go representation of JS's "absence distinct from
// unit" (spec §4.4's "absence" row). See DESIGN.md Open Question #3: it
// classifies as PassUnit, like nil, but the encoder emits a different
// sentinel for its specific identity.
type undefinedType struct{}

func (undefinedType) String() string { return "undefined" }

// Undefined is the package's singleton absence value. Passing Undefined
// anywhere a value is expected encodes as {"@qclass":"undefined"}; passing
// Go nil encodes as the literal null. Both classify as PassUnit.
var Undefined = undefinedType{}

// NamedError lets a copy-error value supply a name distinct from the
// generic "Error" (spec §4.4's error envelope `name` field). Plain Go
// errors (errors.New, fmt.Errorf, ...) classify as copyError too, with name
// defaulted to "Error".
type NamedError interface {
	error
	ErrorName() string
}

// CapError is the Go representation of spec's "error object": an immutable
// value carrying only a name and a message — no stack trace, no cause
// chain (spec §4.3: "Error objects are cloned preserving name and message
// only; stack traces are dropped").
type CapError struct {
	Name    string
	Message string
}

// NewError constructs a CapError. name should name a standard error class
// recognized by the decoder's error-class whitelist (see decoder.go);
// unrecognized names collapse to the base error class on the far side
// (spec §9, "Error reconstruction").
func NewError(name, message string) *CapError {
	return &CapError{Name: name, Message: message}
}

func (e *CapError) Error() string     { return e.Message }
func (e *CapError) ErrorName() string { return e.Name }

// Operation is a remotely invokable function. Spec §3 requires a
// remote-style object's every own property be an operation; modeling
// operations as named Go func values (rather than letting arbitrary data
// fields slip in) makes that invariant structurally unrepresentable to
// violate, rather than merely checked.
type Operation func(ctx context.Context, args ...any) (any, error)

// BigInt is an alias for the arbitrary-precision integer pass-style's Go
// representation (spec's "bigint"). No third-party bignum library appears
// anywhere in the example pack, so this is the one stdlib-only choice in
// the core (see DESIGN.md).
type BigInt = big.Int
