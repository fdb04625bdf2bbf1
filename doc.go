// Package capmarshal provides a capability-aware object marshaler.
//
// It classifies arbitrary values into one of eleven pass-styles, encodes a
// value graph into a canonical textual body plus an ordered slot table, and
// decodes that form back into an equivalent graph, translating opaque
// capability handles into local stand-ins via caller-supplied translators.
//
// # Pass-styles
//
// Every value classifies as exactly one of: unit, boolean, numeric, bigint,
// string, symbol, copyRecord, copyArray, copyError, remote, or future. See
// Classify.
//
// # Basic usage
//
//	m := capmarshal.NewMarshal(nil, nil, capmarshal.WithMarshalName("demo"))
//	cd, err := m.Encode(capmarshal.Record{"n": 3})
//	v, err := m.Decode(cd, capmarshal.ForbidCycles)
//
// Remote-style objects and futures cross the boundary by slot, not by
// value:
//
//	counter, _ := capmarshal.Far("Counter", map[string]capmarshal.Operation{
//		"increment": func(ctx context.Context, args ...any) (any, error) { return nil, nil },
//	})
//	cd, _ := m.Encode(counter)
//
// Non-primitive values must be hardened before encoding; Encode does this
// automatically for its root. See Harden.
package capmarshal
