// Package capmarshaltest provides test fixtures for packages that build on
// capmarshal: a no-op Remotable target, a canned Future, a round-trip
// assertion helper, and a deterministic cycle-policy harness.
package capmarshaltest

import (
	"context"
	"reflect"
	"testing"

	"github.com/zoobzio/capmarshal"
)

// NoOpRemotable returns a *capmarshal.Remote made with capmarshal.Far, so
// its interface tag is "Alleged: " followed by iface, whose operations
// are the given names, each returning (nil, nil) regardless of arguments.
// Useful wherever a test needs a remote-style value but does not care
// about its behavior, only its identity and interface tag.
func NoOpRemotable(t *testing.T, iface string, opNames ...string) *capmarshal.Remote {
	t.Helper()

	ops := make(map[string]capmarshal.Operation, len(opNames))
	for _, name := range opNames {
		ops[name] = func(ctx context.Context, args ...any) (any, error) { return nil, nil }
	}

	r, err := capmarshal.Far(iface, ops)
	if err != nil {
		t.Fatalf("capmarshaltest.NoOpRemotable: %v", err)
	}
	return r
}

// CannedFuture returns a *capmarshal.Future already resolved to value, for
// tests that need a future-shaped value without exercising resolution
// timing.
func CannedFuture(value any) *capmarshal.Future {
	f := capmarshal.NewFuture()
	f.Resolve(value)
	return f
}

// AssertRoundTrip encodes v with m, decodes the result under policy, and
// fails the test if the decoded value is not deeply equal to want. It
// returns the decoded value for further assertions.
func AssertRoundTrip(t *testing.T, m *capmarshal.Marshal, v any, policy capmarshal.CyclePolicy, want any) any {
	t.Helper()

	cd, err := m.Encode(v)
	if err != nil {
		t.Fatalf("capmarshaltest.AssertRoundTrip: Encode: %v", err)
	}

	got, err := m.Decode(cd, policy)
	if err != nil {
		t.Fatalf("capmarshaltest.AssertRoundTrip: Decode: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch: got %#v, want %#v", got, want)
	}
	return got
}

// CyclePolicyHarness runs the same Capdata through Decode under each of the
// three cycle policies and reports which ones succeeded, for tests that
// want to assert behavior differs (or doesn't) across all three in one
// place rather than three near-duplicate test functions.
type CyclePolicyHarness struct {
	AllowCycles  error
	WarnOfCycles error
	ForbidCycles error
}

// RunCyclePolicyHarness decodes cd under all three cycle policies.
func RunCyclePolicyHarness(m *capmarshal.Marshal, cd capmarshal.Capdata) CyclePolicyHarness {
	var h CyclePolicyHarness
	_, h.AllowCycles = m.Decode(cd, capmarshal.AllowCycles)
	_, h.WarnOfCycles = m.Decode(cd, capmarshal.WarnOfCycles)
	_, h.ForbidCycles = m.Decode(cd, capmarshal.ForbidCycles)
	return h
}
