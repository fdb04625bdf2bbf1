package capmarshal_test

import (
	"testing"

	"github.com/zoobzio/capmarshal"
)

func TestFutureLifecycle(t *testing.T) {
	f := capmarshal.NewFuture()
	if f.IsResolved() {
		t.Fatal("a fresh Future should not be resolved")
	}
	if _, ok := f.Value(); ok {
		t.Fatal("Value on a pending Future should report false")
	}

	f.Resolve(42)
	if !f.IsResolved() {
		t.Error("Future should be resolved after Resolve")
	}
	v, ok := f.Value()
	if !ok || v != 42 {
		t.Errorf("Value() = (%v, %v), want (42, true)", v, ok)
	}
}
