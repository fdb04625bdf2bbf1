package capmarshal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/capmarshal"
)

func TestDeepCopyPreservesSharedSubstructure(t *testing.T) {
	shared := capmarshal.Record{"v": 1}
	root := capmarshal.Record{"x": shared, "y": shared}

	cloned, err := capmarshal.DeepCopy(root)
	if err != nil {
		t.Fatalf("DeepCopy: %v", err)
	}

	clone, ok := cloned.(capmarshal.Record)
	if !ok {
		t.Fatalf("clone is %T, want Record", cloned)
	}
	cx := clone["x"].(capmarshal.Record)
	cy := clone["y"].(capmarshal.Record)

	cx["mutated"] = true
	if _, present := cy["mutated"]; !present {
		t.Error("cloned x and y should still be the same underlying Record (shared substructure not preserved)")
	}

	shared["other"] = "mutate original"
	if _, present := cx["other"]; present {
		t.Error("clone should not alias the original Record")
	}
}

func TestDeepCopyClonesArraysAndErrors(t *testing.T) {
	root := capmarshal.Array{1, "two", capmarshal.NewError("TypeError", "bad")}
	cloned, err := capmarshal.DeepCopy(root)
	if err != nil {
		t.Fatalf("DeepCopy: %v", err)
	}
	arr := cloned.(capmarshal.Array)
	if len(arr) != 3 {
		t.Fatalf("len = %d, want 3", len(arr))
	}
	ce, ok := arr[2].(*capmarshal.CapError)
	if !ok {
		t.Fatalf("arr[2] is %T, want *CapError", arr[2])
	}
	if ce.Name != "TypeError" || ce.Message != "bad" {
		t.Errorf("cloned error = %+v", ce)
	}
}

func TestDeepCopyRejectsRemote(t *testing.T) {
	r, err := capmarshal.Far("Thing", map[string]capmarshal.Operation{
		"op": func(ctx context.Context, args ...any) (any, error) { return nil, nil },
	})
	if err != nil {
		t.Fatalf("Far: %v", err)
	}

	_, err = capmarshal.DeepCopy(capmarshal.Record{"r": r})
	if !errors.Is(err, capmarshal.ErrCopyCrossesCapability) {
		t.Fatalf("expected ErrCopyCrossesCapability, got %v", err)
	}
}

func TestDeepCopyRejectsFuture(t *testing.T) {
	_, err := capmarshal.DeepCopy(capmarshal.NewFuture())
	if !errors.Is(err, capmarshal.ErrCopyCrossesCapability) {
		t.Fatalf("expected ErrCopyCrossesCapability, got %v", err)
	}
}
