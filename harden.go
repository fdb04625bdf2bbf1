package capmarshal

import (
	"reflect"
	"sync"
)

// hardenRegistry tracks which non-primitive identities have passed a
// Harden scan. It is process-wide and append-only, mirroring the
// sync.RWMutex double-checked-cache pattern cereal/registry.go uses for
// its type-plan cache, generalized from a reflect.Type key to an object
// identity key.
var hardenRegistry = struct {
	mu   sync.RWMutex
	seen map[uintptr]bool
}{seen: make(map[uintptr]bool)}

// Harden performs the immutability + cycle-freedom pre-pass spec §9
// describes: "implementations must enforce the immutability precondition
// before traversal begins — scanning once, then encoding — and may assume
// no cycles during encode." It walks v's non-primitive substructure once,
// failing with a *ClassifyError for ErrNotImmutable (its Cause an
// *InvariantError, since a cycle at this stage means the input violated its
// own precondition) if it revisits a node still mid-visit, and otherwise
// marks every non-primitive
// identity it reaches as hardened for later IsHardened checks.
//
// Marshal.Encode calls Harden on its root automatically; callers normally
// never need to call this directly.
func Harden(v any) error {
	visiting := make(map[uintptr]bool)
	return hardenWalk(v, visiting)
}

func hardenWalk(v any, visiting map[uintptr]bool) error {
	id, isRef, ok := identityOf(v)
	if !isRef {
		return nil // primitive: nothing to harden
	}
	if !ok {
		return nil // nil reference value, nothing to walk
	}

	hardenRegistry.mu.RLock()
	already := hardenRegistry.seen[id]
	hardenRegistry.mu.RUnlock()
	if already {
		return nil
	}
	if visiting[id] {
		return &ClassifyError{
			Err:   ErrNotImmutable,
			Cause: newInvariantError("cycle encountered while hardening input; encode requires acyclic, pre-hardened graphs"),
		}
	}
	visiting[id] = true

	switch rv := v.(type) {
	case Record:
		for _, field := range rv {
			if err := hardenWalk(field, visiting); err != nil {
				return err
			}
		}
	case Array:
		for _, elem := range rv {
			if err := hardenWalk(elem, visiting); err != nil {
				return err
			}
		}
	default:
		// *Remote, *Future, *CapError, *big.Int: opaque leaves from
		// Harden's point of view — their own invariants are enforced
		// elsewhere (Remotable's construction-time checks, CapError's
		// plain-string fields).
	}

	delete(visiting, id)

	hardenRegistry.mu.Lock()
	hardenRegistry.seen[id] = true
	hardenRegistry.mu.Unlock()
	return nil
}

// IsHardened reports whether v has passed a Harden scan. Primitives are
// always considered hardened (they have no mutable substructure to guard).
func IsHardened(v any) bool {
	id, isRef, ok := identityOf(v)
	if !isRef || !ok {
		return true
	}
	hardenRegistry.mu.RLock()
	defer hardenRegistry.mu.RUnlock()
	return hardenRegistry.seen[id]
}

// freezeDecoded marks every non-primitive node in a just-revived graph as
// hardened (spec §4.5: "After revival, the entire returned graph is
// frozen"). Unlike Harden, it tolerates true cycles: under allowCycles or
// warnOfCycles the decoder can legitimately hand back a graph containing a
// real self-reference, and marking-before-recursing lets the second visit
// to an already-marked identity short-circuit instead of tripping the
// encode-side "cycles are a precondition violation" check Harden enforces.
func freezeDecoded(v any) {
	visited := make(map[uintptr]bool)
	var walk func(any)
	walk = func(v any) {
		id, isRef, ok := identityOf(v)
		if !isRef || !ok {
			return
		}
		if visited[id] {
			return
		}
		visited[id] = true

		hardenRegistry.mu.Lock()
		hardenRegistry.seen[id] = true
		hardenRegistry.mu.Unlock()

		switch rv := v.(type) {
		case Record:
			for _, field := range rv {
				walk(field)
			}
		case Array:
			for _, elem := range rv {
				walk(elem)
			}
		}
	}
	walk(v)
}

// identityOf returns a stable identity for v's underlying reference, plus
// whether v is a reference type at all (isRef) and whether that reference
// is non-nil (ok). Go has no universal object-identity hash, so — per the
// design note in spec §9 — this package represents non-primitive identity
// as the data pointer behind maps, slices, and the library's own pointer
// types (*Remote, *Future, *CapError, *big.Int).
func identityOf(v any) (id uintptr, isRef bool, ok bool) {
	switch rv := v.(type) {
	case Record:
		if rv == nil {
			return 0, true, false
		}
		return reflect.ValueOf(map[string]any(rv)).Pointer(), true, true
	case Array:
		if rv == nil {
			return 0, true, false
		}
		return reflect.ValueOf([]any(rv)).Pointer(), true, true
	case *Remote:
		if rv == nil {
			return 0, true, false
		}
		return reflect.ValueOf(rv).Pointer(), true, true
	case *Future:
		if rv == nil {
			return 0, true, false
		}
		return reflect.ValueOf(rv).Pointer(), true, true
	case *CapError:
		if rv == nil {
			return 0, true, false
		}
		return reflect.ValueOf(rv).Pointer(), true, true
	case *BigInt:
		if rv == nil {
			return 0, true, false
		}
		return reflect.ValueOf(rv).Pointer(), true, true
	default:
		// Plain Go errors (errors.New, fmt.Errorf, ...) are copyError
		// material too (spec §3) but arrive as arbitrary concrete types,
		// almost always pointers under the hood. Fall back to reflect so
		// they still get a stable identity for ibid/harden bookkeeping;
		// anything not reference-shaped (a value-type error, say) has no
		// identity to collapse on and is treated as non-reference.
		rval := reflect.ValueOf(v)
		switch rval.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			if rval.IsNil() {
				return 0, true, false
			}
			return rval.Pointer(), true, true
		default:
			return 0, false, false
		}
	}
}
