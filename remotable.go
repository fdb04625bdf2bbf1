package capmarshal

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"weak"
)

// Remote is the Go representation of a "remote-style object" (spec §3): a
// value transported by reference, whose only exposed surface is a set of
// named operations. Unlike JS, Go cannot stamp arbitrary properties onto
// an existing object at runtime, so Remotable returns a dedicated wrapper
// rather than mutating a caller-supplied target in place — the wrapper's
// identity (its pointer) is what the registry, the encoder's slot table,
// and the ibid table all key on.
type Remote struct {
	iface string
	ops   map[string]Operation
}

// Interface returns the Remote's registered interface tag.
func (r *Remote) Interface() string { return r.iface }

// Call invokes the named operation. An unknown operation name yields a
// plain error naming the operation and the interface; this is local
// dispatch, not delivery across a wire — delivery is the hosting runtime's
// job (out of scope, spec §1).
func (r *Remote) Call(ctx context.Context, op string, args ...any) (any, error) {
	fn, ok := r.ops[op]
	if !ok {
		return nil, fmt.Errorf("capmarshal: no such operation %q on %s", op, r.iface)
	}
	return fn(ctx, args...)
}

// Ops returns the set of operation names exposed by this Remote, sorted
// for deterministic iteration.
func (r *Remote) Ops() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registryTags is keyed by weak.Pointer[Remote], not *Remote: a plain
// map[*Remote]string would have the map's own key slot hold a strong
// reference to every registered Remote forever, exactly the "interface
// tags must not keep objects alive" invariant (spec §3, §4.2) rules out.
// weak.Make produces a comparable handle that does not count toward
// reachability, and two weak.Pointer[Remote] values made from the same
// *Remote compare equal, so a fresh weak.Make(r) at lookup time finds the
// entry a prior weak.Make(r) stored without the registry ever holding r
// itself. runtime.AddCleanup removes the entry once r is collected so the
// map doesn't accumulate dead keys.
var (
	registryMu   sync.RWMutex
	registryTags = make(map[weak.Pointer[Remote]]string)
)

// Remotable registers a new remote-style object and returns it (spec §4.2,
// §6). ops may be nil (a Remote with no operations); every value in it is,
// by Go's type system, an Operation — the "only operation-typed own
// properties" invariant is therefore enforced by construction, and only a
// nil Operation value is rejected at runtime (ErrNotRemotable).
//
// An empty iface defaults to "Remotable". Otherwise iface must equal
// "Remotable" or begin with "Alleged: " (spec §3's "Interface tag"); any
// other value fails with ErrInvalidInterfaceTag.
func Remotable(iface string, ops map[string]Operation) (*Remote, error) {
	if iface == "" {
		iface = "Remotable"
	}
	if !validInterfaceTag(iface) {
		return nil, newRegistryError(ErrInvalidInterfaceTag, iface)
	}

	r := &Remote{iface: iface, ops: make(map[string]Operation, len(ops))}
	for name, op := range ops {
		if op == nil {
			return nil, newRegistryError(ErrNotRemotable, iface)
		}
		r.ops[name] = op
	}

	wp := weak.Make(r)

	registryMu.Lock()
	if _, already := registryTags[wp]; already {
		// Unreachable in practice (r was just allocated above) but kept
		// as the explicit re-registration guard spec §4.2 calls for.
		registryMu.Unlock()
		return nil, newRegistryError(ErrAlreadyRegistered, iface)
	}
	registryTags[wp] = iface
	registryMu.Unlock()

	runtime.AddCleanup(r, func(key weak.Pointer[Remote]) {
		registryMu.Lock()
		delete(registryTags, key)
		registryMu.Unlock()
	}, wp)

	emitRemotableRegistered(context.Background(), iface)
	return r, nil
}

// Far is shorthand for Remotable("Alleged: "+farName, ops) (spec §6).
func Far(farName string, ops map[string]Operation) (*Remote, error) {
	return Remotable("Alleged: "+farName, ops)
}

// validInterfaceTag checks the spec §3 rule: the literal "Remotable" or a
// value beginning with the literal prefix "Alleged: ".
func validInterfaceTag(iface string) bool {
	return iface == "Remotable" || strings.HasPrefix(iface, "Alleged: ")
}

// getInterfaceOf returns the registered interface tag for a Remote, or ""
// if v is not a registered Remote. The registry holds no strong reference
// to r: this lookup makes a fresh weak.Pointer[Remote] from r, which
// compares equal to the one Remotable stored without extending r's
// lifetime itself.
func getInterfaceOf(r *Remote) (string, bool) {
	wp := weak.Make(r)
	registryMu.RLock()
	defer registryMu.RUnlock()
	tag, ok := registryTags[wp]
	return tag, ok
}

// GetInterfaceOf returns the interface tag of v, or "" if v is not a
// registered remote-style object (spec §6's getInterfaceOf).
func GetInterfaceOf(v any) string {
	r, ok := v.(*Remote)
	if !ok {
		return ""
	}
	tag, _ := getInterfaceOf(r)
	return tag
}
