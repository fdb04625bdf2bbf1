package capmarshal

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// encoder holds the per-call state an Encode invocation accumulates: the
// identity-keyed ibid table and the positional slot table (spec C4, C6).
// An encoder is used for exactly one encodeRoot call and discarded.
type encoder struct {
	m     *Marshal
	ibids *encodeIbidTable
	slots *slotTable
}

func newEncoder(m *Marshal) *encoder {
	return &encoder{m: m, ibids: newEncodeIbidTable(), slots: newSlotTable()}
}

// encodeRoot hardens root, walks it into a raw tree, and renders that tree
// to canonical text. It returns the ibid count alongside the Capdata so
// Marshal.Encode can report it via SignalEncodeComplete without a second
// traversal.
func (e *encoder) encodeRoot(root any) (Capdata, int, error) {
	if err := Harden(root); err != nil {
		return Capdata{}, 0, newEncodeError("$", err)
	}

	tree, err := e.encodeValue(root, "$")
	if err != nil {
		return Capdata{}, 0, err
	}

	body, err := renderCanonical(tree)
	if err != nil {
		return Capdata{}, 0, newEncodeError("$", err)
	}

	return Capdata{Body: body, Slots: e.slots.slots}, e.ibids.next, nil
}

func (e *encoder) encodeValue(v any, path string) (any, error) {
	style, err := classifyAt(v, path)
	if err != nil {
		return nil, newEncodeError(path, err)
	}

	switch style {
	case PassUnit:
		if _, isUndefined := v.(undefinedType); isUndefined {
			return map[string]any{sentinelField: "undefined"}, nil
		}
		return nil, nil

	case PassBoolean, PassString:
		return v, nil

	case PassNumeric:
		return e.encodeNumeric(v), nil

	case PassBigInt:
		b := v.(*BigInt)
		return map[string]any{sentinelField: "bigint", "digits": formatBigInt(b)}, nil

	case PassSymbol:
		return map[string]any{sentinelField: string(v.(Symbol))}, nil

	case PassCopyRecord:
		return e.encodeRecord(v.(Record), path)

	case PassCopyArray:
		return e.encodeArray(v.(Array), path)

	case PassCopyError:
		return e.encodeError(v, path)

	case PassRemote:
		// The empty Record classifies as remote-style but has no slot
		// handle of its own; it is emitted as a plain {} and is ibid-tracked
		// like any other record.
		if rec, ok := v.(Record); ok {
			return e.encodeRecord(rec, path)
		}
		return e.encodeRemote(v.(*Remote)), nil

	case PassFuture:
		return e.encodeFuture(v.(*Future)), nil

	default:
		return nil, newEncodeError(path, newInvariantError("unreachable pass-style "+string(style)))
	}
}

// encodeNumeric renders any Go numeric kind verbatim, per spec §4.4,
// special-casing the three unrepresentable forms and normalizing negative
// zero to positive zero (spec §9's "encode as positive zero" note).
func (e *encoder) encodeNumeric(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
		f := rv.Float()
		if qclass, ok := isUnrepresentable(f); ok {
			return map[string]any{sentinelField: qclass}
		}
		if f == 0 && math.Signbit(f) {
			return float64(0)
		}
		return f
	}
	// Integer kinds have no unrepresentable or negative-zero form.
	if isUnsignedKind(rv.Kind()) {
		return rv.Uint()
	}
	return rv.Int()
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// sortedKeys returns rec's field names in ascending order. Go map iteration
// order is randomized per-run; walking fields in sorted order keeps ibid
// index assignment for nested values deterministic and reproducible across
// encode calls, not just the final rendered key order (which
// encoding/json's map marshaling would sort for us anyway, but only after
// the ibid numbering below has already happened).
func sortedKeys(rec Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// encodeRecord emits a copyRecord, consulting the ibid table first (spec
// §4.4, §4.6): a previously visited record serializes as a backreference,
// never re-traversed.
func (e *encoder) encodeRecord(rec Record, path string) (any, error) {
	if idx, found := e.ibids.positionOf(rec); found {
		return ibidEnvelope(idx), nil
	}
	e.ibids.assign(rec)

	out := make(map[string]any, len(rec))
	for _, k := range sortedKeys(rec) {
		cv, err := e.encodeValue(rec[k], path+"."+k)
		if err != nil {
			return nil, err
		}
		out[k] = cv
	}
	return out, nil
}

func (e *encoder) encodeArray(arr Array, path string) (any, error) {
	if idx, found := e.ibids.positionOf(arr); found {
		return ibidEnvelope(idx), nil
	}
	e.ibids.assign(arr)

	out := make([]any, len(arr))
	for i, elem := range arr {
		cv, err := e.encodeValue(elem, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	return out, nil
}

// encodeError emits a copyError envelope (spec §4.4). errorId is only
// minted on first occurrence; a repeated error value backreferences like
// any other non-primitive.
func (e *encoder) encodeError(v any, path string) (any, error) {
	if idx, found := e.ibids.positionOf(v); found {
		return ibidEnvelope(idx), nil
	}
	e.ibids.assign(v)

	name, message := "Error", v.(error).Error()
	if named, ok := v.(NamedError); ok {
		name = named.ErrorName()
	}

	errorID := e.m.nextErrorID()
	emitErrorSerialized(context.Background(), e.m.name, int(errorID))

	return map[string]any{
		sentinelField: "error",
		"errorId":     fmt.Sprintf("error:%s#%d", e.m.name, errorID),
		"name":        name,
		"message":     message,
	}, nil
}

// encodeRemote emits a slot envelope for a remote value, deduping against
// slotTable — never the ibid table — per spec §4.4's closing rule:
// "remote duplicates hit slotMap first... never as ibid". Every occurrence
// still consumes an ibid position, because the decoder registers each slot
// envelope it revives.
func (e *encoder) encodeRemote(r *Remote) any {
	idx, found := e.slots.indexOf(r)
	if !found {
		idx = e.slots.assign(r, e.m.valToSlot(r))
	}
	e.ibids.assign(r) // keep ibid position bookkeeping in sync (spec §4.6)

	iface, tagged := getInterfaceOf(r)
	if !tagged && e.m.warnUntagged {
		emitUntaggedRemote(context.Background(), e.m.name)
	}

	env := map[string]any{sentinelField: "slot", "index": idx}
	if tagged && iface != "" {
		env["iface"] = iface
	}
	return env
}

func (e *encoder) encodeFuture(f *Future) any {
	idx, found := e.slots.indexOf(f)
	if !found {
		idx = e.slots.assign(f, e.m.valToSlot(f))
	}
	e.ibids.assign(f)
	return map[string]any{sentinelField: "slot", "index": idx}
}

func ibidEnvelope(idx int) map[string]any {
	return map[string]any{sentinelField: "ibid", "index": idx}
}
