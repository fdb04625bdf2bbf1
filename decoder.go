package capmarshal

import (
	"encoding/json"
	"math"
	"sort"
)

// decoder holds the per-call state a Decode invocation accumulates: the
// positional ibid table tracking in-construction nodes (spec C5, C6). A
// decoder is used for exactly one decodeRoot call and discarded.
type decoder struct {
	m      *Marshal
	cd     Capdata
	policy CyclePolicy
	ibids  *decodeIbidTable
}

func newDecoder(m *Marshal, cd Capdata, policy CyclePolicy) *decoder {
	return &decoder{m: m, cd: cd, policy: policy, ibids: newDecodeIbidTable()}
}

// decodeRoot parses the body, revives the graph in pre-order, and freezes
// the result (spec §4.5).
func (d *decoder) decodeRoot() (any, error) {
	tree, err := parseCanonical(d.cd.Body)
	if err != nil {
		return nil, err
	}

	v, err := d.reviveValue(tree)
	if err != nil {
		return nil, err
	}

	freezeDecoded(v)
	return v, nil
}

func (d *decoder) reviveValue(node any) (any, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case bool:
		return n, nil
	case string:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil, newDecodeError(ErrMalformedEnvelope, -1, err)
		}
		return f, nil
	case []any:
		return d.reviveArray(n)
	case map[string]any:
		if raw, hasSentinel := n[sentinelField]; hasSentinel {
			tag, ok := raw.(string)
			if !ok {
				return nil, newDecodeError(ErrMalformedEnvelope, -1, nil)
			}
			return d.reviveSentinel(tag, n)
		}
		return d.reviveRecord(n)
	default:
		return nil, newDecodeError(ErrParse, -1, nil)
	}
}

// reviveSentinel dispatches a sentinel-tagged envelope by its qclass value
// (spec §4.5's dispatch table).
func (d *decoder) reviveSentinel(tag string, env map[string]any) (any, error) {
	switch tag {
	case "undefined":
		return Undefined, nil
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	case "@@asyncIterator":
		return AsyncIterator, nil
	case "bigint":
		return d.reviveBigInt(env)
	case "error":
		return d.reviveError(env)
	case "slot":
		return d.reviveSlot(env)
	case "ibid":
		return d.reviveIbid(env)
	default:
		return nil, newDecodeError(ErrUnknownSentinel, -1, nil)
	}
}

func (d *decoder) reviveBigInt(env map[string]any) (any, error) {
	digits, ok := env["digits"].(string)
	if !ok {
		return nil, newDecodeError(ErrMalformedEnvelope, -1, nil)
	}
	b, ok := parseBigInt(digits)
	if !ok {
		return nil, newDecodeError(ErrMalformedEnvelope, -1, nil)
	}
	return b, nil
}

func (d *decoder) reviveError(env map[string]any) (any, error) {
	name, nameOK := env["name"].(string)
	message, msgOK := env["message"].(string)
	if !nameOK || !msgOK {
		return nil, newDecodeError(ErrMalformedEnvelope, -1, nil)
	}
	switch name {
	case "Error", "EvalError", "RangeError", "ReferenceError", "SyntaxError", "TypeError", "URIError":
	default:
		name = "Error" // unknown error classes collapse to the base class
	}
	err := NewError(name, message)
	d.ibids.register(err)
	return err, nil
}

func (d *decoder) reviveSlot(env map[string]any) (any, error) {
	idx, ok := envIndex(env)
	if !ok {
		return nil, newDecodeError(ErrMalformedEnvelope, -1, nil)
	}
	if idx < 0 || idx >= len(d.cd.Slots) {
		return nil, newDecodeError(ErrOutOfRange, idx, nil)
	}

	iface := ""
	if rawIface, hasIface := env["iface"]; hasIface {
		iface, _ = rawIface.(string)
	}

	val := d.m.slotToVal(d.cd.Slots[idx], iface)
	d.ibids.register(val)
	return val, nil
}

func (d *decoder) reviveIbid(env map[string]any) (any, error) {
	idx, ok := envIndex(env)
	if !ok {
		return nil, newDecodeError(ErrMalformedEnvelope, -1, nil)
	}
	return d.ibids.lookup(idx, d.policy)
}

func (d *decoder) reviveArray(nodes []any) (any, error) {
	pos := d.ibids.start()
	out := make(Array, len(nodes))
	d.ibids.values[pos] = out // visible to in-construction backreferences
	for i, node := range nodes {
		cv, err := d.reviveValue(node)
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	d.ibids.finish(pos, out)
	return out, nil
}

// reviveRecord revives a record's fields in ascending key order, mirroring
// encoder.go's sortedKeys traversal so nested ibid positions line up
// between the two sides regardless of Go's randomized map iteration order.
func (d *decoder) reviveRecord(fields map[string]any) (any, error) {
	pos := d.ibids.start()
	out := make(Record, len(fields))
	d.ibids.values[pos] = out // visible to in-construction backreferences

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cv, err := d.reviveValue(fields[k])
		if err != nil {
			return nil, err
		}
		out[k] = cv
	}
	d.ibids.finish(pos, out)
	return out, nil
}

// envIndex extracts and validates a sentinel envelope's "index" field,
// which arrives as json.Number since parseCanonical decodes with UseNumber.
func envIndex(env map[string]any) (int, bool) {
	raw, ok := env["index"]
	if !ok {
		return 0, false
	}
	num, ok := raw.(json.Number)
	if !ok {
		return 0, false
	}
	return rawNumberToInt(num)
}
