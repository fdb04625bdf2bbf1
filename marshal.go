package capmarshal

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capmarshal/transcode"
)

// CyclePolicy controls decode's behavior on encountering a backreference to
// a node whose construction is not yet complete (spec §4.5, §6).
type CyclePolicy string

const (
	// AllowCycles returns the partially built reference as-is.
	AllowCycles CyclePolicy = "allowCycles"

	// WarnOfCycles logs and returns the partially built reference.
	WarnOfCycles CyclePolicy = "warnOfCycles"

	// ForbidCycles fails decode outright. This is the default.
	ForbidCycles CyclePolicy = "forbidCycles"
)

func (p CyclePolicy) valid() bool {
	switch p {
	case AllowCycles, WarnOfCycles, ForbidCycles:
		return true
	default:
		return false
	}
}

// Capdata is the encoded wire form (spec §3, §6): body is canonical text
// whose embedded indices refer positionally into slots.
type Capdata struct {
	Body  string
	Slots []any
}

// ValToSlot extracts an opaque slot identifier from a remote-style or
// future value (spec §2, §6). The default is the identity function.
type ValToSlot func(v any) any

// SlotToVal materializes a local stand-in from a slot and an optional
// interface hint (spec §2, §6). The default returns the slot unchanged.
type SlotToVal func(slot any, iface string) any

// Marshal is the encode/decode pair produced by NewMarshal (spec §2, §6).
// A Marshal instance owns no long-lived state beyond its configuration and
// a per-instance error-id counter; every Encode/Decode call is otherwise a
// pure, turn-local computation (spec §5).
type Marshal struct {
	name          string
	valToSlot     ValToSlot
	slotToVal     SlotToVal
	defaultPolicy CyclePolicy
	warnUntagged  bool
	transcoder    transcode.RawCodec

	errorSeq atomic.Int64 // monotonically increasing errorId counter (spec §5, §4.4)
}

// MarshalOption configures a Marshal at construction time, in the
// teacher's chained-configuration style (cereal's SetEncryptor et al., here
// applied at construction since a Marshal's configuration is immutable for
// its lifetime — spec names no mutation operations for it).
type MarshalOption func(*Marshal)

// WithMarshalName sets the text label that appears in generated error IDs
// (spec §6).
func WithMarshalName(name string) MarshalOption {
	return func(m *Marshal) { m.name = name }
}

// WithDefaultCyclePolicy overrides the default "forbidCycles" policy
// Decode uses when the caller does not specify one.
func WithDefaultCyclePolicy(policy CyclePolicy) MarshalOption {
	return func(m *Marshal) { m.defaultPolicy = policy }
}

// WithUntaggedRemoteWarning enables the disabled-by-default diagnostic
// spec §9's Open Questions describes: a warning when a remote value is
// serialized with no interface tag. See SPEC_FULL.md "Supplemented
// features".
func WithUntaggedRemoteWarning(enabled bool) MarshalOption {
	return func(m *Marshal) { m.warnUntagged = enabled }
}

// WithTranscoder attaches a default transcode.RawCodec this Marshal uses
// for EncodeAs/DecodeAs, so a caller that always bridges onto the same
// wire format (a YAML debug dump, a MessagePack transport, ...) does not
// have to pass the codec at every call site.
func WithTranscoder(codec transcode.RawCodec) MarshalOption {
	return func(m *Marshal) { m.transcoder = codec }
}

// NewMarshal constructs a Marshal (spec §6's makeMarshal). A nil
// valToSlot defaults to the identity function; a nil slotToVal defaults to
// returning its first argument unchanged.
func NewMarshal(valToSlot ValToSlot, slotToVal SlotToVal, opts ...MarshalOption) *Marshal {
	if valToSlot == nil {
		valToSlot = func(v any) any { return v }
	}
	if slotToVal == nil {
		slotToVal = func(slot any, _ string) any { return slot }
	}

	m := &Marshal{
		valToSlot:     valToSlot,
		slotToVal:     slotToVal,
		defaultPolicy: ForbidCycles,
	}
	for _, opt := range opts {
		opt(m)
	}

	emitMarshalCreated(context.Background(), m.name)
	return m
}

// nextErrorID returns the next monotonically increasing error id for this
// Marshal instance (spec §4.4, §5). Safe for concurrent use: spec §5
// requires atomic increment whenever the instance is shared across
// threads, so this always goes through atomic.Int64 rather than only
// when a caller happens to share the instance.
func (m *Marshal) nextErrorID() int64 {
	return m.errorSeq.Add(1)
}

// Encode serializes root into Capdata (spec's serialize / Encode).
func (m *Marshal) Encode(root any) (Capdata, error) {
	start := time.Now()
	cd, ibids, err := newEncoder(m).encodeRoot(root)
	if err != nil {
		return Capdata{}, err
	}
	emitEncodeComplete(context.Background(), m.name, time.Since(start), len(cd.Slots), ibids)
	return cd, nil
}

// Decode reconstructs a value from Capdata under policy (spec's
// unserialize / Decode). An empty policy defaults to the Marshal's
// configured default (itself defaulting to ForbidCycles).
func (m *Marshal) Decode(cd Capdata, policy CyclePolicy) (any, error) {
	if policy == "" {
		policy = m.defaultPolicy
	}
	if !policy.valid() {
		return nil, newDecodeError(ErrUnknownCyclePolicy, -1, nil)
	}

	start := time.Now()
	v, err := newDecoder(m, cd, policy).decodeRoot()
	if err != nil {
		return nil, err
	}
	emitDecodeComplete(context.Background(), m.name, time.Since(start), policy)
	return v, nil
}

// EncodeAs encodes root, then re-renders the resulting body through this
// Marshal's configured transcoder (see WithTranscoder). It discards the
// Capdata's slot table: a transcoded body is for a debug dump or a
// same-process transport bridge, not for feeding back into Decode, which
// needs the slots alongside the body to revive remote/future references.
func (m *Marshal) EncodeAs(root any) ([]byte, error) {
	if m.transcoder == nil {
		return nil, newEncodeError("", ErrNoTranscoder)
	}
	cd, err := m.Encode(root)
	if err != nil {
		return nil, err
	}
	return transcode.Transcode(cd.Body, m.transcoder)
}

// DecodeAs parses data in this Marshal's configured transcoder's format
// and decodes it as a Capdata body with no out-of-band slots, under
// policy. Suitable only for data that started as a slot-free body (no
// remote/future values) — see EncodeAs.
func (m *Marshal) DecodeAs(data []byte, policy CyclePolicy) (any, error) {
	if m.transcoder == nil {
		return nil, newDecodeError(ErrNoTranscoder, -1, nil)
	}
	body, err := transcode.Detranscode(data, m.transcoder)
	if err != nil {
		return nil, newDecodeError(ErrParse, -1, err)
	}
	return m.Decode(Capdata{Body: body}, policy)
}
