package capmarshal

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for marshal lifecycle events.
//
// Per spec §7, the core never logs at error level on its own behalf:
// failures are returned to the caller, never emitted here. SignalErrorSerialized
// is the one mandated exception — error objects passing through encode are
// logged once, at info level, to enable side-channel correlation by errorId.
var (
	SignalMarshalCreated      = capitan.NewSignal("capmarshal.marshal.created", "Marshal pair instantiated")
	SignalEncodeComplete      = capitan.NewSignal("capmarshal.encode.complete", "Encode operation finished")
	SignalDecodeComplete      = capitan.NewSignal("capmarshal.decode.complete", "Decode operation finished")
	SignalErrorSerialized     = capitan.NewSignal("capmarshal.encode.error_serialized", "A copyError value was encoded")
	SignalRemotableRegistered = capitan.NewSignal("capmarshal.registry.registered", "A Remotable target was registered")
	SignalUntaggedRemote      = capitan.NewSignal("capmarshal.encode.untagged_remote", "A remote value was encoded with no interface tag")
	SignalCycleAllowed        = capitan.NewSignal("capmarshal.decode.cycle_allowed", "A backreference to an in-construction node was allowed under warnOfCycles")
)

// Keys for typed event data.
var (
	KeyMarshalName = capitan.NewStringKey("marshal_name")
	KeyInterface   = capitan.NewStringKey("interface")
	KeyErrorID     = capitan.NewIntKey("error_id")
	KeySlotCount   = capitan.NewIntKey("slot_count")
	KeyIbidCount   = capitan.NewIntKey("ibid_count")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyCyclePolicy = capitan.NewStringKey("cycle_policy")
	KeyIbidIndex   = capitan.NewIntKey("ibid_index")
)

func emitMarshalCreated(ctx context.Context, name string) {
	capitan.Emit(ctx, SignalMarshalCreated, KeyMarshalName.Field(name))
}

func emitEncodeComplete(ctx context.Context, name string, duration time.Duration, slots, ibids int) {
	capitan.Emit(ctx, SignalEncodeComplete,
		KeyMarshalName.Field(name),
		KeyDuration.Field(duration),
		KeySlotCount.Field(slots),
		KeyIbidCount.Field(ibids),
	)
}

func emitDecodeComplete(ctx context.Context, name string, duration time.Duration, policy CyclePolicy) {
	capitan.Emit(ctx, SignalDecodeComplete,
		KeyMarshalName.Field(name),
		KeyDuration.Field(duration),
		KeyCyclePolicy.Field(string(policy)),
	)
}

func emitErrorSerialized(ctx context.Context, name string, errorID int) {
	capitan.Emit(ctx, SignalErrorSerialized,
		KeyMarshalName.Field(name),
		KeyErrorID.Field(errorID),
	)
}

func emitRemotableRegistered(ctx context.Context, iface string) {
	capitan.Emit(ctx, SignalRemotableRegistered, KeyInterface.Field(iface))
}

func emitUntaggedRemote(ctx context.Context, name string) {
	capitan.Emit(ctx, SignalUntaggedRemote, KeyMarshalName.Field(name))
}

func emitForbiddenCycleWarning(ibidIndex int) {
	capitan.Emit(context.Background(), SignalCycleAllowed, KeyIbidIndex.Field(ibidIndex))
}
