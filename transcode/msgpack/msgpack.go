// Package msgpack provides a transcode.RawCodec for bridging a capdata raw
// tree onto a compact binary transport. Like yaml, msgpack.Marshal
// already accepts a bare map[string]any/[]any/scalar tree directly, so no
// tree-walking adapter is needed here the way xml requires; the
// one caveat worth knowing is that decoding into an interface{} sizes
// integers to the narrowest type that fits (int8/int16/.../int64) rather
// than a single uniform numeric type, unlike this package's own
// json.Number-based decode path.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/capmarshal/transcode"
)

// rawCodec implements transcode.RawCodec for MessagePack.
type rawCodec struct{}

// New returns a MessagePack RawCodec.
func New() transcode.RawCodec {
	return &rawCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *rawCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *rawCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *rawCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
