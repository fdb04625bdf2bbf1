// Package bson provides a transcode.RawCodec for bridging a capdata raw
// tree onto a BSON-speaking store or transport. BSON documents must be
// top-level maps; transcoding a scalar or bare-array raw tree is rejected
// up front with a message naming the raw tree's root type, rather than
// surfacing whatever internal error the driver happens to return for an
// unsupported root.
package bson

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/zoobzio/capmarshal/transcode"
)

// rawCodec implements transcode.RawCodec for BSON.
type rawCodec struct{}

// New returns a BSON RawCodec.
func New() transcode.RawCodec {
	return &rawCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *rawCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document. v must be a map[string]any — the
// shape a capdata raw tree takes at its root — since BSON has no
// top-level representation for a bare scalar or array.
func (c *rawCodec) Marshal(v any) ([]byte, error) {
	if _, ok := v.(map[string]any); !ok {
		return nil, fmt.Errorf("bson: raw tree root must be an object, got %T", v)
	}
	return bson.Marshal(v)
}

// Unmarshal decodes a BSON document into v.
func (c *rawCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
