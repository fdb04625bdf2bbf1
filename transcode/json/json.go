// Package json provides a transcode.RawCodec for the core's own canonical
// format — the identity case, useful for callers that want a uniform
// RawCodec interface regardless of target format.
package json

import (
	"encoding/json"

	"github.com/zoobzio/capmarshal/transcode"
)

// rawCodec implements transcode.RawCodec for JSON.
type rawCodec struct{}

// New returns a JSON RawCodec.
func New() transcode.RawCodec {
	return &rawCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *rawCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *rawCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *rawCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
