// Package yaml provides a transcode.RawCodec for producing a
// human-readable debug dump of a capdata raw tree. Unlike xml (which walks
// the tree itself) or bson (which accepts only an object root), yaml.v3
// already marshals a bare map[string]any/[]any/scalar tree without help,
// so this codec is a thin wrapper — the domain-specific work for this
// format is that it exists at all behind the same RawCodec shape.
package yaml

import (
	"github.com/zoobzio/capmarshal/transcode"
	"gopkg.in/yaml.v3"
)

// rawCodec implements transcode.RawCodec for YAML.
type rawCodec struct{}

// New returns a YAML RawCodec.
func New() transcode.RawCodec {
	return &rawCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *rawCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *rawCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *rawCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
