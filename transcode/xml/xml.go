// Package xml provides a transcode.RawCodec for XML interop. encoding/xml
// cannot marshal a bare map[string]any/[]any the way encoding/json can
// (it rejects maps outright), yet that is exactly the shape a capdata raw
// tree takes — so this codec walks the tree itself with the low-level
// token API instead of handing it to xml.Marshal directly. The result is
// necessarily lossy on the way back: XML has no native distinction
// between a string, a number, and a bool leaf, and a single child element
// is indistinguishable from a one-element array, so Unmarshal recovers
// arrays only where a tag repeats and returns every leaf as a string.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zoobzio/capmarshal/transcode"
)

// rawCodec implements transcode.RawCodec for XML.
type rawCodec struct{}

// New returns an XML RawCodec.
func New() transcode.RawCodec {
	return &rawCodec{}
}

// ContentType returns the MIME type for XML.
func (c *rawCodec) ContentType() string {
	return "application/xml"
}

// Marshal renders a raw tree as XML under a synthetic <capdata> root. The
// root value must be a map[string]any: a bare scalar or array has no
// element name to wrap in, and XML has no top-level type for either.
func (c *rawCodec) Marshal(v any) ([]byte, error) {
	root, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("xml: raw tree root must be an object, got %T", v)
	}

	buf := &bytes.Buffer{}
	enc := xml.NewEncoder(buf)
	if err := encodeElement(enc, xml.Name{Local: "capdata"}, root); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeElement(enc *xml.Encoder, name xml.Name, v any) error {
	start := xml.StartElement{Name: name}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeValue(enc, v); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeValue(enc *xml.Encoder, v any) error {
	switch vv := v.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			name := xml.Name{Local: tagName(k)}
			// An array field is written as one sibling element per item,
			// all named after the key, so Unmarshal sees a repeated tag.
			if arr, ok := vv[k].([]any); ok {
				for _, elem := range arr {
					if err := encodeElement(enc, name, elem); err != nil {
						return err
					}
				}
				continue
			}
			if err := encodeElement(enc, name, vv[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, elem := range vv {
			if err := encodeElement(enc, xml.Name{Local: "item"}, elem); err != nil {
				return err
			}
		}
		return nil
	default:
		return enc.EncodeToken(xml.CharData([]byte(fmt.Sprint(vv))))
	}
}

// tagName replaces characters illegal as an XML element name start
// (capdata sentinel keys like "@qclass" lead with '@') with an
// underscore-prefixed form, since encoding/xml does not sanitize names
// for us.
func tagName(key string) string {
	if key == "" {
		return "_"
	}
	r := rune(key[0])
	if r == '@' || r == '#' {
		return "_" + key[1:]
	}
	return key
}

// Unmarshal decodes XML built by Marshal (or structurally similar XML)
// back into a map[string]any/[]any/string raw tree. Repeated sibling tags
// become a []any; anything else becomes a string leaf.
func (c *rawCodec) Unmarshal(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("xml: no root element found")
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); !ok {
			continue
		}
		tree, err := decodeElement(dec)
		if err != nil {
			return err
		}
		p, ok := v.(*any)
		if !ok {
			return fmt.Errorf("xml: Unmarshal target must be *any, got %T", v)
		}
		*p = tree
		return nil
	}
}

func decodeElement(dec *xml.Decoder) (any, error) {
	children := map[string]any{}
	var text bytes.Buffer

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec)
			if err != nil {
				return nil, err
			}
			key := t.Name.Local
			if existing, ok := children[key]; ok {
				if arr, ok := existing.([]any); ok {
					children[key] = append(arr, child)
				} else {
					children[key] = []any{existing, child}
				}
			} else {
				children[key] = child
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) == 0 {
				return strings.TrimSpace(text.String()), nil
			}
			return children, nil
		}
	}
}
