// Package transcode re-renders a capdata body into alternate wire formats.
//
// The core's canonical body (see capmarshal's encoder) is always the
// sorted-key JSON text spec's wire format names. transcode sits beside
// that: it parses the canonical body back into the plain raw tree the
// encoder built it from, then hands that tree to a RawCodec for a debug
// dump, a compact binary bridge, or interop with an XML-speaking peer.
// It never touches pass-style classification or ibid bookkeeping: qclass
// envelopes in the body ("@qclass" objects) pass through as ordinary
// objects of the tree.
package transcode

import "encoding/json"

// RawCodec marshals/unmarshals a parsed raw tree to and from bytes,
// mirroring the teacher's Codec interface (ContentType, Marshal,
// Unmarshal) 1:1.
type RawCodec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Transcode parses a canonical capdata body and re-renders it through
// codec, producing an alternate-format representation of the same tree.
func Transcode(body string, codec RawCodec) ([]byte, error) {
	var tree any
	if err := json.Unmarshal([]byte(body), &tree); err != nil {
		return nil, err
	}
	return codec.Marshal(tree)
}

// Detranscode parses data in codec's format and re-renders it as a
// canonical JSON capdata body. It carries no slot table, so the result
// decodes through capmarshal's Decode (as Marshal.DecodeAs does) only for
// a body with no slot references.
func Detranscode(data []byte, codec RawCodec) (string, error) {
	var tree any
	if err := codec.Unmarshal(data, &tree); err != nil {
		return "", err
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
