package capmarshal

import (
	"bytes"
	"encoding/json"
)

// renderCanonical serializes tree (a plain map[string]any / []any / string /
// float64 / int / bool / nil intermediate — the "raw tree" spec §4.4 names)
// into the canonical textual body. encoding/json.Marshal already sorts
// map[string]any keys in ascending order and emits no extraneous whitespace,
// which is exactly the canonicity spec §4.4 requires of record field
// ordering; no third-party codec in the example pack offers a JSON
// encoder, and the teacher's own JSON codec (transcode/json) wraps this
// same stdlib package, so this is the one place capmarshal reaches for
// encoding/json directly rather than a pack dependency.
func renderCanonical(tree any) (string, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return "", err
	}
	// json.Encoder.Encode always appends a trailing newline; the canonical
	// body has none.
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// parseCanonical parses body back into the raw tree: nil, bool, string,
// json.Number (preserved rather than collapsed to float64, so integer
// sentinel fields like "index" or "errorId" survive without float rounding),
// []any, or map[string]any. Malformed text fails with ErrParse.
func parseCanonical(body string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newDecodeError(ErrParse, -1, err)
	}
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return nil, newDecodeError(ErrParse, -1, nil)
	}
	return v, nil
}

// rawNumberToInt converts a parsed json.Number sentinel payload field (an
// "index" or "errorId") to an int, failing if it is not a clean integer.
func rawNumberToInt(n json.Number) (int, bool) {
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(i), true
}
