package msgpack

import (
	"testing"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/msgpack" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/msgpack")
	}
}

func TestMarshalUnmarshal_RawTree(t *testing.T) {
	c := New()

	original := map[string]any{
		"@qclass": "bigint",
		"digits":  "12345",
	}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored map[string]any
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored["@qclass"] != "bigint" || restored["digits"] != "12345" {
		t.Errorf("round-trip failed: got %#v", restored)
	}
}

func TestMarshalUnmarshal_Array(t *testing.T) {
	c := New()

	original := []any{"one", "two", true, nil}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored []any
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if len(restored) != len(original) {
		t.Fatalf("round-trip length = %d, want %d", len(restored), len(original))
	}
	if restored[0] != "one" || restored[1] != "two" || restored[2] != true || restored[3] != nil {
		t.Errorf("round-trip failed: got %#v", restored)
	}
}

func TestMarshalBinary(t *testing.T) {
	c := New()

	data, err := c.Marshal(map[string]any{"a": "1", "b": "2"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// MessagePack is binary, should not be valid UTF-8 JSON
	if data[0] == '{' {
		t.Error("MessagePack output should be binary, not JSON")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v any
	err := c.Unmarshal([]byte("not msgpack"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
