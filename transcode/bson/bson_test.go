package bson

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
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
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

	if restored["@qclass"] != original["@qclass"] || restored["digits"] != original["digits"] {
		t.Errorf("round-trip failed: got %#v, want %#v", restored, original)
	}
}

func TestMarshal_RejectsNonObjectRoot(t *testing.T) {
	c := New()

	for _, v := range []any{"a bare string", []any{1, 2, 3}, float64(1), nil} {
		if _, err := c.Marshal(v); err == nil {
			t.Errorf("Marshal(%#v) should reject a non-object raw tree root", v)
		}
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v map[string]any
	err := c.Unmarshal([]byte("invalid bson"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
