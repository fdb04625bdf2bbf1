package json

import (
	"reflect"
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
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
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

	if !reflect.DeepEqual(restored, original) {
		t.Errorf("round-trip failed: got %#v, want %#v", restored, original)
	}
}

func TestMarshalUnmarshal_NestedArrayAndIbid(t *testing.T) {
	c := New()

	original := map[string]any{
		"x": []any{float64(1), float64(2)},
		"y": map[string]any{"@qclass": "ibid", "index": float64(0)},
	}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored map[string]any
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if !reflect.DeepEqual(restored, original) {
		t.Errorf("round-trip failed: got %#v, want %#v", restored, original)
	}
}

func TestMarshalNil(t *testing.T) {
	c := New()

	data, err := c.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	if string(data) != "null" {
		t.Errorf("Marshal(nil) = %q, want %q", data, "null")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v any
	err := c.Unmarshal([]byte("not a raw tree {{{"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
