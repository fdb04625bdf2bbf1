package transcode_test

import (
	"testing"

	"github.com/zoobzio/capmarshal"
	"github.com/zoobzio/capmarshal/transcode"
	"github.com/zoobzio/capmarshal/transcode/bson"
	"github.com/zoobzio/capmarshal/transcode/json"
	"github.com/zoobzio/capmarshal/transcode/msgpack"
	"github.com/zoobzio/capmarshal/transcode/yaml"
)

func TestRawCodec_AllImplementations(t *testing.T) {
	codecs := []struct {
		name        string
		codec       transcode.RawCodec
		contentType string
	}{
		{"json", json.New(), "application/json"},
		{"yaml", yaml.New(), "application/yaml"},
		{"msgpack", msgpack.New(), "application/msgpack"},
		{"bson", bson.New(), "application/bson"},
	}

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			if tc.codec == nil {
				t.Fatal("New() returned nil codec")
			}
			if got := tc.codec.ContentType(); got != tc.contentType {
				t.Errorf("ContentType() = %q, want %q", got, tc.contentType)
			}
		})
	}
}

func TestTranscodeRoundTripsThroughEachFormat(t *testing.T) {
	m := capmarshal.NewMarshal(nil, nil)
	cd, err := m.Encode(capmarshal.Record{"name": "test", "value": int64(42)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for _, tc := range []struct {
		name  string
		codec transcode.RawCodec
	}{
		{"yaml", yaml.New()},
		{"msgpack", msgpack.New()},
		{"bson", bson.New()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := transcode.Transcode(cd.Body, tc.codec)
			if err != nil {
				t.Fatalf("Transcode: %v", err)
			}
			if len(out) == 0 {
				t.Fatal("Transcode produced no output")
			}

			back, err := transcode.Detranscode(out, tc.codec)
			if err != nil {
				t.Fatalf("Detranscode: %v", err)
			}
			if back == "" {
				t.Fatal("Detranscode produced an empty body")
			}
		})
	}
}

func TestTranscodeJSONIdentity(t *testing.T) {
	m := capmarshal.NewMarshal(nil, nil)
	cd, err := m.Encode(capmarshal.Record{"n": 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out, err := transcode.Transcode(cd.Body, json.New())
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if string(out) != cd.Body {
		t.Errorf("JSON transcode should be the identity case: got %q, want %q", out, cd.Body)
	}
}
