package function

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want EventKind
	}{
		{"gateway", `{"httpMethod": "GET", "path": "/health"}`, EventGateway},
		{"gateway empty method", `{"httpMethod": ""}`, EventGateway},
		{"storage", `{"eventSource": "storage", "bucket": "b", "key": "k"}`, EventStorage},
		{"gateway wins over storage", `{"httpMethod": "POST", "eventSource": "storage"}`, EventGateway},
		{"direct", `{"prompt": "hi"}`, EventDirect},
		{"direct empty", `{}`, EventDirect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := Classify(json.RawMessage(tc.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tc.want {
				t.Fatalf("Classify(%s) = %q, want %q", tc.raw, kind, tc.want)
			}
		})
	}
}

func TestClassifyInvalidJSON(t *testing.T) {
	if _, err := Classify(json.RawMessage(`not json`)); err == nil {
		t.Fatal("expected error for malformed event")
	}
}

func TestBodyBytes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", ``, `{}`},
		{"json string", `"{\"prompt\": \"x\"}"`, `{"prompt": "x"}`},
		{"empty string", `""`, `{}`},
		{"embedded object", `{"prompt": "x"}`, `{"prompt": "x"}`},
		{"null", `null`, `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var raw json.RawMessage
			if tc.body != "" {
				raw = json.RawMessage(tc.body)
			}
			if got := string(bodyBytes(raw)); got != tc.want {
				t.Fatalf("bodyBytes(%s) = %s, want %s", tc.body, got, tc.want)
			}
		})
	}
}
