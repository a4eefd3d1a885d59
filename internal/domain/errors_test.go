package domain

import (
	"net/http"
	"testing"
	"time"
)

func TestHTTPStatusCodeByType(t *testing.T) {
	cases := []struct {
		err  *APIError
		want int
	}{
		{ErrInvalidRequest("bad"), http.StatusBadRequest},
		{ErrStoreRead("missing"), http.StatusBadRequest},
		{ErrStoreWrite("denied"), http.StatusInternalServerError},
		{ErrCapability("down"), http.StatusInternalServerError},
		{ErrServer("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatusCode(); got != tc.want {
			t.Errorf("HTTPStatusCode(%s) = %d, want %d", tc.err.Type, got, tc.want)
		}
	}
}

func TestWithStatusCodeOverrides(t *testing.T) {
	err := ErrCapability("throttled").WithStatusCode(http.StatusTooManyRequests)
	if got := err.HTTPStatusCode(); got != http.StatusTooManyRequests {
		t.Fatalf("expected explicit status to win, got %d", got)
	}
}

func TestErrorString(t *testing.T) {
	err := ErrInvalidRequest("missing field")
	if err.Error() != "invalid_request: missing field" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}

func TestProcessingSecondsNeverNegative(t *testing.T) {
	if got := ProcessingSeconds(time.Now().Add(time.Hour)); got != 0 {
		t.Fatalf("future start must clamp to zero, got %v", got)
	}
}

func TestProcessingSecondsMillisecondPrecision(t *testing.T) {
	got := ProcessingSeconds(time.Now().Add(-1234567 * time.Microsecond))
	if got < 1.234 || got > 1.3 {
		t.Fatalf("expected roughly 1.235s, got %v", got)
	}
}
