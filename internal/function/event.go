package function

import (
	"encoding/json"

	"codescope/internal/domain"
)

// EventKind is the classification of an inbound event.
type EventKind string

const (
	// EventGateway is an HTTP request forwarded by the API front door.
	EventGateway EventKind = "gateway"

	// EventStorage is an object-store change notification.
	EventStorage EventKind = "storage"

	// EventDirect is a platform-native invocation with arbitrary input.
	EventDirect EventKind = "direct"
)

// GatewayEvent carries the HTTP shape of a front-door request. Body may be
// a JSON string or an embedded object.
type GatewayEvent struct {
	HTTPMethod string          `json:"httpMethod"`
	Path       string          `json:"path"`
	Body       json.RawMessage `json:"body"`
}

// StorageEvent describes an object-store change forwarded via the event bus.
// OutputBucket must be named explicitly: the configured default destination
// does not apply on this path.
type StorageEvent struct {
	EventSource  string `json:"eventSource"`
	Bucket       string `json:"bucket"`
	Key          string `json:"key"`
	OutputBucket string `json:"outputBucket"`
}

// classifier probes only the discriminating fields of a raw event.
type classifier struct {
	HTTPMethod  *string `json:"httpMethod"`
	EventSource *string `json:"eventSource"`
}

// Classify determines the event kind from the raw payload shape.
// Order matters: an HTTP method field wins, then a storage source marker,
// and anything else is a direct invocation.
func Classify(raw json.RawMessage) (EventKind, error) {
	var probe classifier
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", domain.ErrInvalidRequest("Invalid JSON in request body")
	}

	switch {
	case probe.HTTPMethod != nil:
		return EventGateway, nil
	case probe.EventSource != nil:
		return EventStorage, nil
	default:
		return EventDirect, nil
	}
}

// bodyBytes normalizes a gateway body to raw JSON bytes. Gateways deliver
// textual bodies as JSON strings; direct tooling may embed an object.
func bodyBytes(body json.RawMessage) []byte {
	if len(body) == 0 {
		return []byte("{}")
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		if s == "" {
			return []byte("{}")
		}
		return []byte(s)
	}

	return body
}
