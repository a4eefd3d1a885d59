package domain

import (
	"math"
	"time"
)

// Result status values. StatusAccepted is retained for callers that queue
// work without completing it; the synchronous paths emit success or error.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusAccepted = "accepted"
)

// ObjectInput echoes the object reference of an object-based request.
type ObjectInput struct {
	Bucket            string `json:"s3_bucket"`
	Key               string `json:"s3_key"`
	DestinationBucket string `json:"destination_bucket,omitempty"`
}

// AnalysisResult is the structured outcome of a completed analysis.
// It is request-scoped: constructed once, serialized, and discarded.
type AnalysisResult struct {
	Status                string       `json:"status"`
	Message               string       `json:"message"`
	RequestID             string       `json:"request_id"`
	Analysis              string       `json:"analysis,omitempty"`
	ProcessingTimeSeconds float64      `json:"processing_time_seconds"`
	InputPrompt           *string      `json:"input_prompt,omitempty"`
	Input                 *ObjectInput `json:"input,omitempty"`
	OutputLocation        string       `json:"output_location,omitempty"`
}

// ErrorResponse is the uniform error payload. Constructed once per failure,
// never mutated, immediately serialized.
type ErrorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// NewErrorResponse builds the error payload for an APIError.
func NewErrorResponse(message, requestID string) ErrorResponse {
	return ErrorResponse{
		Status:    StatusError,
		Message:   message,
		RequestID: requestID,
	}
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status                string  `json:"status"`
	Message               string  `json:"message"`
	RequestID             string  `json:"request_id"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	Version               string  `json:"version"`
}

// Acknowledgement is the fixed payload for direct invocations that carry
// no analysis request.
type Acknowledgement struct {
	Status                string  `json:"status"`
	Message               string  `json:"message"`
	RequestID             string  `json:"request_id"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	Version               string  `json:"version"`
}

// ProcessingSeconds returns wall-clock seconds elapsed since start, rounded
// to millisecond precision and never negative.
func ProcessingSeconds(start time.Time) float64 {
	secs := time.Since(start).Seconds()
	if secs < 0 {
		secs = 0
	}
	return math.Round(secs*1000) / 1000
}
