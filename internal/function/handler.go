// Package function implements the request dispatch pipeline: classify an
// inbound event, extract the analysis payload, run the orchestrator, and
// shape the response for the originating surface.
package function

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"codescope/internal/domain"
	"codescope/internal/extract"
	"codescope/internal/orchestrator"
)

// Version is reported by the health endpoint and the direct-invoke
// acknowledgement.
const Version = "1.0.0"

const (
	healthMessage = "Code analysis service is running"
	ackMessage    = "Code analysis service invoked directly"
)

// Handler routes inbound events to the analysis orchestrator.
type Handler struct {
	orch   *orchestrator.Orchestrator
	logger *slog.Logger
}

// New creates a Handler.
func New(orch *orchestrator.Orchestrator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{orch: orch, logger: logger}
}

// Invoke processes one raw event and returns the response payload: an
// APIResponse envelope for gateway events, an unwrapped payload otherwise.
// This is the single fatal-catch boundary; nothing escapes uncaught.
func (h *Handler) Invoke(ctx context.Context, raw json.RawMessage, requestID string) (resp any) {
	start := time.Now()
	if requestID == "" {
		requestID = "unknown"
	}

	gatewayOrigin := false

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("unhandled error processing request",
				slog.String("request_id", requestID),
				slog.Any("panic", r),
			)
			payload := domain.NewErrorResponse("Internal server error", requestID)
			if gatewayOrigin {
				resp = NewAPIResponse(http.StatusInternalServerError, payload)
			} else {
				resp = payload
			}
		}
	}()

	h.logger.Info("processing request", slog.String("request_id", requestID))

	kind, err := Classify(raw)
	if err != nil {
		return domain.NewErrorResponse(err.Error(), requestID)
	}

	switch kind {
	case EventGateway:
		gatewayOrigin = true
		return h.handleGateway(ctx, raw, requestID, start)
	case EventStorage:
		return h.handleStorage(ctx, raw, requestID, start)
	default:
		return h.handleDirect(ctx, raw, requestID, start)
	}
}

// handleGateway serves the HTTP surface: CORS preflight, health, analyze,
// and a 404 with the enumerated routes for everything else.
func (h *Handler) handleGateway(ctx context.Context, raw json.RawMessage, requestID string, start time.Time) APIResponse {
	var event GatewayEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return NewAPIResponse(http.StatusBadRequest, domain.NewErrorResponse("Invalid gateway event", requestID))
	}

	h.logger.Info("gateway request",
		slog.String("request_id", requestID),
		slog.String("method", event.HTTPMethod),
		slog.String("path", event.Path),
	)

	// CORS preflight never reaches route-specific logic
	if event.HTTPMethod == http.MethodOptions {
		return NewAPIResponse(http.StatusOK, map[string]string{"message": "CORS preflight successful"})
	}

	if event.HTTPMethod == http.MethodGet && event.Path == "/health" {
		return NewAPIResponse(http.StatusOK, domain.HealthResponse{
			Status:                "healthy",
			Message:               healthMessage,
			RequestID:             requestID,
			ProcessingTimeSeconds: domain.ProcessingSeconds(start),
			Version:               Version,
		})
	}

	if event.HTTPMethod == http.MethodPost && event.Path == "/analyze" {
		req, err := extract.Parse(bodyBytes(event.Body))
		if err != nil {
			apiErr := err.(*domain.APIError)
			return NewAPIResponse(apiErr.HTTPStatusCode(), domain.NewErrorResponse(apiErr.Message, requestID))
		}

		result, apiErr := h.orch.Analyze(ctx, req, requestID, start)
		if apiErr != nil {
			return NewAPIResponse(apiErr.HTTPStatusCode(), domain.NewErrorResponse(apiErr.Message, requestID))
		}
		return NewAPIResponse(http.StatusOK, result)
	}

	return NewAPIResponse(http.StatusNotFound, struct {
		Status          string   `json:"status"`
		Message         string   `json:"message"`
		AvailableRoutes []string `json:"available_routes"`
	}{
		Status:          domain.StatusError,
		Message:         "Route not found",
		AvailableRoutes: []string{"/health", "/analyze"},
	})
}

// handleStorage serves object-store notifications. The output bucket must
// be carried by the event itself; there is no fallback to the configured
// default on this path.
func (h *Handler) handleStorage(ctx context.Context, raw json.RawMessage, requestID string, start time.Time) any {
	var event StorageEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return domain.NewErrorResponse("Invalid storage event", requestID)
	}

	h.logger.Info("storage notification",
		slog.String("request_id", requestID),
		slog.String("source", event.EventSource),
		slog.String("bucket", event.Bucket),
		slog.String("key", event.Key),
	)

	if event.Bucket == "" || event.Key == "" {
		return domain.NewErrorResponse("Storage notification requires 'bucket' and 'key'", requestID)
	}

	req := &domain.AnalysisRequest{
		Kind:                    domain.KindObject,
		Bucket:                  event.Bucket,
		Key:                     event.Key,
		DestinationBucket:       event.OutputBucket,
		AllowDefaultDestination: false,
	}

	result, apiErr := h.orch.Analyze(ctx, req, requestID, start)
	if apiErr != nil {
		return domain.NewErrorResponse(apiErr.Message, requestID)
	}
	return result
}

// handleDirect serves platform-native invocations: the input mapping is
// interpreted the same way a parsed gateway body would be, and events that
// carry no analysis fields get a fixed acknowledgement.
func (h *Handler) handleDirect(ctx context.Context, raw json.RawMessage, requestID string, start time.Time) any {
	var probe struct {
		Prompt   *json.RawMessage `json:"prompt"`
		S3Bucket *json.RawMessage `json:"s3_bucket"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return domain.NewErrorResponse("Invalid JSON in request body", requestID)
	}

	if probe.Prompt == nil && probe.S3Bucket == nil {
		return domain.Acknowledgement{
			Status:                domain.StatusSuccess,
			Message:               ackMessage,
			RequestID:             requestID,
			ProcessingTimeSeconds: domain.ProcessingSeconds(start),
			Version:               Version,
		}
	}

	req, err := extract.Parse(raw)
	if err != nil {
		apiErr := err.(*domain.APIError)
		return domain.NewErrorResponse(apiErr.Message, requestID)
	}

	result, apiErr := h.orch.Analyze(ctx, req, requestID, start)
	if apiErr != nil {
		return domain.NewErrorResponse(apiErr.Message, requestID)
	}
	return result
}
