package function

import "encoding/json"

// APIResponse is the transport envelope for gateway-originated requests:
// numeric status code, fixed headers, serialized body. Non-gateway callers
// consume payloads directly and never see this shape.
type APIResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// NewAPIResponse wraps a payload in the gateway envelope. The CORS headers
// are fixed and present on every response, errors included.
func NewAPIResponse(statusCode int, payload any) APIResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		// Payloads are service-constructed structs; a marshal failure is a
		// programming error, not a request error.
		body = []byte(`{"status":"error","message":"Failed to serialize response"}`)
		statusCode = 500
	}

	return APIResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
			"Access-Control-Allow-Headers": "Content-Type, Authorization",
		},
		Body: string(body),
	}
}
