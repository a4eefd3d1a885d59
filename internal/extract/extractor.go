// Package extract turns raw request bodies into validated analysis requests
// and resolves object references into concrete analysis prompts.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"codescope/internal/domain"
	"codescope/internal/objectstore"
)

// Pinned validation messages; callers and tests rely on the exact text.
const (
	msgMissingFields = "Missing required fields: either 'prompt' or 's3_bucket' required"
	msgMissingKey    = "Missing required field: s3_key"
	msgInvalidJSON   = "Invalid JSON in request body"
)

// requestBody is the wire shape shared by the gateway body and direct
// invocation input. Prompt is a pointer so an explicit empty prompt is
// distinguishable from an absent one.
type requestBody struct {
	Prompt            *string `json:"prompt"`
	S3Bucket          string  `json:"s3_bucket"`
	S3Key             string  `json:"s3_key"`
	DestinationBucket string  `json:"destination_bucket"`
}

// Parse validates a raw JSON body and produces the tagged request union.
// The inline prompt wins when both variants are present, matching the
// field-precedence order of the request dispatch.
func Parse(body []byte) (*domain.AnalysisRequest, error) {
	var req requestBody
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, domain.ErrInvalidRequest(msgInvalidJSON)
	}

	if req.Prompt != nil {
		return &domain.AnalysisRequest{
			Kind:                    domain.KindPrompt,
			Prompt:                  *req.Prompt,
			AllowDefaultDestination: true,
		}, nil
	}

	if req.S3Bucket != "" {
		if req.S3Key == "" {
			return nil, domain.ErrInvalidRequest(msgMissingKey)
		}
		return &domain.AnalysisRequest{
			Kind:                    domain.KindObject,
			Bucket:                  req.S3Bucket,
			Key:                     req.S3Key,
			DestinationBucket:       req.DestinationBucket,
			AllowDefaultDestination: true,
		}, nil
	}

	return nil, domain.ErrInvalidRequest(msgMissingFields)
}

// ObjectInfo describes a fetched object for result metadata.
type ObjectInfo struct {
	FileType string
	Size     int64
}

// Extractor resolves analysis requests into concrete prompt text.
type Extractor struct {
	store  objectstore.Store
	logger *slog.Logger
}

// New creates an Extractor backed by the given object store.
func New(store objectstore.Store, logger *slog.Logger) *Extractor {
	return &Extractor{store: store, logger: logger}
}

// BuildPrompt resolves a request to the prompt sent to the capability.
// Inline prompts are passed through verbatim. Object references are fetched
// and embedded into a synthesized analysis prompt; info is non-nil only for
// object requests.
func (e *Extractor) BuildPrompt(ctx context.Context, req *domain.AnalysisRequest) (string, *ObjectInfo, error) {
	if req.Kind == domain.KindPrompt {
		return req.Prompt, nil, nil
	}

	obj, err := e.store.Get(ctx, req.Bucket, req.Key)
	if err != nil {
		e.logger.Error("object fetch failed",
			slog.String("bucket", req.Bucket),
			slog.String("key", req.Key),
			slog.String("error", err.Error()),
		)
		return "", nil, domain.ErrStoreRead(fmt.Sprintf("Failed to read object: %s", err))
	}

	info := &ObjectInfo{
		FileType: FileType(req.Key),
		Size:     obj.Size,
	}

	return synthesizePrompt(req.Key, info, obj.Data), info, nil
}

// FileType derives a file type from the key's trailing filename extension,
// lower-cased. Keys without an extension report "unknown".
func FileType(key string) string {
	ext := path.Ext(key)
	if ext == "" {
		return "unknown"
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// OutputKey builds the deterministic destination key for a persisted
// analysis: path separators in the source key are flattened and the
// timestamp is second precision.
func OutputKey(sourceKey string, ts time.Time) string {
	sanitized := strings.ReplaceAll(sourceKey, "/", "_")
	return fmt.Sprintf("analysis/%s_%s_analysis.md", sanitized, ts.Format("20060102_150405"))
}

func synthesizePrompt(key string, info *ObjectInfo, content []byte) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this %s code file from object storage:\n\n", info.FileType)
	fmt.Fprintf(&b, "File: %s\n", key)
	fmt.Fprintf(&b, "Size: %d bytes\n\n", info.Size)
	fmt.Fprintf(&b, "```%s\n%s\n```\n\n", info.FileType, string(content))
	b.WriteString(`Provide a detailed analysis covering:
1. Code quality and maintainability
2. Security vulnerabilities
3. Performance considerations
4. Best practices and anti-patterns
5. Concrete improvement examples
`)

	return b.String()
}
