// Package orchestrator ties the payload extractor, the analysis capability,
// and optional result persistence into one request lifecycle.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"codescope/internal/audit"
	"codescope/internal/capability"
	"codescope/internal/domain"
	"codescope/internal/extract"
	"codescope/internal/objectstore"
	"codescope/internal/tokens"
)

// Orchestrator executes validated analysis requests.
type Orchestrator struct {
	extractor    *extract.Extractor
	analyzer     capability.Analyzer
	store        objectstore.Store
	outputBucket string
	auditStore   audit.Store
	estimator    *tokens.Estimator
	logger       *slog.Logger
}

// Options configures an Orchestrator.
type Options struct {
	Extractor *extract.Extractor
	Analyzer  capability.Analyzer
	Store     objectstore.Store

	// OutputBucket is the configured default destination, consulted only
	// for requests that allow the fallback.
	OutputBucket string

	// AuditStore is optional; nil disables invocation auditing.
	AuditStore audit.Store

	Logger *slog.Logger
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		extractor:    opts.Extractor,
		analyzer:     opts.Analyzer,
		store:        opts.Store,
		outputBucket: opts.OutputBucket,
		auditStore:   opts.AuditStore,
		estimator:    tokens.NewEstimator(),
		logger:       logger,
	}
}

// Analyze runs one request to completion: resolve the prompt, invoke the
// capability once, persist when a destination is known, and assemble the
// result. The capability call is synchronous and single-shot; any timeout
// is the caller's context's concern.
func (o *Orchestrator) Analyze(ctx context.Context, req *domain.AnalysisRequest, requestID string, start time.Time) (*domain.AnalysisResult, *domain.APIError) {
	prompt, info, err := o.extractor.BuildPrompt(ctx, req)
	if err != nil {
		apiErr := asAPIError(err)
		o.recordFailure(ctx, req, requestID, start, apiErr)
		return nil, apiErr
	}

	promptTokens := o.estimator.Count(prompt)
	o.logger.Info("invoking analysis capability",
		slog.String("request_id", requestID),
		slog.String("analyzer", o.analyzer.Name()),
		slog.String("kind", string(req.Kind)),
		slog.Int("prompt_tokens", promptTokens),
	)

	analysis, err := o.analyzer.Analyze(ctx, capability.SystemPrompt, prompt)
	if err != nil {
		o.logger.Error("analysis capability failed",
			slog.String("request_id", requestID),
			slog.String("analyzer", o.analyzer.Name()),
			slog.String("error", err.Error()),
		)
		apiErr := domain.ErrCapability(fmt.Sprintf("Analysis failed: %s", err))
		o.recordFailure(ctx, req, requestID, start, apiErr)
		return nil, apiErr
	}

	result := &domain.AnalysisResult{
		Status:    domain.StatusSuccess,
		Message:   "Code analysis completed",
		RequestID: requestID,
		Analysis:  analysis,
	}

	if req.Kind == domain.KindPrompt {
		echo := req.Prompt
		result.InputPrompt = &echo
	} else {
		result.Input = &domain.ObjectInput{
			Bucket:            req.Bucket,
			Key:               req.Key,
			DestinationBucket: req.DestinationBucket,
		}
		result.OutputLocation = o.persist(ctx, req, info, analysis, requestID)
	}

	result.ProcessingTimeSeconds = domain.ProcessingSeconds(start)

	entry := o.newEntry(req, requestID, start)
	entry.Status = domain.StatusSuccess
	entry.PromptTokens = promptTokens
	entry.OutputLocation = result.OutputLocation
	if info != nil {
		entry.FileType = info.FileType
	}
	audit.Record(ctx, o.auditStore, entry, o.logger)

	return result, nil
}

// persist writes the analysis to the destination bucket when one is known.
// Write failures are logged and swallowed: the primary analysis succeeded,
// so the request still reports success. Returns the output location, or ""
// when nothing was written.
func (o *Orchestrator) persist(ctx context.Context, req *domain.AnalysisRequest, info *extract.ObjectInfo, analysis, requestID string) string {
	destination := req.DestinationBucket
	if destination == "" && req.AllowDefaultDestination {
		destination = o.outputBucket
	}
	if destination == "" {
		return ""
	}

	now := time.Now().UTC()
	outputKey := extract.OutputKey(req.Key, now)

	fileType := ""
	if info != nil {
		fileType = info.FileType
	}

	metadata := map[string]string{
		"source-bucket":      req.Bucket,
		"source-key":         req.Key,
		"analysis-timestamp": now.Format(time.RFC3339),
		"file-type":          fileType,
		"request-id":         requestID,
	}

	if err := o.store.Put(ctx, destination, outputKey, []byte(analysis), "text/markdown", metadata); err != nil {
		o.logger.Error("failed to persist analysis",
			slog.String("request_id", requestID),
			slog.String("destination_bucket", destination),
			slog.String("output_key", outputKey),
			slog.String("error", err.Error()),
		)
		return ""
	}

	o.logger.Info("analysis persisted",
		slog.String("request_id", requestID),
		slog.String("destination_bucket", destination),
		slog.String("output_key", outputKey),
	)

	return destination + "/" + outputKey
}

func (o *Orchestrator) recordFailure(ctx context.Context, req *domain.AnalysisRequest, requestID string, start time.Time, apiErr *domain.APIError) {
	entry := o.newEntry(req, requestID, start)
	entry.Status = domain.StatusError
	entry.ErrorMessage = apiErr.Message
	audit.Record(ctx, o.auditStore, entry, o.logger)
}

func (o *Orchestrator) newEntry(req *domain.AnalysisRequest, requestID string, start time.Time) *audit.Entry {
	return &audit.Entry{
		RequestID:    requestID,
		Kind:         string(req.Kind),
		SourceBucket: req.Bucket,
		SourceKey:    req.Key,
		Duration:     time.Since(start),
	}
}

func asAPIError(err error) *domain.APIError {
	if apiErr, ok := err.(*domain.APIError); ok {
		return apiErr
	}
	return domain.ErrServer(err.Error())
}
