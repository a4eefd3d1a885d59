package domain

// RequestKind discriminates the two analysis request variants.
type RequestKind string

const (
	// KindPrompt is an inline-prompt analysis request.
	KindPrompt RequestKind = "prompt"

	// KindObject is an object-store reference analysis request.
	KindObject RequestKind = "object"
)

// AnalysisRequest is the validated, normalized form of an analysis request.
// Exactly one variant is populated: an inline prompt, or an object-store
// reference. Downstream components never re-inspect raw untyped input.
type AnalysisRequest struct {
	Kind RequestKind

	// Prompt is the inline prompt text (KindPrompt). Empty string is
	// permitted; the capability decides how to handle emptiness.
	Prompt string

	// Bucket and Key reference the object to analyze (KindObject).
	Bucket string
	Key    string

	// DestinationBucket is where the analysis result should be written.
	// Optional for object requests.
	DestinationBucket string

	// AllowDefaultDestination controls whether a missing DestinationBucket
	// falls back to the configured output bucket. True for API and direct
	// invocations; false for storage notifications, which must name their
	// output bucket explicitly.
	AllowDefaultDestination bool
}
