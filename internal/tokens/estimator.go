// Package tokens provides prompt-size estimation for logging and auditing.
package tokens

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// Estimator counts tokens with tiktoken's cl100k_base encoding, falling
// back to a chars/4 heuristic when the codec is unavailable.
type Estimator struct {
	once  sync.Once
	codec tokenizer.Codec
}

// NewEstimator creates an Estimator. The codec is loaded lazily on first use.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Count returns the estimated token count for text.
func (e *Estimator) Count(text string) int {
	e.once.Do(func() {
		codec, err := tokenizer.Get(tokenizer.Cl100kBase)
		if err == nil {
			e.codec = codec
		}
	})

	if e.codec != nil {
		if ids, _, err := e.codec.Encode(text); err == nil {
			return len(ids)
		}
	}

	// Rough heuristic: ~4 characters per token
	return (len(text) + 3) / 4
}
