// Package registration wires the built-in analyzer adapters into the
// capability factory.
package registration

import (
	"codescope/internal/capability/anthropic"
	"codescope/internal/capability/openai"
)

// RegisterBuiltins registers all built-in analyzer types.
func RegisterBuiltins() {
	anthropic.Register()
	openai.Register()
}
