package service

import (
	"context"
)

// TextCompleter is the interface for the text-completion service used
// by intent extraction. The live implementation talks to Gemini; tests
// inject fakes.
type TextCompleter interface {
	// Complete sends a prompt and returns the raw model output. The
	// output may contain code fences or commentary around the JSON.
	Complete(ctx context.Context, prompt string) (string, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}
