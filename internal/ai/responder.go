// Package ai produces bot responses, either canned or via the Gemini
// completion service.
package ai

import (
	"context"

	"safetybot/internal/bot"
)

// Responder turns a (mode, message) pair into a bot response. Implementations
// must always return a usable string; upstream failures are converted to a
// degraded response rather than surfaced as errors.
type Responder interface {
	Respond(ctx context.Context, mode bot.Mode, message string) string
}

// StaticResponder serves the fixed per-mode bodies. The message argument is
// accepted but never influences selection.
type StaticResponder struct{}

// NewStaticResponder returns the canned responder used by the lite variant
// and as the fallback when no completion service is configured.
func NewStaticResponder() *StaticResponder {
	return &StaticResponder{}
}

// Respond implements Responder.
func (s *StaticResponder) Respond(_ context.Context, mode bot.Mode, _ string) string {
	return bot.CannedResponse(mode)
}
