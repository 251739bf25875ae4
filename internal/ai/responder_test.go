package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"safetybot/internal/bot"
)

func TestStaticResponderServesCannedBodies(t *testing.T) {
	r := NewStaticResponder()
	ctx := context.Background()

	assert.Equal(t, bot.CannedResponse(bot.ModeFraud), r.Respond(ctx, bot.ModeFraud, "help"))
	// Message content never changes the selected body.
	assert.Equal(t,
		r.Respond(ctx, bot.ModeCybercrime, "I was scammed"),
		r.Respond(ctx, bot.ModeCybercrime, "totally different message"))
	assert.Equal(t, bot.CannedResponse(bot.ModeGeneral), r.Respond(ctx, bot.ModeGeneral, ""))
}

func TestApologyEmbedsError(t *testing.T) {
	msg := apology(errors.New("connection refused"))
	assert.Contains(t, msg, "I apologize")
	assert.Contains(t, msg, "connection refused")
}

func TestNewGeminiResponderRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiResponder(context.Background(), "", "")
	assert.Error(t, err)
}
