package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModeFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, ModeFraud, ParseMode("fraud"))
	assert.Equal(t, ModeMisinformation, ParseMode("misinformation"))
	assert.Equal(t, ModeGeneral, ParseMode(""))
	assert.Equal(t, ModeGeneral, ParseMode("FRAUD")) // wire values are lowercase
	assert.Equal(t, ModeGeneral, ParseMode("something-else"))
}

func TestCannedResponseIgnoresMessage(t *testing.T) {
	// Selection is keyed on mode alone; every known mode has a distinct body.
	bodies := map[string]bool{}
	for _, mode := range []Mode{ModeMisinformation, ModeCybercrime, ModeAbuse, ModeFraud} {
		body := CannedResponse(mode)
		assert.NotEmpty(t, body)
		bodies[body] = true
	}
	assert.Len(t, bodies, 4)
	assert.Contains(t, CannedResponse(ModeFraud), "Bank Fraud & Scam Awareness")
	assert.Equal(t, CannedResponse(ModeGeneral), CannedResponse(ParseMode("unknown")))
	assert.Contains(t, CannedResponse(ModeGeneral), "Community Safety Bot")
}

func TestPromptInterpolatesMessageAtEnd(t *testing.T) {
	msg := "is this giveaway real?"
	for _, mode := range []Mode{ModeMisinformation, ModeCybercrime, ModeAbuse, ModeFraud, ModeGeneral} {
		p := Prompt(mode, msg)
		assert.True(t, strings.HasSuffix(p, msg), "mode %s", mode)
	}
	// Unknown modes fall back to the general-purpose prompt.
	assert.Equal(t, Prompt(ModeGeneral, msg), Prompt(Mode("nonsense"), msg))
}

func TestPromptPreservesMessageVerbatim(t *testing.T) {
	msg := "100% guaranteed returns\nsend OTP"
	assert.True(t, strings.HasSuffix(Prompt(ModeFraud, msg), msg))
}
