package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLowWithoutUrgencyKeywords(t *testing.T) {
	for _, msg := range []string{
		"",
		"nice weather today",
		"please verify this claim about vaccines",
		"my bank statement looks fine", // financial alone never raises the level
	} {
		assert.Equal(t, Low, Classify(msg), "message: %q", msg)
	}
}

func TestClassifyMediumWithUrgencyOnly(t *testing.T) {
	for _, msg := range []string{
		"urgent: read this now",
		"share this with everyone you know",
		"act immediately or miss out",
		"do not forward urgently", // substring semantics still match
	} {
		assert.Equal(t, Medium, Classify(msg), "message: %q", msg)
	}
}

func TestClassifyHighWithUrgencyAndFinancial(t *testing.T) {
	for _, msg := range []string{
		"Forward this urgent OTP message now",
		"urgent bank transfer required",
		"EMERGENCY: your account password expires, share this",
		"send your upi pin immediately",
	} {
		assert.Equal(t, High, Classify(msg), "message: %q", msg)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Classify("urgent bank transfer"), Classify("URGENT bank transfer"))
	assert.Equal(t, High, Classify("UrGeNt BANK transfer"))
}

func TestClassifyMatchesInsideWords(t *testing.T) {
	// Word-boundary handling is deliberately absent.
	assert.Equal(t, Medium, Classify("this was forwarded to me"))
	assert.Equal(t, High, Classify("shareholder accounts meeting"))
}
