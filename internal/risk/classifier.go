// Package risk labels free text with a coarse misinformation-risk level based
// on fixed keyword sets.
package risk

import "strings"

// Level is the triage label attached to misinformation-mode exchanges.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Matching is case-insensitive substring membership, not word-boundary aware:
// "forwarded" matches "forward".
var (
	urgencyKeywords   = []string{"urgent", "immediately", "emergency", "share", "forward"}
	financialKeywords = []string{"bank", "account", "otp", "password", "upi"}
)

// Classify maps a message to exactly one risk level:
// no urgency keyword -> Low; urgency and financial keywords -> High;
// urgency only -> Medium.
func Classify(message string) Level {
	lowered := strings.ToLower(message)
	if !containsAny(lowered, urgencyKeywords) {
		return Low
	}
	if containsAny(lowered, financialKeywords) {
		return High
	}
	return Medium
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
