// Package bot holds the advice modes and the canned/prompt text catalog.
package bot

// Mode selects which advice behavior applies to a chat request.
type Mode string

const (
	ModeMisinformation Mode = "misinformation"
	ModeCybercrime     Mode = "cybercrime"
	ModeAbuse          Mode = "abuse"
	ModeFraud          Mode = "fraud"
	ModeGeneral        Mode = "general"
)

// ParseMode maps a wire string to a Mode. Unknown values fall back to
// ModeGeneral so dispatch stays total.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeMisinformation, ModeCybercrime, ModeAbuse, ModeFraud, ModeGeneral:
		return Mode(s)
	default:
		return ModeGeneral
	}
}

// String returns the wire form of the mode.
func (m Mode) String() string {
	return string(m)
}
