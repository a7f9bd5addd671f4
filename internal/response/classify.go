package response

import "strings"

// Classify assigns a Response to one already-stripped, non-empty line,
// in the first-match-wins, case-sensitive substring order from spec.md
// §4.1. Callers are responsible for producing Empty themselves when no
// line arrived before the read deadline — Classify never returns Empty.
func Classify(line string, g Glyphs) Response {
	switch {
	case strings.Contains(line, "login:"):
		return LoginPrompt
	case strings.Contains(line, "Password:"):
		return PasswordPrompt
	case strings.Contains(line, g.ShellSigil):
		return ShellPrompt
	case strings.Contains(line, "Debug menu") && strings.Contains(line, g.DebugMenuBanner):
		return DebugMenuReady
	case strings.Contains(line, "Debug menu") && strings.Contains(line, g.DebugMenuContinued):
		return DebugMenuWithContinuedMessage
	case strings.Contains(line, "BP is on"):
		return BPOn
	case strings.Contains(line, "BP is off"):
		return BPOff
	case strings.Contains(line, "Temp OK"):
		return TempSuccess
	case strings.Contains(line, "Temp FAIL"):
		return TempFailed
	case strings.Contains(line, "Rebooting"):
		return Rebooting
	default:
		return Other
	}
}
