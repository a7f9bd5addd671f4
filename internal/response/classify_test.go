package response

import "testing"

func TestClassify(t *testing.T) {
	g := DefaultGlyphs()

	cases := []struct {
		name string
		line string
		want Response
	}{
		{"login prompt", "raspberrypi login:", LoginPrompt},
		{"password prompt", "Password:", PasswordPrompt},
		{"shell prompt", "pi@raspberrypi:~$", ShellPrompt},
		{"debug menu ready", "Debug menu]", DebugMenuReady},
		{"debug menu continued", "Debug menu continued", DebugMenuWithContinuedMessage},
		{"bp on", "BP is on", BPOn},
		{"bp off", "BP is off", BPOff},
		{"temp success", "Temp OK", TempSuccess},
		{"temp failed", "Temp FAIL", TempFailed},
		{"rebooting", "Rebooting now", Rebooting},
		{"other", "some random noise", Other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.line, g); got != tc.want {
				t.Errorf("Classify(%q) = %v, want %v", tc.line, got, tc.want)
			}
		})
	}
}

// TestClassifyFirstMatchWins exercises the first-match-wins ordering when
// a line could plausibly match more than one rule.
func TestClassifyFirstMatchWins(t *testing.T) {
	g := DefaultGlyphs()

	// Contains both "login:" and a shell sigil; login: must win since it
	// is checked first.
	if got := Classify("login: $", g); got != LoginPrompt {
		t.Errorf("Classify(\"login: $\") = %v, want LoginPrompt", got)
	}
}
