// Package response defines the fixed Command/Response wire vocabulary the
// device driver reasons over, and the configurable glyph tables that map
// each one to the literal bytes/substrings a given firmware build uses.
package response

import "fmt"

// Response is the classification the Line TTY assigns to one inbound line.
type Response int

const (
	Empty Response = iota
	Other
	LoginPrompt
	PasswordPrompt
	ShellPrompt
	DebugMenuReady
	DebugMenuWithContinuedMessage
	BPOn
	BPOff
	TempSuccess
	TempFailed
	Rebooting
)

func (r Response) String() string {
	switch r {
	case Empty:
		return "Empty"
	case Other:
		return "Other"
	case LoginPrompt:
		return "LoginPrompt"
	case PasswordPrompt:
		return "PasswordPrompt"
	case ShellPrompt:
		return "ShellPrompt"
	case DebugMenuReady:
		return "DebugMenuReady"
	case DebugMenuWithContinuedMessage:
		return "DebugMenuWithContinuedMessage"
	case BPOn:
		return "BPOn"
	case BPOff:
		return "BPOff"
	case TempSuccess:
		return "TempSuccess"
	case TempFailed:
		return "TempFailed"
	case Rebooting:
		return "Rebooting"
	default:
		return fmt.Sprintf("Response(%d)", int(r))
	}
}

// Command is the fixed set of outbound lines the driver can write.
type Command int

const (
	Newline Command = iota
	Login
	LoginPassword
	DebugMenu
	LifecycleMenu
	BrightnessMenu
	UpMenuLevel
	Quit
	StartBP
	CheckBPState
	ReadTemp
	BrightnessHigh
	BrightnessLow
)

func (c Command) String() string {
	switch c {
	case Newline:
		return "Newline"
	case Login:
		return "Login"
	case LoginPassword:
		return "LoginPassword"
	case DebugMenu:
		return "DebugMenu"
	case LifecycleMenu:
		return "LifecycleMenu"
	case BrightnessMenu:
		return "BrightnessMenu"
	case UpMenuLevel:
		return "UpMenuLevel"
	case Quit:
		return "Quit"
	case StartBP:
		return "StartBP"
	case CheckBPState:
		return "CheckBPState"
	case ReadTemp:
		return "ReadTemp"
	case BrightnessHigh:
		return "BrightnessHigh"
	case BrightnessLow:
		return "BrightnessLow"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Glyphs is the configurable wire text for every Command and the
// configurable substrings used to classify a Response. Of the response
// substrings only the shell sigil and the two debug-menu markers are
// configurable; the others ("login:", "Password:", "Debug menu",
// "BP is on"/"BP is off", "Temp OK"/"Temp FAIL", "Rebooting") are fixed
// in Classify. The Command and
// Response enums are the contractual surface (spec.md §9); the literal
// text is device-firmware dependent and lives here so it can be swapped
// per firmware revision without touching the state machine.
type Glyphs struct {
	Commands map[Command]string
	// ShellSigil is the substring that, if present, classifies a line as
	// ShellPrompt (e.g. "$").
	ShellSigil string
	// DebugMenuBanner is the end-of-banner marker that, combined with
	// "Debug menu", classifies DebugMenuReady.
	DebugMenuBanner string
	// DebugMenuContinued is the trailing continued-message marker that,
	// combined with "Debug menu", classifies DebugMenuWithContinuedMessage.
	DebugMenuContinued string
}

// DefaultGlyphs returns the glyph table matching original_source's literal
// firmware wording.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Commands: map[Command]string{
			Newline:        "",
			Login:          "root",
			LoginPassword:  "",
			DebugMenu:      "debug",
			LifecycleMenu:  "1",
			BrightnessMenu: "2",
			UpMenuLevel:    "q",
			Quit:           "quit",
			StartBP:        "b",
			CheckBPState:   "s",
			ReadTemp:       "t",
			BrightnessHigh: "h",
			BrightnessLow:  "l",
		},
		ShellSigil:          "$",
		DebugMenuBanner:     "]",
		DebugMenuContinued:  "continued",
	}
}

// Render renders a command to its canonical wire text (without the CRLF
// terminator, which the TTY appends).
func (g Glyphs) Render(c Command) string {
	return g.Commands[c]
}
