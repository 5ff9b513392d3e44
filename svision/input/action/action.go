// Package action defines the logical input actions backends can emit.
package action

// Action identifies a logical input, either a Supervision button or an
// emulator-level command.
type Action int

const (
	Unknown Action = iota

	// Supervision pad
	DPadRight
	DPadLeft
	DPadDown
	DPadUp
	ButtonB
	ButtonA
	ButtonSelect
	ButtonStart

	// Emulator commands
	EmulatorQuit
)

func (a Action) String() string {
	switch a {
	case DPadRight:
		return "right"
	case DPadLeft:
		return "left"
	case DPadDown:
		return "down"
	case DPadUp:
		return "up"
	case ButtonB:
		return "b"
	case ButtonA:
		return "a"
	case ButtonSelect:
		return "select"
	case ButtonStart:
		return "start"
	case EmulatorQuit:
		return "quit"
	default:
		return "unknown"
	}
}
