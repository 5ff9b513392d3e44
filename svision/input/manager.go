// Package input routes logical actions from backends to the joypad and to
// registered emulator-level handlers.
package input

import (
	"github.com/valerio/go-svision/svision/input/action"
	"github.com/valerio/go-svision/svision/memory"
)

// Manager dispatches actions. Pad actions go straight to the joypad state
// the controller register reads; everything else fans out to handlers.
type Manager struct {
	handlers map[action.Action][]func(pressed bool)
	joypad   *memory.Joypad
}

func NewManager(joypad *memory.Joypad) *Manager {
	return &Manager{
		handlers: make(map[action.Action][]func(pressed bool)),
		joypad:   joypad,
	}
}

// On registers a callback for an emulator-level action.
func (m *Manager) On(act action.Action, callback func(pressed bool)) {
	m.handlers[act] = append(m.handlers[act], callback)
}

// Trigger handles one action transition from a backend.
func (m *Manager) Trigger(act action.Action, pressed bool) {
	if key, ok := joypadKey(act); ok {
		if m.joypad == nil {
			return
		}
		if pressed {
			m.joypad.Press(key)
		} else {
			m.joypad.Release(key)
		}
		return
	}

	for _, callback := range m.handlers[act] {
		callback(pressed)
	}
}

func joypadKey(act action.Action) (memory.Key, bool) {
	switch act {
	case action.DPadRight:
		return memory.KeyRight, true
	case action.DPadLeft:
		return memory.KeyLeft, true
	case action.DPadDown:
		return memory.KeyDown, true
	case action.DPadUp:
		return memory.KeyUp, true
	case action.ButtonB:
		return memory.KeyB, true
	case action.ButtonA:
		return memory.KeyA, true
	case action.ButtonSelect:
		return memory.KeySelect, true
	case action.ButtonStart:
		return memory.KeyStart, true
	default:
		return 0, false
	}
}
