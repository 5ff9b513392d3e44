// Package terminal renders the emulator in a terminal using tcell.
// Each character cell shows two vertically stacked pixels with the upper
// half block glyph, so the 160x160 LCD fits in 160x80 cells.
package terminal

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-svision/svision/backend"
	"github.com/valerio/go-svision/svision/input/action"
	"github.com/valerio/go-svision/svision/video"
)

// keyTimeout approximates key release: terminals only report key-down, so
// a pad button is considered released once its repeat events stop arriving.
const keyTimeout = 100 * time.Millisecond

// Backend implements the backend interface using tcell for terminal
// rendering.
type Backend struct {
	screen tcell.Screen
	config backend.Config

	keySeen map[action.Action]time.Time
	held    map[action.Action]bool
}

func New() *Backend {
	return &Backend{
		keySeen: make(map[action.Action]time.Time),
		held:    make(map[action.Action]bool),
	}
}

func (t *Backend) Init(config backend.Config) error {
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	t.screen = screen
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	slog.Info("Terminal backend initialized")
	return nil
}

func (t *Backend) Update(frame *video.FrameBuffer) error {
	now := time.Now()

	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	t.updateHeldKeys(now)
	t.drawFrame(frame)
	t.screen.Show()
	return nil
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act := mapKey(ev)
	if act == action.Unknown {
		return
	}

	if act == action.EmulatorQuit {
		if t.config.OnQuit != nil {
			t.config.OnQuit()
		}
		return
	}

	t.keySeen[act] = now
}

// updateHeldKeys turns the key-repeat stream into press/release
// transitions for the input manager.
func (t *Backend) updateHeldKeys(now time.Time) {
	for act, seen := range t.keySeen {
		active := now.Sub(seen) < keyTimeout
		if active && !t.held[act] {
			t.held[act] = true
			t.config.InputManager.Trigger(act, true)
		} else if !active && t.held[act] {
			t.held[act] = false
			t.config.InputManager.Trigger(act, false)
		}
	}
}

// mapKey translates a tcell key event to a logical action. Enter and Space
// both map to Start, the pad's two conventional bindings.
func mapKey(ev *tcell.EventKey) action.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return action.DPadUp
	case tcell.KeyDown:
		return action.DPadDown
	case tcell.KeyLeft:
		return action.DPadLeft
	case tcell.KeyRight:
		return action.DPadRight
	case tcell.KeyEnter:
		return action.ButtonStart
	case tcell.KeyTab:
		return action.ButtonSelect
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action.EmulatorQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'z', 'Z':
			return action.ButtonA
		case 'x', 'X':
			return action.ButtonB
		case ' ':
			return action.ButtonStart
		case 'q', 'Q':
			return action.EmulatorQuit
		}
	}
	return action.Unknown
}

func (t *Backend) drawFrame(frame *video.FrameBuffer) {
	pixels := frame.ToSlice()
	width := frame.Width()
	height := frame.Height()

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := pixels[y*width+x]
			bottom := top
			if y+1 < height {
				bottom = pixels[(y+1)*width+x]
			}

			style := tcell.StyleDefault.
				Foreground(rgbColor(top)).
				Background(rgbColor(bottom))
			t.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
}

func rgbColor(argb uint32) tcell.Color {
	return tcell.NewRGBColor(
		int32((argb>>16)&0xFF),
		int32((argb>>8)&0xFF),
		int32(argb&0xFF),
	)
}
