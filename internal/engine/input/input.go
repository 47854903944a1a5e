// Package input handles SDL2 input events for the sphere viewer.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/texsphere/internal/engine/control"
)

// EventType tells which fields of an Event are meaningful.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventAction
	EventDrag
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Action control.Action
	Width  int
	Height int
	DX, DY int // drag delta in pixels
	Wheel  int // scroll steps, positive away from the user
}

// Bindings maps keys to viewer actions.
var Bindings = map[sdl.Keycode]control.Action{
	sdl.K_UP:           control.ActionPitchUp,
	sdl.K_DOWN:         control.ActionPitchDown,
	sdl.K_LEFT:         control.ActionYawLeft,
	sdl.K_RIGHT:        control.ActionYawRight,
	sdl.K_EQUALS:       control.ActionZoomIn,
	sdl.K_KP_PLUS:      control.ActionZoomIn,
	sdl.K_MINUS:        control.ActionZoomOut,
	sdl.K_KP_MINUS:     control.ActionZoomOut,
	sdl.K_LEFTBRACKET:  control.ActionRadiusDown,
	sdl.K_RIGHTBRACKET: control.ActionRadiusUp,
	sdl.K_1:            control.ActionLatDown,
	sdl.K_2:            control.ActionLatUp,
	sdl.K_3:            control.ActionLonDown,
	sdl.K_4:            control.ActionLonUp,
	sdl.K_o:            control.ActionOpenTexture,
	sdl.K_t:            control.ActionToggleTexture,
	sdl.K_s:            control.ActionCapture,
	sdl.K_ESCAPE:       control.ActionQuit,
}

// Input handles all input processing.
type Input struct {
	events   []Event
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			action, ok := Bindings[e.Keysym.Sym]
			if !ok {
				continue
			}
			if action == control.ActionQuit {
				i.events = append(i.events, Event{Type: EventQuit})
				return true
			}
			i.events = append(i.events, Event{Type: EventAction, Action: action})

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if i.dragging && (e.XRel != 0 || e.YRel != 0) {
				i.events = append(i.events, Event{
					Type: EventDrag,
					DX:   int(e.XRel),
					DY:   int(e.YRel),
				})
			}

		case *sdl.MouseWheelEvent:
			if e.Y != 0 {
				i.events = append(i.events, Event{Type: EventWheel, Wheel: int(e.Y)})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
