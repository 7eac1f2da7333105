package overlay

import (
	"golang.org/x/mobile/event/mouse"
)

// MouseState is the normalized pointer state shared by the engines.
// Press is set when a press begins and cleared on release; it does not
// change while the button is held.
type MouseState struct {
	Pressing bool
	Press    *Point
	Position *Point
}

// PointerKind identifies which pointer transition produced a MouseState.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	}
	return "unknown"
}

// PointerEvent pairs a transition with the state it produced.
type PointerEvent struct {
	Kind  PointerKind
	State MouseState
}

// Tracker maps raw pointer transitions onto a MouseState. It is the only
// writer of that state.
type Tracker struct {
	state MouseState
}

// State returns a copy of the current state.
func (t *Tracker) State() MouseState { return t.state.clone() }

// Press records the start of a gesture at p. A press while a gesture is
// already active leaves the state untouched.
func (t *Tracker) Press(p Point) PointerEvent {
	if t.state.Pressing {
		return PointerEvent{Kind: PointerPress, State: t.State()}
	}
	t.state.Pressing = true
	t.state.Press = &p
	pos := p
	t.state.Position = &pos
	return PointerEvent{Kind: PointerPress, State: t.State()}
}

// Move updates the live position. Hover moves are tracked even when no
// press is active.
func (t *Tracker) Move(p Point) PointerEvent {
	t.state.Position = &p
	return PointerEvent{Kind: PointerMove, State: t.State()}
}

// Release ends the gesture. The release position becomes the live position.
func (t *Tracker) Release(p Point) PointerEvent {
	t.state.Pressing = false
	t.state.Press = nil
	t.state.Position = &p
	return PointerEvent{Kind: PointerRelease, State: t.State()}
}

// HandleEvent translates a window mouse event into a pointer transition.
// pixelsPerLogical converts window pixels into logical pixels; values <= 0
// are treated as 1. Only the left button starts and ends gestures; other
// buttons, wheel steps and repeated presses are reported as not handled.
func (t *Tracker) HandleEvent(e mouse.Event, pixelsPerLogical float64) (PointerEvent, bool) {
	if pixelsPerLogical <= 0 {
		pixelsPerLogical = 1
	}
	p := Point{X: float64(e.X) / pixelsPerLogical, Y: float64(e.Y) / pixelsPerLogical}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft || t.state.Pressing {
			return PointerEvent{}, false
		}
		return t.Press(p), true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !t.state.Pressing {
			return PointerEvent{}, false
		}
		return t.Release(p), true
	case mouse.DirNone:
		return t.Move(p), true
	}
	return PointerEvent{}, false
}

func (s MouseState) clone() MouseState {
	out := MouseState{Pressing: s.Pressing}
	if s.Press != nil {
		p := *s.Press
		out.Press = &p
	}
	if s.Position != nil {
		p := *s.Position
		out.Position = &p
	}
	return out
}
