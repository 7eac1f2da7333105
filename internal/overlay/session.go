package overlay

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/oklog/ulid/v2"
	"golang.org/x/mobile/event/mouse"
)

// Action selects what a confirmed selection is handed off for.
type Action int

const (
	ActionCopy Action = iota
	ActionPin
	ActionSave
)

func (a Action) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionPin:
		return "pin"
	case ActionSave:
		return "save"
	}
	return "unknown"
}

// Selection is what a session hands to its collaborators on confirm.
type Selection struct {
	// Rect is the crop rectangle in logical monitor-local pixels.
	Rect Rectangle
	// ScreenX and ScreenY are the monitor origin.
	ScreenX, ScreenY int
	// Scale is the display scale factor at confirm time, 0 when unknown.
	Scale  float64
	Shapes []Shape
}

// Handoff delivers a confirmed selection to the capture side.
type Handoff interface {
	Deliver(ctx context.Context, action Action, sel Selection) error
}

// HandoffFunc adapts a function to Handoff.
type HandoffFunc func(ctx context.Context, action Action, sel Selection) error

// Deliver calls f.
func (f HandoffFunc) Deliver(ctx context.Context, action Action, sel Selection) error {
	return f(ctx, action, sel)
}

var errNoHandoff = errors.New("no handoff configured")

// Snapshot is an immutable view of a session published to subscribers.
type Snapshot struct {
	SessionID string
	Mouse     MouseState
	Crop      *Rectangle
	Mode      CropMode
	Pen       Pen
	Shapes    []Shape
	Preview   *Shape
	CanUndo   bool
	CanRedo   bool
	Closed    bool
}

// Option configures a Session.
type Option func(*Session)

// WithDisplay sets the resolver used for physical truncation and the
// screen origin of the confirmed selection.
func WithDisplay(d DisplayResolver) Option { return func(s *Session) { s.display = d } }

// WithHandoff sets the collaborator invoked on confirm.
func WithHandoff(h Handoff) Option { return func(s *Session) { s.handoff = h } }

// WithHitMargin sets the resize handle hit margin in logical pixels.
func WithHitMargin(m float64) Option { return func(s *Session) { s.margin = m } }

// WithPen sets the initial pen.
func WithPen(p Pen) Option { return func(s *Session) { s.initialPen = p } }

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Session is the state of one overlay interaction: pointer tracking, crop
// geometry, annotation and history. It is driven from a single event
// goroutine and is not safe for concurrent use.
type Session struct {
	id         ulid.ULID
	display    DisplayResolver
	handoff    Handoff
	margin     float64
	initialPen Pen

	tracker  Tracker
	crop     *CropEngine
	history  *History
	annotate *AnnotationEngine

	subs    []subscriber
	nextSub int
	closed  bool
}

// NewSession starts a fresh session.
func NewSession(opts ...Option) *Session {
	s := &Session{id: ulid.Make()}
	for _, o := range opts {
		o(s)
	}
	s.crop = NewCropEngine(s.display, s.margin)
	s.history = NewHistory()
	s.annotate = NewAnnotationEngine(s.history)
	s.annotate.SetPen(s.initialPen)
	log.Printf("overlay: session %s started", s.id)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id.String() }

// Closed reports whether the session has ended.
func (s *Session) Closed() bool { return s.closed }

// Mouse returns the current pointer state.
func (s *Session) Mouse() MouseState { return s.tracker.State() }

// Crop returns the current crop rectangle.
func (s *Session) Crop() (Rectangle, bool) { return s.crop.Crop() }

// SetCrop replaces the crop rectangle, e.g. to restore a previous region.
func (s *Session) SetCrop(r Rectangle) {
	if s.closed {
		return
	}
	s.crop.SetCrop(r)
	s.syncMode()
	s.publish()
}

// Mode returns the crop mode.
func (s *Session) Mode() CropMode { return s.crop.Mode() }

// HitMargin returns the resize handle hit margin.
func (s *Session) HitMargin() float64 { return s.crop.HitMargin() }

// Pen returns the active pen.
func (s *Session) Pen() Pen { return s.annotate.Pen() }

// Shapes returns the committed shapes visible at the history cursor.
func (s *Session) Shapes() []Shape { return s.history.Shapes() }

// Preview returns the in-progress annotation.
func (s *Session) Preview() (Shape, bool) { return s.annotate.Preview() }

// History exposes the undo log for inspection.
func (s *Session) History() *History { return s.history }

// Subscribe registers fn to receive a snapshot after every processed input.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Snapshot builds the current view of the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID: s.ID(),
		Mouse:     s.tracker.State(),
		Mode:      s.crop.Mode(),
		Pen:       s.annotate.Pen(),
		Shapes:    s.history.Shapes(),
		CanUndo:   s.history.CanUndo(),
		CanRedo:   s.history.CanRedo(),
		Closed:    s.closed,
	}
	if r, ok := s.crop.Crop(); ok {
		snap.Crop = &r
	}
	if p, ok := s.annotate.Preview(); ok {
		snap.Preview = &p
	}
	return snap
}

func (s *Session) publish() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, sub := range append([]subscriber(nil), s.subs...) {
		sub.fn(snap)
	}
}

// Press starts a gesture at p. It is ignored while a gesture is active.
func (s *Session) Press(p Point) {
	if s.tracker.State().Pressing {
		return
	}
	s.dispatch(s.tracker.Press(p))
}

// Move moves the pointer to p.
func (s *Session) Move(p Point) { s.dispatch(s.tracker.Move(p)) }

// Release ends the gesture at p.
func (s *Session) Release(p Point) { s.dispatch(s.tracker.Release(p)) }

// HandleMouseEvent feeds a window mouse event into the session and reports
// whether it was used.
func (s *Session) HandleMouseEvent(e mouse.Event, pixelsPerLogical float64) bool {
	if s.closed {
		return false
	}
	ev, ok := s.tracker.HandleEvent(e, pixelsPerLogical)
	if !ok {
		return false
	}
	s.dispatch(ev)
	return true
}

func (s *Session) dispatch(ev PointerEvent) {
	if s.closed {
		return
	}
	if !s.crop.HandlePointer(ev) && s.crop.Mode().Kind == ModePainting {
		if r, ok := s.crop.Crop(); ok {
			s.annotate.HandlePointer(ev, r)
		}
	}
	if ev.Kind == PointerRelease {
		s.syncMode()
	}
	s.publish()
}

// syncMode hands idle geometry over to painting while a pen is selected
// and a crop area exists, and back to idle otherwise.
func (s *Session) syncMode() {
	_, hasCrop := s.crop.Crop()
	mode := s.crop.Mode()
	switch {
	case s.annotate.Pen().Active() && hasCrop && mode.Kind == ModeIdle:
		_ = s.crop.SetMode(Painting)
	case mode.Kind == ModePainting && (!s.annotate.Pen().Active() || !hasCrop):
		_ = s.crop.SetMode(Idle)
	}
}

// SetPen selects the annotation tool.
func (s *Session) SetPen(p Pen) {
	if s.closed {
		return
	}
	s.annotate.SetPen(p)
	s.syncMode()
	s.publish()
}

// TogglePen selects kind with the current styling, or deselects it when it
// is already active.
func (s *Session) TogglePen(kind PenKind) {
	p := s.annotate.Pen()
	if p.StrokeColor == "" {
		style := NewPen(kind)
		style.Kind = p.Kind
		p = style
	}
	if p.Kind == kind {
		p.Kind = PenNone
	} else {
		p.Kind = kind
	}
	s.SetPen(p)
}

// Commit appends shape to the history directly.
func (s *Session) Commit(shape Shape) {
	if s.closed {
		return
	}
	s.history.Commit(shape)
	s.publish()
}

// Undo steps the history back.
func (s *Session) Undo() bool {
	if s.closed {
		return false
	}
	moved := s.history.Undo()
	s.publish()
	return moved
}

// Redo steps the history forward.
func (s *Session) Redo() bool {
	if s.closed {
		return false
	}
	moved := s.history.Redo()
	s.publish()
	return moved
}

// CancelCrop clears the crop rectangle and any gesture in progress.
func (s *Session) CancelCrop() {
	if s.closed {
		return
	}
	s.crop.Cancel()
	s.annotate.Reset()
	s.syncMode()
	s.publish()
}

// Cancel handles the escape signal: an open text entry is discarded first,
// then the crop is cancelled, and with nothing left to cancel the session
// closes. It reports whether the session is closed.
func (s *Session) Cancel() bool {
	if s.closed {
		return true
	}
	if _, ok := s.annotate.Text(); ok {
		s.annotate.CancelText()
		s.publish()
		return false
	}
	if _, ok := s.crop.Crop(); ok || s.crop.Mode().Kind != ModeIdle {
		s.CancelCrop()
		return false
	}
	s.Close()
	return true
}

// SetText edits the open text entry.
func (s *Session) SetText(text string) bool {
	if s.closed {
		return false
	}
	ok := s.annotate.SetText(text)
	s.publish()
	return ok
}

// Text returns the content of the open text entry.
func (s *Session) Text() (string, bool) { return s.annotate.Text() }

// ConfirmText commits the open text entry if it has visible content.
func (s *Session) ConfirmText() bool {
	if s.closed {
		return false
	}
	ok := s.annotate.ConfirmText()
	s.publish()
	return ok
}

// BlurText finishes the open text entry when it loses focus.
func (s *Session) BlurText() {
	if s.closed {
		return
	}
	s.annotate.BlurText()
	s.publish()
}

// Confirm hands the selection to the handoff collaborator. An open text
// entry is delivered with the committed shapes but is not committed. On
// failure the session keeps its state so the user can retry; on success it
// closes.
func (s *Session) Confirm(ctx context.Context, action Action) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.crop.Mode().Geometry() {
		return ErrGestureInProgress
	}
	r, ok := s.crop.Crop()
	if !ok {
		return ErrNoSelection
	}
	if s.handoff == nil {
		return fmt.Errorf("confirm %s: %w", action, errNoHandoff)
	}
	sel := Selection{Rect: r, Shapes: s.history.Shapes()}
	if t, ok := s.annotate.PendingText(); ok {
		shapes := make([]Shape, 0, len(sel.Shapes)+1)
		sel.Shapes = append(append(shapes, sel.Shapes...), t)
	}
	if s.display != nil {
		if d, ok := s.display.CurrentDisplay(); ok {
			sel.ScreenX, sel.ScreenY, sel.Scale = d.X, d.Y, d.ScaleFactor
		}
	}
	if err := s.handoff.Deliver(ctx, action, sel); err != nil {
		log.Printf("overlay: session %s: %s failed: %v", s.id, action, err)
		s.publish()
		return fmt.Errorf("confirm %s: %w", action, err)
	}
	s.Close()
	return nil
}

// Close ends the session. Subscribers get a final closed snapshot and are
// then dropped.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.crop.Cancel()
	s.annotate.Reset()
	s.history = NewHistory()
	s.annotate = NewAnnotationEngine(s.history)
	s.publish()
	s.subs = nil
	log.Printf("overlay: session %s closed", s.id)
}
