package overlay

import "strings"

// AnnotationEngine builds the preview shape for the active pen and commits
// finished shapes into the history.
type AnnotationEngine struct {
	history *History
	pen     Pen
	preview *Shape
	// anchor is the crop-local press position of the current gesture.
	anchor *Point
}

// NewAnnotationEngine creates an engine committing into h.
func NewAnnotationEngine(h *History) *AnnotationEngine {
	return &AnnotationEngine{history: h}
}

// Pen returns the active pen.
func (a *AnnotationEngine) Pen() Pen { return a.pen }

// SetPen switches tools. An open text entry is finished as if it lost
// focus.
func (a *AnnotationEngine) SetPen(p Pen) {
	a.BlurText()
	a.pen = p
	a.anchor = nil
	if a.preview != nil && !isText(*a.preview) {
		a.preview = nil
	}
}

// Preview returns a copy of the in-progress shape.
func (a *AnnotationEngine) Preview() (Shape, bool) {
	if a.preview == nil {
		return Shape{}, false
	}
	return a.preview.clone(), true
}

// Reset drops the preview and any gesture anchor without committing.
func (a *AnnotationEngine) Reset() {
	a.preview = nil
	a.anchor = nil
}

// HandlePointer updates the preview from ev. crop is the current crop
// rectangle; positions are converted into its local space.
func (a *AnnotationEngine) HandlePointer(ev PointerEvent, crop Rectangle) {
	switch ev.Kind {
	case PointerPress:
		if ev.State.Press != nil {
			a.press(crop.Local(*ev.State.Press))
		}
	case PointerMove:
		if ev.State.Pressing && ev.State.Position != nil {
			a.move(crop.Local(*ev.State.Position))
		}
	case PointerRelease:
		a.release()
	}
}

func (a *AnnotationEngine) press(p Point) {
	switch a.pen.Kind {
	case PenNone:
		return
	case PenText:
		a.finishText()
		a.preview = &Shape{
			Value:       TextShape{Point: p, FontSize: a.pen.FontSize, Color: a.pen.StrokeColor},
			StrokeColor: a.pen.StrokeColor,
			StrokeWidth: a.pen.StrokeWidth,
		}
	case PenSequence:
		a.preview = a.shape(SequenceShape{Point: p, Number: a.history.CountSequences() + 1, Size: a.pen.Size})
	default:
		a.preview = nil
		a.anchor = &p
	}
}

func (a *AnnotationEngine) move(p Point) {
	if a.anchor == nil {
		return
	}
	start := *a.anchor
	switch a.pen.Kind {
	case PenRectangle:
		r := RectFromPoints(start, p)
		if r.Empty() {
			a.preview = nil
			return
		}
		a.preview = a.shape(RectangleShape{Rect: r})
	case PenStraightLine:
		a.preview = a.shape(StraightLineShape{Start: start, End: p})
	case PenArrow:
		a.preview = a.shape(ArrowShape{Start: start, End: p})
	case PenFreeLine:
		if a.preview != nil {
			if fl, ok := a.preview.Value.(FreeLineShape); ok {
				a.preview.Value = FreeLineShape{Points: append(fl.Points, p)}
				return
			}
		}
		a.preview = a.shape(FreeLineShape{Points: []Point{start, p}})
	}
}

func (a *AnnotationEngine) release() {
	a.anchor = nil
	if a.pen.Kind == PenText || a.preview == nil {
		return
	}
	a.history.Commit(*a.preview)
	a.preview = nil
}

func (a *AnnotationEngine) shape(v ShapeValue) *Shape {
	return &Shape{Value: v, StrokeColor: a.pen.StrokeColor, StrokeWidth: a.pen.StrokeWidth}
}

// SetText replaces the content of the open text entry. It reports whether
// an entry was open.
func (a *AnnotationEngine) SetText(text string) bool {
	if a.preview == nil {
		return false
	}
	t, ok := a.preview.Value.(TextShape)
	if !ok {
		return false
	}
	t.Text = text
	a.preview.Value = t
	return true
}

// Text returns the content of the open text entry.
func (a *AnnotationEngine) Text() (string, bool) {
	if a.preview == nil {
		return "", false
	}
	t, ok := a.preview.Value.(TextShape)
	return t.Text, ok
}

// ConfirmText commits the open text entry when it has visible content and
// closes it. It reports whether a shape was committed.
func (a *AnnotationEngine) ConfirmText() bool { return a.finishText() }

// BlurText finishes the open text entry the same way ConfirmText does.
func (a *AnnotationEngine) BlurText() { a.finishText() }

// CancelText discards the open text entry.
func (a *AnnotationEngine) CancelText() {
	if a.preview != nil && isText(*a.preview) {
		a.preview = nil
	}
}

func (a *AnnotationEngine) finishText() bool {
	if a.preview == nil || !isText(*a.preview) {
		return false
	}
	t := a.preview.Value.(TextShape)
	shape := *a.preview
	a.preview = nil
	if strings.TrimSpace(t.Text) == "" {
		return false
	}
	a.history.Commit(shape)
	return true
}

// PendingText returns a copy of the open text entry when it has visible
// content, without committing it.
func (a *AnnotationEngine) PendingText() (Shape, bool) {
	if a.preview == nil || !isText(*a.preview) {
		return Shape{}, false
	}
	if strings.TrimSpace(a.preview.Value.(TextShape).Text) == "" {
		return Shape{}, false
	}
	return a.preview.clone(), true
}

func isText(s Shape) bool {
	_, ok := s.Value.(TextShape)
	return ok
}
