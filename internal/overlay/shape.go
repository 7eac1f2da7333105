package overlay

import (
	"log"
	"strings"
)

// PenKind selects the annotation tool.
type PenKind int

const (
	PenNone PenKind = iota
	PenRectangle
	PenStraightLine
	PenArrow
	PenFreeLine
	PenSequence
	PenText
)

var penNames = map[PenKind]string{
	PenNone:         "none",
	PenRectangle:    "rectangle",
	PenStraightLine: "line",
	PenArrow:        "arrow",
	PenFreeLine:     "pen",
	PenSequence:     "sequence",
	PenText:         "text",
}

func (k PenKind) String() string {
	if n, ok := penNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParsePenKind resolves a tool name as used in configuration and
// shortcuts.
func ParsePenKind(name string) (PenKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "rect":
		return PenRectangle, true
	case "straight_line", "straightline":
		return PenStraightLine, true
	case "free_line", "freeline", "draw":
		return PenFreeLine, true
	case "number", "num":
		return PenSequence, true
	}
	for k, n := range penNames {
		if n == name {
			return k, true
		}
	}
	return PenNone, false
}

const (
	DefaultStrokeColor = "#FF0000"
	DefaultStrokeWidth = 2
	DefaultMarkerSize  = 24
	DefaultFontSize    = 20
)

// Pen is the active tool plus its styling. Size is used by PenSequence and
// FontSize by PenText.
type Pen struct {
	Kind        PenKind
	StrokeColor string
	StrokeWidth float64
	Size        float64
	FontSize    float64
}

// NewPen returns a pen of kind k with default styling.
func NewPen(k PenKind) Pen {
	return Pen{
		Kind:        k,
		StrokeColor: DefaultStrokeColor,
		StrokeWidth: DefaultStrokeWidth,
		Size:        DefaultMarkerSize,
		FontSize:    DefaultFontSize,
	}
}

// Active reports whether the pen draws anything.
func (p Pen) Active() bool { return p.Kind != PenNone }

// Shape is a committed or preview annotation in crop-local coordinates.
type Shape struct {
	Value       ShapeValue
	StrokeColor string
	StrokeWidth float64
}

// ShapeValue is the closed set of shape geometries. Only types in this
// package implement it.
type ShapeValue interface {
	shapeKind() string
}

type RectangleShape struct {
	Rect Rectangle
}

type StraightLineShape struct {
	Start, End Point
}

type ArrowShape struct {
	Start, End Point
}

// FreeLineShape is a polyline. It is only drawn once it has two points.
type FreeLineShape struct {
	Points []Point
}

type SequenceShape struct {
	Point  Point
	Number int
	Size   float64
}

type TextShape struct {
	Point    Point
	Text     string
	FontSize float64
	Color    string
}

func (RectangleShape) shapeKind() string    { return "rectangle" }
func (StraightLineShape) shapeKind() string { return "straight_line" }
func (ArrowShape) shapeKind() string        { return "arrow" }
func (FreeLineShape) shapeKind() string     { return "free_line" }
func (SequenceShape) shapeKind() string     { return "sequence" }
func (TextShape) shapeKind() string         { return "text" }

// Kind returns the variant tag, or "" when the shape has no value.
func (s Shape) Kind() string {
	if s.Value == nil {
		return ""
	}
	return s.Value.shapeKind()
}

// Valid reports whether the shape carries a known variant.
func (s Shape) Valid() bool { return s.Value != nil }

// clone copies s so later edits to the original cannot leak into it.
func (s Shape) clone() Shape {
	if fl, ok := s.Value.(FreeLineShape); ok {
		pts := make([]Point, len(fl.Points))
		copy(pts, fl.Points)
		s.Value = FreeLineShape{Points: pts}
	}
	return s
}

// EachShape calls fn for every shape with a known variant. Shapes without
// one are skipped with a warning; they never stop the iteration.
func EachShape(shapes []Shape, fn func(i int, s Shape)) {
	for i, s := range shapes {
		if !s.Valid() {
			log.Printf("shape %d: missing variant, skipping", i)
			continue
		}
		fn(i, s)
	}
}

// CountSequences returns how many sequence markers are in shapes.
func CountSequences(shapes []Shape) int {
	n := 0
	for _, s := range shapes {
		if _, ok := s.Value.(SequenceShape); ok {
			n++
		}
	}
	return n
}
