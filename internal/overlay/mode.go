package overlay

// ModeKind tags the active crop interaction.
type ModeKind int

const (
	ModeIdle ModeKind = iota
	ModeCropping
	ModeDragging
	ModeResizing
	ModePainting
)

func (k ModeKind) String() string {
	switch k {
	case ModeIdle:
		return "idle"
	case ModeCropping:
		return "cropping"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	case ModePainting:
		return "painting"
	}
	return "unknown"
}

// Direction names a resize handle.
type Direction int

const (
	DirNone Direction = iota
	TopLeft
	Top
	TopRight
	Left
	Right
	BottomLeft
	Bottom
	BottomRight
)

// Directions lists the eight resize handles.
var Directions = []Direction{TopLeft, Top, TopRight, Left, Right, BottomLeft, Bottom, BottomRight}

func (d Direction) String() string {
	switch d {
	case TopLeft:
		return "top-left"
	case Top:
		return "top"
	case TopRight:
		return "top-right"
	case Left:
		return "left"
	case Right:
		return "right"
	case BottomLeft:
		return "bottom-left"
	case Bottom:
		return "bottom"
	case BottomRight:
		return "bottom-right"
	}
	return "none"
}

// edges reports which horizontal and vertical edges d moves. -1 selects
// the left/top edge, 1 the right/bottom edge and 0 neither.
func (d Direction) edges() (h, v int) {
	switch d {
	case TopLeft:
		return -1, -1
	case Top:
		return 0, -1
	case TopRight:
		return 1, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case BottomLeft:
		return -1, 1
	case Bottom:
		return 0, 1
	case BottomRight:
		return 1, 1
	}
	return 0, 0
}

// CropMode is the crop engine's current interaction. Direction is only
// meaningful for ModeResizing.
type CropMode struct {
	Kind      ModeKind
	Direction Direction
}

var (
	Idle     = CropMode{Kind: ModeIdle}
	Cropping = CropMode{Kind: ModeCropping}
	Dragging = CropMode{Kind: ModeDragging}
	Painting = CropMode{Kind: ModePainting}
)

// Resizing returns the resize mode for d.
func Resizing(d Direction) CropMode { return CropMode{Kind: ModeResizing, Direction: d} }

// Geometry reports whether the mode owns the current drag for crop geometry.
func (m CropMode) Geometry() bool {
	return m.Kind == ModeCropping || m.Kind == ModeDragging || m.Kind == ModeResizing
}

func (m CropMode) String() string {
	if m.Kind == ModeResizing {
		return "resizing(" + m.Direction.String() + ")"
	}
	return m.Kind.String()
}
