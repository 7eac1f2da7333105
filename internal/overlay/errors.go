package overlay

import "errors"

var (
	// ErrIllegalTransition is returned when a mode change would reinterpret
	// a gesture that is already in flight.
	ErrIllegalTransition = errors.New("illegal crop mode transition")
	// ErrNoSelection is returned by Confirm when no crop rectangle exists.
	ErrNoSelection = errors.New("no crop area selected")
	// ErrGestureInProgress is returned by Confirm while the crop is being
	// created, dragged or resized.
	ErrGestureInProgress = errors.New("crop gesture in progress")
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("overlay session closed")
)
