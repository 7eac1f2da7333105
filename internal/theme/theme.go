// Package theme holds the colour palette used to paint the overlay chrome.
package theme

import (
	"image/color"
)

// Theme defines the colours drawn around and on top of the screenshot.
// Annotation colours come from the pen, not the theme.
type Theme struct {
	Name string

	// Mask dims everything outside the crop; its alpha sets the strength.
	Mask color.RGBA

	// Crop border dashes alternate between these two.
	Border    color.RGBA
	BorderAlt color.RGBA

	// Resize handles
	Handle       color.RGBA
	HandleBorder color.RGBA

	// Text entry caret
	Caret color.RGBA

	// Pin window
	PinBackground color.RGBA
}

// Default returns the built-in palette (fallback).
func Default() *Theme {
	return &Theme{
		Name:          "Default",
		Mask:          color.RGBA{0, 0, 0, 128},
		Border:        color.RGBA{255, 255, 255, 255},
		BorderAlt:     color.RGBA{0, 0, 0, 255},
		Handle:        color.RGBA{255, 255, 255, 255},
		HandleBorder:  color.RGBA{0, 0, 0, 255},
		Caret:         color.RGBA{255, 0, 0, 255},
		PinBackground: color.RGBA{40, 40, 40, 255},
	}
}
