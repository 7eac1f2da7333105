package clipboard

import (
	"errors"
	"os"
	"runtime"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

// displayAvailable reports whether a graphical session is reachable. Only
// X11 and Wayland sessions advertise themselves through the environment.
func displayAvailable() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
