//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "image"

type screenshotBackend struct{}

func newBackend() platformBackend {
	return screenshotBackend{}
}

func (screenshotBackend) ListMonitors() ([]MonitorInfo, error) {
	return screenshotMonitors()
}

func (screenshotBackend) CaptureRect(rect image.Rectangle) (*image.RGBA, error) {
	return screenshotRect(rect)
}

func runningOnWayland() bool { return false }
