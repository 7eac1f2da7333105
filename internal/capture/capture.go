package capture

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"
)

type platformBackend interface {
	ListMonitors() ([]MonitorInfo, error)
	CaptureRect(image.Rectangle) (*image.RGBA, error)
}

var backend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// MonitorInfo describes an individual monitor in the display layout. Rect
// is in device pixels; Scale is the number of device pixels per logical
// pixel.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
	Scale   float64
}

// LogicalSize returns the monitor size in logical pixels.
func (m MonitorInfo) LogicalSize() (float64, float64) {
	s := m.Scale
	if s <= 0 {
		s = 1
	}
	return float64(m.Rect.Dx()) / s, float64(m.Rect.Dy()) / s
}

// ListMonitors retrieves all monitors using the platform backend.
func ListMonitors() ([]MonitorInfo, error) {
	return backend.ListMonitors()
}

// FindMonitor resolves a monitor selector against the provided list. An
// empty selector picks the first monitor; "primary", an index (optionally
// prefixed with '#') or a name fragment are accepted.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return monitors[0], nil
	}
	lower := strings.ToLower(sel)
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(lower, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

// MonitorAt returns the monitor containing the screen point (x, y).
func MonitorAt(monitors []MonitorInfo, x, y int) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	p := image.Pt(x, y)
	for _, mon := range monitors {
		if p.In(mon.Rect) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("no monitor at (%d,%d)", x, y)
}

// CaptureRegion captures the logical region p of the monitor at
// (p.ScreenX, p.ScreenY) using the monitor's own scale. The returned image
// is in device pixels.
func CaptureRegion(p LogicalParam) (*image.RGBA, PhysicalParam, error) {
	return CaptureRegionScaled(p, 0)
}

// CaptureRegionScaled is CaptureRegion with an explicit scale factor; a
// scale <= 0 uses the monitor's.
func CaptureRegionScaled(p LogicalParam, scale float64) (*image.RGBA, PhysicalParam, error) {
	if err := p.Validate(); err != nil {
		return nil, PhysicalParam{}, err
	}
	monitors, err := ListMonitors()
	if err != nil {
		return nil, PhysicalParam{}, fmt.Errorf("capture region: %w", err)
	}
	mon, err := MonitorAt(monitors, p.ScreenX, p.ScreenY)
	if err != nil {
		return nil, PhysicalParam{}, fmt.Errorf("capture region: %w", err)
	}
	if scale <= 0 {
		scale = mon.Scale
	}
	phys := NewPhysicalParam(scale, p)
	rect := phys.Rect(mon.Rect.Min).Intersect(mon.Rect)
	if rect.Empty() {
		return nil, phys, fmt.Errorf("capture region: %w: outside monitor %s", ErrInvalidParam, mon.Name)
	}
	img, err := backend.CaptureRect(rect)
	if err != nil {
		return nil, phys, fmt.Errorf("capture region %v: %w", rect, err)
	}
	log.Printf("capture: %dx%d from %s at scale %g", rect.Dx(), rect.Dy(), mon.Name, scale)
	return img, phys, nil
}

// CaptureMonitor captures the whole of mon, used as the overlay
// background.
func CaptureMonitor(mon MonitorInfo) (*image.RGBA, error) {
	if mon.Rect.Empty() {
		return nil, fmt.Errorf("monitor %s has empty geometry", mon.Name)
	}
	img, err := backend.CaptureRect(mon.Rect)
	if err != nil {
		return nil, fmt.Errorf("capture monitor %s: %w", mon.Name, err)
	}
	return img, nil
}
