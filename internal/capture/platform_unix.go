//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// baseDPI is the X resource DPI that corresponds to a scale of 1.
const baseDPI = 96

type x11Backend struct{}

func newBackend() platformBackend {
	return x11Backend{}
}

var waylandWarning sync.Once

func runningOnWayland() bool {
	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	if sessionType == "wayland" {
		return true
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}
	return false
}

// ListMonitors reads the RandR layout and the Xft.dpi resource. When the X
// server cannot be queried it falls back to the portable display list.
func (x11Backend) ListMonitors() ([]MonitorInfo, error) {
	monitors, err := randrMonitors()
	if err == nil && len(monitors) > 0 {
		return monitors, nil
	}
	if err != nil {
		log.Printf("capture: randr unavailable, using screenshot displays: %v", err)
	}
	return screenshotMonitors()
}

func (x11Backend) CaptureRect(rect image.Rectangle) (*image.RGBA, error) {
	if runningOnWayland() {
		waylandWarning.Do(func() {
			log.Printf("capture: wayland session detected; capturing through XWayland may return blank pixels")
		})
	}
	return screenshotRect(rect)
}

func randrMonitors() ([]MonitorInfo, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}

	scale := 1.0
	if dpi, ok := readXftDPI(conn, screen.Root); ok {
		scale = dpi / baseDPI
	}

	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, screen.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, screen.Root).Reply(); err == nil {
		primaryOutput = primary.Output
	}

	monitors := make([]MonitorInfo, 0, len(res.Outputs))
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		x, y := int(crtc.X), int(crtc.Y)
		monitors = append(monitors, MonitorInfo{
			Index:   len(monitors),
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(x, y, x+int(crtc.Width), y+int(crtc.Height)),
			Primary: output == primaryOutput,
			Scale:   scale,
		})
	}
	return monitors, nil
}

// readXftDPI reads Xft.dpi from the RESOURCE_MANAGER property of root.
func readXftDPI(conn *xgb.Conn, root xproto.Window) (float64, bool) {
	reply, err := xproto.GetProperty(conn, false, root, xproto.AtomResourceManager, xproto.AtomString, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return 0, false
	}
	return parseXftDPI(string(reply.Value))
}

// parseXftDPI extracts the Xft.dpi value from an X resource database
// string.
func parseXftDPI(resources string) (float64, bool) {
	for _, line := range strings.Split(resources, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || dpi <= 0 {
			return 0, false
		}
		return dpi, true
	}
	return 0, false
}
