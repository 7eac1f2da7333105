package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// screenshotMonitors lists active displays through the portable screenshot
// library. It knows nothing about names or scale, so every monitor reports
// a scale of 1 and display 0 is treated as primary.
func screenshotMonitors() ([]MonitorInfo, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, errNoMonitors
	}
	monitors := make([]MonitorInfo, 0, n)
	for i := 0; i < n; i++ {
		monitors = append(monitors, MonitorInfo{
			Index:   i,
			Name:    fmt.Sprintf("display-%d", i),
			Rect:    screenshot.GetDisplayBounds(i),
			Primary: i == 0,
			Scale:   1,
		})
	}
	return monitors, nil
}

func screenshotRect(rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return img, nil
}
