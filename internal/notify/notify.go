// Package notify turns completed overlay actions into desktop
// notifications.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/cropshot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCopy fires when a selection is copied to the clipboard.
	EventCopy Event = "copy"
	// EventPin fires when a selection is pinned.
	EventPin Event = "pin"
	// EventSave fires when a selection is written to disk.
	EventSave Event = "save"
)

// Events lists every known event in display order.
var Events = []Event{EventCopy, EventPin, EventSave}

// ParseEvent resolves an event name from configuration.
func ParseEvent(name string) (Event, bool) {
	e := Event(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Events {
		if e == known {
			return e, true
		}
	}
	return "", false
}

// Preferences describes notification behaviour loaded from configuration.
// Templates take a single %s for the event detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Enabled   map[Event]bool
}

// DefaultPreferences enables every event with the stock wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Templates: map[Event]string{
			EventCopy: "Copied %s to clipboard",
			EventPin:  "Pinned %s",
			EventSave: "Saved %s",
		},
		Enabled: map[Event]bool{EventCopy: true, EventPin: true, EventSave: true},
	}
}

var send = platform.Notify

// Notifier sends OS-level notifications based on the configured
// preferences. A nil Notifier is silent.
type Notifier struct {
	prefs Preferences
}

// New creates a Notifier using a copy of prefs.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{
		Title:     prefs.Title,
		Templates: make(map[Event]string, len(prefs.Templates)),
		Enabled:   make(map[Event]bool, len(prefs.Enabled)),
	}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	for k, v := range prefs.Enabled {
		cloned.Enabled[k] = v
	}
	return &Notifier{prefs: cloned}
}

// Copy announces a clipboard copy of img.
func (n *Notifier) Copy(img image.Image) {
	n.withPreview(EventCopy, describe(img), img)
}

// Pin announces pin id holding img.
func (n *Notifier) Pin(id int, img image.Image) {
	n.withPreview(EventPin, fmt.Sprintf("#%d (%s)", id, describe(img)), img)
}

// Save announces the file written to path.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

func (n *Notifier) withPreview(event Event, detail string, img image.Image) {
	if !n.enabledFor(event) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notify: preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(event, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.prefs.Enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := template
	if strings.Contains(template, "%s") {
		body = fmt.Sprintf(template, strings.TrimSpace(detail))
	}
	if err := send(n.prefs.Title, strings.TrimSpace(body), opts); err != nil {
		log.Printf("notify: %s: %v", event, err)
	}
}

func describe(img image.Image) string {
	if img == nil {
		return "image"
	}
	b := img.Bounds()
	return fmt.Sprintf("%dx%d image", b.Dx(), b.Dy())
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "cropshot-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("notify: remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
