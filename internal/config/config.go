package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/cropshot/internal/notify"
	"github.com/example/cropshot/internal/overlay"
	"github.com/example/cropshot/internal/theme"
)

// Pen holds the initial annotation tool and its styling.
type Pen struct {
	Tool       string
	Color      string
	Width      float64
	MarkerSize float64
	FontSize   float64
}

// Notify holds notification settings.
type Notify struct {
	Title string
	Copy  bool
	Pin   bool
	Save  bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	SaveDir   string
	Display   string
	Scale     float64
	HitMargin float64
	Pen       Pen
	Notify    Notify
	Shortcuts map[string]string
	Themes    map[string]*theme.Theme
}

// DefaultHitMargin matches the resize handle size drawn by the overlay.
const DefaultHitMargin = 10

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		HitMargin: DefaultHitMargin,
		Pen: Pen{
			Tool:       "none",
			Color:      overlay.DefaultStrokeColor,
			Width:      overlay.DefaultStrokeWidth,
			MarkerSize: overlay.DefaultMarkerSize,
			FontSize:   overlay.DefaultFontSize,
		},
		Notify: Notify{
			Copy: true,
			Pin:  true,
			Save: true,
		},
		Shortcuts: make(map[string]string),
		Themes:    make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Display != "" {
		fmt.Fprintf(&sb, "display = %s\n", c.Display)
	}
	if c.Scale > 0 {
		fmt.Fprintf(&sb, "scale = %g\n", c.Scale)
	}
	fmt.Fprintf(&sb, "hit_margin = %g\n", c.HitMargin)
	sb.WriteString("\n")

	sb.WriteString("[pen]\n")
	fmt.Fprintf(&sb, "tool = %s\n", c.Pen.Tool)
	fmt.Fprintf(&sb, "color = %s\n", c.Pen.Color)
	fmt.Fprintf(&sb, "width = %g\n", c.Pen.Width)
	fmt.Fprintf(&sb, "marker_size = %g\n", c.Pen.MarkerSize)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Pen.FontSize)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	if c.Notify.Title != "" {
		fmt.Fprintf(&sb, "title = \"%s\"\n", c.Notify.Title)
	}
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "pin = %v\n", c.Notify.Pin)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	sb.WriteString("\n")

	if len(c.Shortcuts) > 0 {
		sb.WriteString("[shortcuts]\n")
		for _, name := range sortedKeys(c.Shortcuts) {
			fmt.Fprintf(&sb, "%s = %s\n", name, c.Shortcuts[name])
		}
		sb.WriteString("\n")
	}

	// Sort keys for deterministic output
	for _, name := range sortedKeys(c.Themes) {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(c.Themes[name].String())
		sb.WriteString("\n")
	}

	return sb.String()
}

// InitialPen converts the [pen] section into an overlay pen.
func (c *Config) InitialPen() (overlay.Pen, error) {
	kind, ok := overlay.ParsePenKind(c.Pen.Tool)
	if !ok {
		return overlay.Pen{}, fmt.Errorf("unknown pen tool %q", c.Pen.Tool)
	}
	p := overlay.NewPen(kind)
	if c.Pen.Color != "" {
		p.StrokeColor = c.Pen.Color
	}
	if c.Pen.Width > 0 {
		p.StrokeWidth = c.Pen.Width
	}
	if c.Pen.MarkerSize > 0 {
		p.Size = c.Pen.MarkerSize
	}
	if c.Pen.FontSize > 0 {
		p.FontSize = c.Pen.FontSize
	}
	return p, nil
}

// NotifyPreferences converts the [notify] section for the notifier.
func (c *Config) NotifyPreferences() notify.Preferences {
	prefs := notify.DefaultPreferences()
	if c.Notify.Title != "" {
		prefs.Title = c.Notify.Title
	}
	prefs.Enabled[notify.EventCopy] = c.Notify.Copy
	prefs.Enabled[notify.EventPin] = c.Notify.Pin
	prefs.Enabled[notify.EventSave] = c.Notify.Save
	return prefs
}

// ResolveTheme returns the configured overlay theme. Themes defined inline
// in the config file win over ones found by l.
func (c *Config) ResolveTheme(l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	if l == nil {
		l = theme.NewLoader()
	}
	return l.Load(c.Theme)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
