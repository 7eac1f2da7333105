package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/example/cropshot/internal/capture"
	"github.com/example/cropshot/internal/handoff"
	"github.com/example/cropshot/internal/notify"
	"github.com/example/cropshot/internal/overlay"
	"github.com/example/cropshot/internal/pin"
	"github.com/example/cropshot/internal/theme"
	"github.com/example/cropshot/internal/ui"
)

var (
	listMonitors   = capture.ListMonitors
	captureMonitor = capture.CaptureMonitor
	runOverlay     = func(o *ui.Overlay) { o.Run() }
)

type overlayCmd struct {
	display   string
	scale     float64
	tool      string
	color     string
	saveDir   string
	themeName string
	quiet     bool
	*root
	fs *flag.FlagSet
}

func (o *overlayCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func parseOverlayCmd(args []string, r *root) (*overlayCmd, error) {
	fs := flag.NewFlagSet("overlay", flag.ExitOnError)
	o := &overlayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(o)
	cfg := r.config
	// Precedence: CLI > Env > Config > Default. Env is already folded
	// into cfg by the loader, so config values make the flag defaults.
	fs.StringVar(&o.display, "display", cfg.Display, "monitor to crop: primary, an index or a name fragment")
	fs.Float64Var(&o.scale, "scale", cfg.Scale, "override the detected scale factor (0 = detect)")
	fs.StringVar(&o.tool, "tool", cfg.Pen.Tool, "initial tool: none, rectangle, line, arrow, pen, sequence or text")
	fs.StringVar(&o.color, "color", cfg.Pen.Color, "annotation colour as #RRGGBB")
	fs.StringVar(&o.saveDir, "save-dir", cfg.SaveDir, "directory for saved captures")
	fs.StringVar(&o.themeName, "theme", cfg.Theme, "overlay theme name or file")
	fs.BoolVar(&o.quiet, "quiet", false, "disable desktop notifications")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: o}
	}
	if o.scale < 0 {
		return nil, fmt.Errorf("-scale must not be negative")
	}
	return o, nil
}

func (o *overlayCmd) Run() error {
	monitors, err := listMonitors()
	if err != nil {
		return fmt.Errorf("failed to list monitors: %w", err)
	}
	mon, err := capture.FindMonitor(monitors, o.display)
	if err != nil {
		return err
	}
	background, err := captureMonitor(mon)
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", mon.Name, err)
	}

	cfg := *o.config
	cfg.Pen.Tool = o.tool
	cfg.Pen.Color = o.color
	pen, err := cfg.InitialPen()
	if err != nil {
		return err
	}
	cfg.Theme = o.themeName
	th, err := cfg.ResolveTheme(theme.NewLoader())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v. using default.\n", err)
		th = theme.Default()
	}
	km, err := ui.NewKeymap(cfg.Shortcuts)
	if err != nil {
		return err
	}
	var notifier *notify.Notifier
	if !o.quiet {
		notifier = notify.New(cfg.NotifyPreferences())
	}

	resolver := capture.Resolver{Monitor: mon, ScaleOverride: o.scale}
	pins := pin.NewStore()
	win := &ui.Overlay{
		Background: background,
		Scale:      resolver.Scale(),
		Theme:      th,
		Keymap:     km,
		Pins:       pins,
		Title:      o.program,
	}
	deliverer := &handoff.Deliverer{
		Pins:     pins,
		Files:    handoff.NewStorage(o.saveDir),
		Notifier: notifier,
		OnPin:    win.OpenPin,
	}
	win.Session = overlay.NewSession(
		overlay.WithDisplay(resolver),
		overlay.WithHandoff(deliverer),
		overlay.WithHitMargin(cfg.HitMargin),
		overlay.WithPen(pen),
	)
	log.Printf("overlay: %s %dx%d at scale %g", mon.Name, mon.Rect.Dx(), mon.Rect.Dy(), resolver.Scale())
	runOverlay(win)
	return nil
}
