package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/cropshot/internal/notify"
	"github.com/example/cropshot/internal/overlay"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/screens
scale: 2
hit_margin = 12

[pen]
tool = arrow
color = "#00FF00"
width = 3

[notify]
title = Shots
copy = true
pin = false
save = true

[shortcuts]
Undo = ctrl+z
tool.text = t

[theme.my_custom_theme]
Mask = #11111180
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/screens" {
		t.Errorf("Expected save_dir '/tmp/screens', got '%s'", cfg.SaveDir)
	}
	if cfg.Scale != 2 || cfg.HitMargin != 12 {
		t.Errorf("scale/hit_margin = %g/%g", cfg.Scale, cfg.HitMargin)
	}
	if cfg.Pen.Tool != "arrow" || cfg.Pen.Color != "#00FF00" || cfg.Pen.Width != 3 {
		t.Errorf("unexpected pen %+v", cfg.Pen)
	}
	if cfg.Pen.FontSize != overlay.DefaultFontSize {
		t.Errorf("font size should keep its default, got %g", cfg.Pen.FontSize)
	}
	if cfg.Notify.Title != "Shots" || !cfg.Notify.Copy || cfg.Notify.Pin || !cfg.Notify.Save {
		t.Errorf("unexpected notify %+v", cfg.Notify)
	}
	if cfg.Shortcuts["undo"] != "ctrl+z" || cfg.Shortcuts["tool.text"] != "t" {
		t.Errorf("unexpected shortcuts %v", cfg.Shortcuts)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Mask != (color.RGBA{0x11, 0x11, 0x11, 0x80}) {
		t.Errorf("Unexpected Mask color: %+v", th.Mask)
	}
	resolved, err := cfg.ResolveTheme(nil)
	if err != nil || resolved != th {
		t.Errorf("ResolveTheme = %v, %v", resolved, err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"scale = -1",
		"hit_margin = wide",
		"[notify]\ncopy = maybe",
		"[pen]\nwidth = 0",
		"[theme.bad]\nMask = black",
	}
	for _, in := range tests {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) succeeded", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/shots
display = primary

[pen]
tool = sequence
marker_size = 30

[notify]
copy = true
pin = true
save = false

[shortcuts]
confirm = enter

[theme.custom]
Name = custom
Border = #000000
Mask = #FFFFFF20
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Second parse failed: %v\n%s", err, cfg.String())
	}

	if cfg.String() != cfg2.String() {
		t.Fatalf("round trip mismatch:\n%s\n---\n%s", cfg.String(), cfg2.String())
	}
	if *cfg2.Themes["custom"] != *cfg.Themes["custom"] {
		t.Errorf("theme mismatch: %+v vs %+v", cfg2.Themes["custom"], cfg.Themes["custom"])
	}
}

func TestInitialPen(t *testing.T) {
	cfg := New()
	cfg.Pen.Tool = "number"
	cfg.Pen.MarkerSize = 40
	p, err := cfg.InitialPen()
	if err != nil {
		t.Fatalf("InitialPen: %v", err)
	}
	if p.Kind != overlay.PenSequence || p.Size != 40 || p.StrokeColor != overlay.DefaultStrokeColor {
		t.Fatalf("unexpected pen %+v", p)
	}

	cfg.Pen.Tool = "laser"
	if _, err := cfg.InitialPen(); err == nil {
		t.Fatalf("unknown tool accepted")
	}
}

func TestNotifyPreferences(t *testing.T) {
	cfg := New()
	cfg.Notify = Notify{Title: "T", Pin: true}
	prefs := cfg.NotifyPreferences()
	if prefs.Title != "T" {
		t.Errorf("title = %q", prefs.Title)
	}
	if prefs.Enabled[notify.EventCopy] || !prefs.Enabled[notify.EventPin] || prefs.Enabled[notify.EventSave] {
		t.Errorf("enabled = %v", prefs.Enabled)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CROPSHOT_SAVE_DIR":  "/env/shots",
		"CROPSHOT_SCALE":     "1.5",
		"CROPSHOT_PEN_TOOL":  "text",
		"CROPSHOT_NOTIFY":    "save, pin",
		"CROPSHOT_UNRELATED": "x",
	}
	cfg := New()
	cfg.SaveDir = "/file/shots"
	if err := ApplyEnv(cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.SaveDir != "/env/shots" || cfg.Scale != 1.5 || cfg.Pen.Tool != "text" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Notify.Copy || !cfg.Notify.Pin || !cfg.Notify.Save {
		t.Errorf("unexpected notify %+v", cfg.Notify)
	}

	env = map[string]string{"CROPSHOT_NOTIFY": "loud"}
	if err := ApplyEnv(New(), func(k string) string { return env[k] }); err == nil {
		t.Errorf("unknown notify event accepted")
	}
	env = map[string]string{"CROPSHOT_HIT_MARGIN": "0"}
	if err := ApplyEnv(New(), func(k string) string { return env[k] }); err == nil {
		t.Errorf("zero hit margin accepted")
	}
}

func TestLoaderPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.rc")
	if err := os.WriteFile(path, []byte("save_dir = /file\ndisplay = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("1.0", path)
	l.Getenv = func(k string) string {
		if k == "CROPSHOT_DISPLAY" {
			return "primary"
		}
		return ""
	}
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SaveDir != "/file" || cfg.Display != "primary" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
