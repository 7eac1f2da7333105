package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CROPSHOT_"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time or by -config
	// Getenv reads overrides; nil means os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the config file if one is found, then applies CROPSHOT_*
// environment overrides. A .env file is loaded first so its values act as
// environment variables that the real environment still wins over.
func (l *Loader) Load() (*Config, error) {
	if path := resolveEnvPath(); path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: load %s: %v", path, err)
		}
	}

	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cfg, err = Parse(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := ApplyEnv(cfg, getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".cropshotrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	home, _ := os.UserHomeDir()
	xdgPath := filepath.Join(home, ".config", "cropshot", "config.rc")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}

// resolveEnvPath looks for .env in the working directory, then next to
// the executable.
func resolveEnvPath() string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, ".env")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ApplyEnv overlays CROPSHOT_* variables onto cfg. CROPSHOT_NOTIFY takes a
// comma separated list of enabled events, or "none".
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(getenv(EnvPrefix + name)); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *float64) error {
		v := strings.TrimSpace(getenv(EnvPrefix + name))
		if v == "" {
			return nil
		}
		return parsePositive(EnvPrefix+name, v, dst)
	}

	str("THEME", &cfg.Theme)
	str("SAVE_DIR", &cfg.SaveDir)
	str("DISPLAY", &cfg.Display)
	str("PEN_TOOL", &cfg.Pen.Tool)
	str("PEN_COLOR", &cfg.Pen.Color)
	for name, dst := range map[string]*float64{
		"SCALE":      &cfg.Scale,
		"HIT_MARGIN": &cfg.HitMargin,
		"PEN_WIDTH":  &cfg.Pen.Width,
	} {
		if err := num(name, dst); err != nil {
			return err
		}
	}

	if v := strings.TrimSpace(getenv(EnvPrefix + "NOTIFY")); v != "" {
		n := Notify{Title: cfg.Notify.Title}
		for _, item := range strings.Split(v, ",") {
			item = strings.ToLower(strings.TrimSpace(item))
			switch item {
			case "", "none":
			case "all":
				n.Copy, n.Pin, n.Save = true, true, true
			case "copy":
				n.Copy = true
			case "pin":
				n.Pin = true
			case "save":
				n.Save = true
			default:
				if b, err := strconv.ParseBool(item); err == nil {
					n.Copy, n.Pin, n.Save = b, b, b
					continue
				}
				return fmt.Errorf("%sNOTIFY: unknown event %q", EnvPrefix, item)
			}
		}
		cfg.Notify = n
	}
	return nil
}
