package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/cropshot/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var themeLines map[string]*strings.Builder
	var themeOrder []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			if name, ok := strings.CutPrefix(currentSection, "theme."); ok {
				if themeLines == nil {
					themeLines = make(map[string]*strings.Builder)
				}
				if _, seen := themeLines[name]; !seen {
					themeLines[name] = &strings.Builder{}
					themeOrder = append(themeOrder, name)
				}
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case strings.HasPrefix(currentSection, "theme."):
			// Theme bodies are handed to the theme parser as-is.
			fmt.Fprintf(themeLines[strings.TrimPrefix(currentSection, "theme.")], "%s: %s\n", key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "pen":
			err = setPenField(&cfg.Pen, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "shortcuts":
			cfg.Shortcuts[strings.ToLower(key)] = value
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, name := range themeOrder {
		t, err := theme.Parse(strings.NewReader("Name: " + name + "\n" + themeLines[name].String()))
		if err != nil {
			return nil, fmt.Errorf("error in section [theme.%s]: %w", name, err)
		}
		cfg.Themes[name] = t
	}
	return cfg, nil
}

// splitKeyValue accepts "key = value" and "key: value". Surrounding quotes
// are removed from the value.
func splitKeyValue(line string) (string, string, bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:sep])
	value := strings.TrimSpace(line[sep+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "display":
		cfg.Display = value
	case "scale":
		return parsePositive(key, value, &cfg.Scale)
	case "hit_margin":
		return parsePositive(key, value, &cfg.HitMargin)
	}
	return nil
}

func setPenField(p *Pen, key, value string) error {
	switch strings.ToLower(key) {
	case "tool":
		p.Tool = value
	case "color", "colour":
		p.Color = value
	case "width":
		return parsePositive(key, value, &p.Width)
	case "marker_size", "size":
		return parsePositive(key, value, &p.MarkerSize)
	case "font_size":
		return parsePositive(key, value, &p.FontSize)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	if strings.EqualFold(key, "title") {
		n.Title = value
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "copy":
		n.Copy = b
	case "pin":
		n.Pin = b
	case "save":
		n.Save = b
	}
	return nil
}

func parsePositive(key, value string, dst *float64) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %g", key, v)
	}
	*dst = v
	return nil
}
