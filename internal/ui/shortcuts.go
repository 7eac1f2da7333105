package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/cropshot/internal/overlay"
)

// Shortcut action names as used in the [shortcuts] config section.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
	ActionUndo    = "undo"
	ActionRedo    = "redo"
	ActionPin     = "pin"
	ActionSave    = "save"
)

const toolPrefix = "tool."

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

func (k KeyShortcut) String() string {
	var parts []string
	for _, m := range modifierOrder {
		if k.Modifiers&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, codeName(k.Code)), "+")
}

// DefaultShortcuts lists the built-in bindings per action.
func DefaultShortcuts() map[string]string {
	return map[string]string{
		ActionConfirm:    "enter",
		ActionCancel:     "escape",
		ActionUndo:       "ctrl+z",
		ActionRedo:       "ctrl+shift+z, ctrl+y",
		ActionPin:        "ctrl+p",
		ActionSave:       "ctrl+s",
		"tool.rectangle": "r",
		"tool.line":      "l",
		"tool.arrow":     "a",
		"tool.pen":       "d",
		"tool.sequence":  "n",
		"tool.text":      "t",
	}
}

// Keymap resolves key presses to action names.
type Keymap map[KeyShortcut]string

// NewKeymap builds the defaults with overrides applied. An override
// replaces every default binding of its action; an empty value unbinds it.
func NewKeymap(overrides map[string]string) (Keymap, error) {
	bindings := DefaultShortcuts()
	for action, spec := range overrides {
		action = strings.ToLower(strings.TrimSpace(action))
		if !knownAction(action) {
			return nil, fmt.Errorf("unknown shortcut action %q", action)
		}
		bindings[action] = spec
	}

	km := Keymap{}
	actions := make([]string, 0, len(bindings))
	for a := range bindings {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	for _, action := range actions {
		for _, part := range strings.Split(bindings[action], ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			ks, err := ParseShortcut(part)
			if err != nil {
				return nil, fmt.Errorf("shortcut %s: %w", action, err)
			}
			if prev, dup := km[ks]; dup {
				return nil, fmt.Errorf("shortcut %s is bound to both %s and %s", ks, prev, action)
			}
			km[ks] = action
		}
	}
	return km, nil
}

// Lookup returns the action bound to e.
func (km Keymap) Lookup(e key.Event) (string, bool) {
	action, ok := km[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]
	return action, ok
}

// ToolAction splits "tool.<name>" into its pen kind.
func ToolAction(action string) (overlay.PenKind, bool) {
	name, ok := strings.CutPrefix(action, toolPrefix)
	if !ok {
		return overlay.PenNone, false
	}
	return overlay.ParsePenKind(name)
}

func knownAction(action string) bool {
	switch action {
	case ActionConfirm, ActionCancel, ActionUndo, ActionRedo, ActionPin, ActionSave:
		return true
	}
	k, ok := ToolAction(action)
	return ok && k != overlay.PenNone
}

var modifierOrder = []struct {
	name string
	mod  key.Modifiers
}{
	{"ctrl", key.ModControl},
	{"alt", key.ModAlt},
	{"shift", key.ModShift},
	{"meta", key.ModMeta},
}

var modifierNames = map[string]key.Modifiers{
	"ctrl":    key.ModControl,
	"control": key.ModControl,
	"shift":   key.ModShift,
	"alt":     key.ModAlt,
	"option":  key.ModAlt,
	"meta":    key.ModMeta,
	"super":   key.ModMeta,
	"cmd":     key.ModMeta,
}

var namedCodes = map[string]key.Code{
	"enter":     key.CodeReturnEnter,
	"return":    key.CodeReturnEnter,
	"escape":    key.CodeEscape,
	"esc":       key.CodeEscape,
	"backspace": key.CodeDeleteBackspace,
	"delete":    key.CodeDeleteForward,
	"del":       key.CodeDeleteForward,
	"tab":       key.CodeTab,
	"space":     key.CodeSpacebar,
	"left":      key.CodeLeftArrow,
	"right":     key.CodeRightArrow,
	"up":        key.CodeUpArrow,
	"down":      key.CodeDownArrow,
	"comma":     key.CodeComma,
	"plus":      key.CodeEqualSign,
	"minus":     key.CodeHyphenMinus,
}

// ParseShortcut reads combinations such as "ctrl+shift+z", "enter" or
// "f5". Letters and digits are matched by key position.
func ParseShortcut(s string) (KeyShortcut, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	var ks KeyShortcut
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return KeyShortcut{}, fmt.Errorf("invalid shortcut %q", s)
		}
		if i < len(parts)-1 {
			m, ok := modifierNames[p]
			if !ok {
				return KeyShortcut{}, fmt.Errorf("unknown modifier %q in %q", p, s)
			}
			ks.Modifiers |= m
			continue
		}
		code, ok := parseCode(p)
		if !ok {
			return KeyShortcut{}, fmt.Errorf("unknown key %q in %q", p, s)
		}
		ks.Code = code
	}
	return ks, nil
}

func parseCode(name string) (key.Code, bool) {
	if c, ok := namedCodes[name]; ok {
		return c, true
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return key.CodeA + key.Code(c-'a'), true
		case c >= '1' && c <= '9':
			return key.Code1 + key.Code(c-'1'), true
		case c == '0':
			return key.Code0, true
		}
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(name, "f")); err == nil && strings.HasPrefix(name, "f") && n >= 1 && n <= 12 {
		return key.CodeF1 + key.Code(n-1), true
	}
	return key.CodeUnknown, false
}

func codeName(c key.Code) string {
	switch {
	case c >= key.CodeA && c <= key.CodeZ:
		return string(rune('a' + c - key.CodeA))
	case c >= key.Code1 && c <= key.Code9:
		return string(rune('1' + c - key.Code1))
	case c == key.Code0:
		return "0"
	case c >= key.CodeF1 && c <= key.CodeF12:
		return fmt.Sprintf("f%d", c-key.CodeF1+1)
	}
	// Longest alias wins so output does not depend on map order.
	best := ""
	for name, code := range namedCodes {
		if code == c && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return best
	}
	return c.String()
}
