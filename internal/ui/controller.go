package ui

import (
	"context"
	"errors"
	"log"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"

	"github.com/example/cropshot/internal/overlay"
)

// confirmTimeout bounds a single capture hand-off.
const confirmTimeout = 10 * time.Second

// controller maps keyboard input onto a session. It runs on the window's
// event goroutine.
type controller struct {
	session *overlay.Session
	keymap  Keymap
	// notice shows a transient message to the user.
	notice func(string)
}

func (c *controller) handleKey(e key.Event) {
	if e.Direction == key.DirRelease {
		return
	}
	if text, ok := c.session.Text(); ok && c.typeText(e, text) {
		return
	}
	action, ok := c.keymap.Lookup(e)
	if !ok {
		return
	}
	c.perform(action)
}

// typeText edits the open text entry and reports whether e was consumed.
func (c *controller) typeText(e key.Event, text string) bool {
	switch e.Code {
	case key.CodeReturnEnter:
		c.session.ConfirmText()
		return true
	case key.CodeEscape:
		c.session.Cancel()
		return true
	case key.CodeDeleteBackspace:
		if text != "" {
			_, size := utf8.DecodeLastRuneInString(text)
			c.session.SetText(text[:len(text)-size])
		}
		return true
	}
	if e.Modifiers&(key.ModControl|key.ModMeta) != 0 {
		return false
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		c.session.SetText(text + string(e.Rune))
		return true
	}
	return false
}

func (c *controller) perform(action string) {
	switch action {
	case ActionConfirm:
		c.confirm(overlay.ActionCopy)
	case ActionPin:
		c.confirm(overlay.ActionPin)
	case ActionSave:
		c.confirm(overlay.ActionSave)
	case ActionCancel:
		c.session.Cancel()
	case ActionUndo:
		c.session.Undo()
	case ActionRedo:
		c.session.Redo()
	default:
		if kind, ok := ToolAction(action); ok {
			c.session.TogglePen(kind)
			return
		}
		log.Printf("ui: unhandled action %q", action)
	}
}

func (c *controller) confirm(action overlay.Action) {
	ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
	defer cancel()
	err := c.session.Confirm(ctx, action)
	if err == nil {
		return
	}
	log.Printf("ui: %s: %v", action, err)
	if c.notice == nil {
		return
	}
	switch {
	case errors.Is(err, overlay.ErrNoSelection):
		c.notice("Select an area first")
	case errors.Is(err, overlay.ErrGestureInProgress):
		c.notice("Finish the selection first")
	default:
		c.notice(action.String() + " failed: " + err.Error())
	}
}
