package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/cropshot/internal/overlay"
)

type harness struct {
	session   *overlay.Session
	ctl       *controller
	notices   []string
	delivered []overlay.Action
	fail      error
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	h.session = overlay.NewSession(
		overlay.WithDisplay(overlay.FixedDisplay{ScaleFactor: 1}),
		overlay.WithHandoff(overlay.HandoffFunc(func(_ context.Context, a overlay.Action, _ overlay.Selection) error {
			if h.fail != nil {
				return h.fail
			}
			h.delivered = append(h.delivered, a)
			return nil
		})),
	)
	km, err := NewKeymap(nil)
	if err != nil {
		t.Fatalf("NewKeymap: %v", err)
	}
	h.ctl = &controller{session: h.session, keymap: km, notice: func(m string) { h.notices = append(h.notices, m) }}
	return h
}

func (h *harness) drag(from, to overlay.Point) {
	h.session.Press(from)
	h.session.Move(to)
	h.session.Release(to)
}

func (h *harness) press(code key.Code, r rune, mods key.Modifiers) {
	h.ctl.handleKey(key.Event{Code: code, Rune: r, Modifiers: mods, Direction: key.DirPress})
}

func TestControllerConfirmWithoutSelection(t *testing.T) {
	h := newHarness(t)
	h.press(key.CodeReturnEnter, '\r', 0)
	if len(h.notices) != 1 || !strings.Contains(h.notices[0], "Select") {
		t.Fatalf("notices = %v", h.notices)
	}
	if h.session.Closed() {
		t.Fatalf("session closed without a selection")
	}
}

func TestControllerConfirmActions(t *testing.T) {
	tests := []struct {
		code key.Code
		mods key.Modifiers
		want overlay.Action
	}{
		{key.CodeReturnEnter, 0, overlay.ActionCopy},
		{key.CodeP, key.ModControl, overlay.ActionPin},
		{key.CodeS, key.ModControl, overlay.ActionSave},
	}
	for _, tt := range tests {
		h := newHarness(t)
		h.drag(overlay.Pt(10, 10), overlay.Pt(60, 40))
		h.press(tt.code, 0, tt.mods)
		if len(h.delivered) != 1 || h.delivered[0] != tt.want {
			t.Errorf("%v: delivered %v, want %v", tt.code, h.delivered, tt.want)
		}
		if !h.session.Closed() {
			t.Errorf("%v: session still open after confirm", tt.code)
		}
	}
}

func TestControllerConfirmFailureNotifies(t *testing.T) {
	h := newHarness(t)
	h.fail = errors.New("clipboard unavailable")
	h.drag(overlay.Pt(10, 10), overlay.Pt(60, 40))
	h.press(key.CodeReturnEnter, 0, 0)
	if len(h.notices) != 1 || !strings.Contains(h.notices[0], "clipboard unavailable") {
		t.Fatalf("notices = %v", h.notices)
	}
	if h.session.Closed() {
		t.Fatalf("failed confirm closed the session")
	}
}

func TestControllerToolsAndHistory(t *testing.T) {
	h := newHarness(t)
	h.drag(overlay.Pt(0, 0), overlay.Pt(100, 100))
	h.press(key.CodeR, 'r', 0)
	if h.session.Pen().Kind != overlay.PenRectangle {
		t.Fatalf("pen = %v", h.session.Pen().Kind)
	}
	h.drag(overlay.Pt(10, 10), overlay.Pt(30, 30))
	if len(h.session.Shapes()) != 1 {
		t.Fatalf("shapes = %d", len(h.session.Shapes()))
	}
	h.press(key.CodeZ, 'z', key.ModControl)
	if len(h.session.Shapes()) != 0 {
		t.Fatalf("undo did not remove the shape")
	}
	h.press(key.CodeY, 'y', key.ModControl)
	if len(h.session.Shapes()) != 1 {
		t.Fatalf("redo did not restore the shape")
	}
	h.press(key.CodeR, 'r', 0)
	if h.session.Pen().Active() {
		t.Fatalf("selecting the active tool again should deselect it")
	}
}

func TestControllerTextEntry(t *testing.T) {
	h := newHarness(t)
	h.drag(overlay.Pt(0, 0), overlay.Pt(200, 100))
	h.press(key.CodeT, 't', 0)
	h.session.Press(overlay.Pt(20, 20))
	h.session.Release(overlay.Pt(20, 20))

	// Letters bound to tools are typed while an entry is open.
	for _, r := range "rät" {
		h.press(key.CodeUnknown, r, 0)
	}
	h.press(key.CodeDeleteBackspace, 0, 0)
	if text, ok := h.session.Text(); !ok || text != "rä" {
		t.Fatalf("text = %q, %v", text, ok)
	}
	if h.session.Pen().Kind != overlay.PenText {
		t.Fatalf("typing changed the pen to %v", h.session.Pen().Kind)
	}
	h.press(key.CodeReturnEnter, '\r', 0)
	if _, ok := h.session.Text(); ok {
		t.Fatalf("entry still open after enter")
	}
	if len(h.delivered) != 0 {
		t.Fatalf("enter confirmed the selection while editing text")
	}
	shapes := h.session.Shapes()
	if len(shapes) != 1 || shapes[0].Value.(overlay.TextShape).Text != "rä" {
		t.Fatalf("shapes = %+v", shapes)
	}
}

func TestControllerEscapeCascade(t *testing.T) {
	h := newHarness(t)
	h.drag(overlay.Pt(0, 0), overlay.Pt(50, 50))
	h.press(key.CodeEscape, 0, 0)
	if _, ok := h.session.Crop(); ok || h.session.Closed() {
		t.Fatalf("first escape should only drop the crop")
	}
	h.press(key.CodeEscape, 0, 0)
	if !h.session.Closed() {
		t.Fatalf("second escape should close the session")
	}
}

func TestControllerIgnoresRelease(t *testing.T) {
	h := newHarness(t)
	h.ctl.handleKey(key.Event{Code: key.CodeEscape, Direction: key.DirRelease})
	if h.session.Closed() {
		t.Fatalf("key release triggered an action")
	}
}
