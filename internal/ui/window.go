// Package ui hosts the overlay and pin windows on top of shiny.
package ui

import (
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/cropshot/internal/overlay"
	"github.com/example/cropshot/internal/pin"
	"github.com/example/cropshot/internal/theme"
)

const messageDuration = 2 * time.Second

// Overlay shows a monitor screenshot at device resolution and drives a
// session from the window's input.
type Overlay struct {
	Session    *overlay.Session
	Background *image.RGBA
	// Scale is the number of device pixels per logical pixel.
	Scale  float64
	Theme  *theme.Theme
	Keymap Keymap
	Pins   *pin.Store
	Title  string

	mu     sync.Mutex
	screen screen.Screen
	open   sync.WaitGroup
}

// Run executes the UI loop using shiny's driver. It returns once the
// overlay and every pin window it opened are closed.
func (o *Overlay) Run() { driver.Main(o.Main) }

// Main runs the overlay on s.
func (o *Overlay) Main(s screen.Screen) {
	o.mu.Lock()
	o.screen = s
	o.mu.Unlock()
	defer o.open.Wait()

	km := o.Keymap
	if km == nil {
		var err error
		if km, err = NewKeymap(nil); err != nil {
			log.Printf("ui: default shortcuts: %v", err)
		}
	}

	size0 := o.Background.Bounds().Size()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: size0.X, Height: size0.Y, Title: o.Title})
	if err != nil {
		log.Printf("ui: new window: %v", err)
		o.Session.Close()
		return
	}
	defer w.Release()

	buf, err := s.NewBuffer(size0)
	if err != nil {
		log.Printf("ui: new buffer: %v", err)
		o.Session.Close()
		return
	}
	defer buf.Release()

	snap := o.Session.Snapshot()
	unsubscribe := o.Session.Subscribe(func(s overlay.Snapshot) {
		snap = s
		w.Send(paint.Event{})
	})
	defer unsubscribe()

	var message string
	var messageUntil time.Time
	ctl := &controller{
		session: o.Session,
		keymap:  km,
		notice: func(msg string) {
			message = msg
			messageUntil = time.Now().Add(messageDuration)
			w.Send(paint.Event{})
			time.AfterFunc(messageDuration, func() { w.Send(paint.Event{}) })
		},
	}

	for !o.Session.Closed() {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				o.Session.Close()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				o.Session.BlurText()
			}
		case size.Event:
			w.Send(paint.Event{})
		case paint.Event:
			msg := ""
			if time.Now().Before(messageUntil) {
				msg = message
			}
			drawFrame(buf.RGBA(), paintState{
				background: o.Background,
				snap:       snap,
				scale:      o.Scale,
				handleSize: o.Session.HitMargin(),
				theme:      o.Theme,
				message:    msg,
			})
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		case mouse.Event:
			if e.Direction == mouse.DirPress && time.Now().Before(messageUntil) {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
			}
			o.Session.HandleMouseEvent(e, o.Scale)
		case key.Event:
			ctl.handleKey(e)
		case error:
			log.Printf("ui: %v", e)
		}
	}
}

// OpenPin shows pin id in its own window. It is meant to be wired as the
// hand-off's pin callback and is a no-op before Main has started.
func (o *Overlay) OpenPin(id int, _ image.Image) {
	o.mu.Lock()
	s := o.screen
	o.mu.Unlock()
	if s == nil || o.Pins == nil {
		log.Printf("ui: pin #%d: no screen to open it on", id)
		return
	}
	o.open.Add(1)
	go func() {
		defer o.open.Done()
		showPin(s, o.Pins, id, o.Theme)
	}()
}
