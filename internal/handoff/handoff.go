// Package handoff turns a confirmed overlay selection into pixels: it
// captures the region, burns in the annotations and sends the result to
// the clipboard, the pin store or a file.
package handoff

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/example/cropshot/internal/capture"
	"github.com/example/cropshot/internal/clipboard"
	"github.com/example/cropshot/internal/notify"
	"github.com/example/cropshot/internal/overlay"
	"github.com/example/cropshot/internal/pin"
	"github.com/example/cropshot/internal/render"
)

var (
	captureRegion  = capture.CaptureRegionScaled
	writeClipboard = clipboard.WriteImage
)

// Deliverer implements overlay.Handoff.
type Deliverer struct {
	Pins     *pin.Store
	Files    *Storage
	Notifier *notify.Notifier
	// OnPin is called after a pin is stored, typically to open its window.
	OnPin func(id int, img image.Image)
}

var _ overlay.Handoff = (*Deliverer)(nil)

// Deliver captures sel and dispatches it according to action.
func (d *Deliverer) Deliver(ctx context.Context, action overlay.Action, sel overlay.Selection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := d.Render(sel)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	switch action {
	case overlay.ActionCopy:
		if err := writeClipboard(img); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		log.Printf("handoff: copied %dx%d image", img.Bounds().Dx(), img.Bounds().Dy())
		d.Notifier.Copy(img)
	case overlay.ActionPin:
		if d.Pins == nil {
			return fmt.Errorf("pin: no pin store")
		}
		id, err := d.Pins.Create(img)
		if err != nil {
			return err
		}
		log.Printf("handoff: pinned #%d", id)
		d.Notifier.Pin(id, img)
		if d.OnPin != nil {
			d.OnPin(id, img)
		}
	case overlay.ActionSave:
		if d.Files == nil {
			return fmt.Errorf("save: no storage configured")
		}
		path, err := d.Files.Save(img)
		if err != nil {
			return err
		}
		log.Printf("handoff: saved %s", path)
		d.Notifier.Save(path)
	default:
		return fmt.Errorf("unsupported action %s", action)
	}
	return nil
}

// Render captures the selection and draws its shapes on top.
func (d *Deliverer) Render(sel overlay.Selection) (*image.RGBA, error) {
	param := capture.LogicalParam{
		Left:    sel.Rect.Left,
		Top:     sel.Rect.Top,
		Width:   sel.Rect.Width,
		Height:  sel.Rect.Height,
		ScreenX: sel.ScreenX,
		ScreenY: sel.ScreenY,
	}
	img, phys, err := captureRegion(param, sel.Scale)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	if len(sel.Shapes) == 0 {
		return img, nil
	}
	scale := sel.Scale
	if scale <= 0 && param.Width > 0 {
		scale = float64(phys.Width) / param.Width
	}
	return render.Annotate(img, sel.Shapes, scale), nil
}
