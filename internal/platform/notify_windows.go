//go:build windows

package platform

import (
	"fmt"

	"github.com/go-toast/toast"
)

// Notify shows a toast through the Windows notification center.
func Notify(title, body string, opts Options) error {
	n := toast.Notification{
		AppID:   AppName,
		Title:   title,
		Message: body,
		Icon:    opts.IconPath,
	}
	if err := n.Push(); err != nil {
		return fmt.Errorf("toast: %w", err)
	}
	return nil
}
