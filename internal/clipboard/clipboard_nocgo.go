//go:build !cgo && !windows

// Package clipboard publishes captured regions to the system clipboard.
package clipboard

import (
	"errors"
	"image"
	"sync"
)

var (
	initOnce       sync.Once
	initErr        error
	errCGODisabled = errors.New("clipboard operations require cgo support")
)

func ensureInit() error {
	initOnce.Do(func() {
		if displayAvailable() {
			initErr = errCGODisabled
			return
		}
		initErr = errNoDisplay
	})
	return initErr
}

func WriteImage(image.Image) error {
	return ensureInit()
}
