// Package window provides the surfaces the platform loop presents frames to.
package window

import (
	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// EventSink receives the events a window pumps in ProcessEvents.
type EventSink interface {
	Resize(width, height uint32)
	Focus(focused bool)
	Input(ev spi.InputEvent)
}

// Window is the host surface driven by the platform. All methods are called
// from the loop goroutine.
type Window interface {
	Extent() properties.Extent
	// Resize requests a new extent and returns the one actually applied.
	Resize(e properties.Extent) properties.Extent
	Focused() bool
	ShouldClose() bool
	// Close marks the window for closing; the loop observes it on its next check.
	Close()
	ProcessEvents(sink EventSink)
	Present(frame spi.Frame)
	// Release frees the window. It is called once, after the last Present.
	Release()
}

// Factory opens a window for the resolved settings.
type Factory func(s properties.WindowSettings) (Window, error)

// Open returns a headless window for headless mode and a terminal window
// otherwise, falling back to headless when no terminal is available.
func Open(s properties.WindowSettings) (Window, error) {
	if s.Mode == properties.WindowHeadless {
		return NewHeadless(s), nil
	}
	t, err := OpenTerminal(s)
	if err != nil {
		logx.Log.Warn().Err(err).Msg("terminal unavailable; running headless")
		return NewHeadless(s), nil
	}
	return t, nil
}

// Clamp raises e to at least floor in each dimension.
func Clamp(e, floor properties.Extent) properties.Extent {
	if e.Width < floor.Width {
		e.Width = floor.Width
	}
	if e.Height < floor.Height {
		e.Height = floor.Height
	}
	return e
}
