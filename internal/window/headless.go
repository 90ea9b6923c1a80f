package window

import (
	"sync"

	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// EventKind identifies a scripted headless event.
type EventKind int

const (
	EventResize EventKind = iota
	EventFocus
	EventKey
	EventClose
)

// Event is queued with Post and delivered on the next ProcessEvents.
type Event struct {
	Kind    EventKind
	Extent  properties.Extent
	Focused bool
	Key     spi.InputEvent
}

// Headless is a window without a display. It records presented frames and
// replays posted events, which makes it the window of choice for tests and
// batch runs.
type Headless struct {
	mu        sync.Mutex
	extent    properties.Extent
	focused   bool
	closed    bool
	released  bool
	pending   []Event
	last      spi.Frame
	presented uint64
}

var _ Window = (*Headless)(nil)

// NewHeadless creates a focused headless window of the configured extent.
func NewHeadless(s properties.WindowSettings) *Headless {
	return &Headless{extent: s.Extent, focused: true}
}

func (h *Headless) Extent() properties.Extent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.extent
}

func (h *Headless) Resize(e properties.Extent) properties.Extent {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.extent = e
	return e
}

func (h *Headless) Focused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.focused
}

func (h *Headless) ShouldClose() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (h *Headless) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}

// Post queues events for the next ProcessEvents. Safe for concurrent use.
func (h *Headless) Post(evs ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, evs...)
}

func (h *Headless) ProcessEvents(sink EventSink) {
	h.mu.Lock()
	evs := h.pending
	h.pending = nil
	h.mu.Unlock()

	for _, ev := range evs {
		switch ev.Kind {
		case EventResize:
			sink.Resize(ev.Extent.Width, ev.Extent.Height)
		case EventFocus:
			h.mu.Lock()
			h.focused = ev.Focused
			h.mu.Unlock()
			sink.Focus(ev.Focused)
		case EventKey:
			sink.Input(ev.Key)
		case EventClose:
			h.Close()
		}
	}
}

func (h *Headless) Present(frame spi.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = frame
	h.presented++
}

// LastFrame returns the most recently presented frame and the present count.
func (h *Headless) LastFrame() (spi.Frame, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.presented
}

func (h *Headless) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released = true
}

// Released reports whether Release was called.
func (h *Headless) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}
