package spi

import "strings"

// Application is a runnable unit driven by the platform loop.
type Application interface {
	Name() string
	// Prepare is called once after the application is created. Returning an
	// error enters error recovery.
	Prepare(host Host) error
	Update(dt float64) error
	Resize(width, height uint32) error
	// Finish releases the application. It is called exactly once.
	Finish()
}

// Configurable is implemented by applications that expose several
// configurations to cycle through.
type Configurable interface {
	Configuration() Configuration
}

// Configuration is a cursor over an application's configurations.
type Configuration interface {
	// Next applies the next configuration. It returns false, and wraps back to
	// the first configuration, once every configuration has been applied.
	Next() bool
	Reset()
	Len() int
}

// Renderer is implemented by applications that produce a frame after each update.
type Renderer interface {
	Render() Frame
}

// InputHandler is implemented by applications that consume input events.
type InputHandler interface {
	Input(ev InputEvent)
}

// Frames are text grids. One cell covers CellWidth x CellHeight extent units.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Frame is the output of one rendered update.
type Frame struct {
	Width  int
	Height int
	Lines  []string
}

// String joins the frame lines.
func (f Frame) String() string { return strings.Join(f.Lines, "\n") }

// DrawContext is passed to PostDraw hooks.
type DrawContext struct {
	AppID      string
	FrameIndex uint64
	Frame      Frame
}

// InputEvent is a single key press forwarded by the window.
type InputEvent struct {
	Key  rune
	Name string
}

// AppFactory creates a fresh application instance.
type AppFactory func() Application

// AppInfo describes a catalog entry.
type AppInfo struct {
	ID          string
	Name        string
	Description string
	Category    string
	Tags        []string
	Create      AppFactory
}

// HasTag reports whether the entry carries tag.
func (a AppInfo) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Catalog lists the applications the host can run.
type Catalog interface {
	Lookup(id string) (AppInfo, bool)
	// Filter returns the entries in the given categories carrying any of the
	// given tags. Empty filters match everything.
	Filter(categories, tags []string) []AppInfo
	All() []AppInfo
}
