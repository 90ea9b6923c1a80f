package spi

import "fmt"

// Hook is a lifecycle point plugins may subscribe to.
type Hook int

const (
	OnUpdate Hook = iota
	OnAppStart
	OnAppClose
	OnAppError
	OnPlatformClose
	PostDraw
)

// AllHooks lists every hook kind in dispatch-table order.
var AllHooks = []Hook{OnUpdate, OnAppStart, OnAppClose, OnAppError, OnPlatformClose, PostDraw}

func (h Hook) String() string {
	switch h {
	case OnUpdate:
		return "on_update"
	case OnAppStart:
		return "on_app_start"
	case OnAppClose:
		return "on_app_close"
	case OnAppError:
		return "on_app_error"
	case OnPlatformClose:
		return "on_platform_close"
	case PostDraw:
		return "post_draw"
	default:
		return fmt.Sprintf("Hook(%d)", int(h))
	}
}

// UpdateHook is called once per frame with the elapsed time in seconds.
type UpdateHook interface {
	OnUpdate(dt float64) error
}

// AppStartHook is called after an application has been prepared and primed.
type AppStartHook interface {
	OnAppStart(appID string) error
}

// AppCloseHook is called before the running application is finished at shutdown.
type AppCloseHook interface {
	OnAppClose(appID string) error
}

// AppErrorHook is called when preparing or ticking an application failed.
// Requesting another application from here keeps the run alive.
type AppErrorHook interface {
	OnAppError(appID string) error
}

// PlatformCloseHook is called last, after the window has been released.
type PlatformCloseHook interface {
	OnPlatformClose() error
}

// PostDrawHook is called after a rendering application produced a frame.
type PostDrawHook interface {
	OnPostDraw(ctx DrawContext) error
}

// Implements reports whether p provides the callback for hook h.
func Implements(p any, h Hook) bool {
	switch h {
	case OnUpdate:
		_, ok := p.(UpdateHook)
		return ok
	case OnAppStart:
		_, ok := p.(AppStartHook)
		return ok
	case OnAppClose:
		_, ok := p.(AppCloseHook)
		return ok
	case OnAppError:
		_, ok := p.(AppErrorHook)
		return ok
	case OnPlatformClose:
		_, ok := p.(PlatformCloseHook)
		return ok
	case PostDraw:
		_, ok := p.(PostDrawHook)
		return ok
	default:
		return false
	}
}
