package plugin

import (
	"fmt"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/internal/metrics"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// Hooks maps each hook kind to its subscribers in registration order.
// It is filled during activation and only read afterwards.
type Hooks struct {
	subs map[spi.Hook][]spi.Plugin

	update        []spi.UpdateHook
	appStart      []spi.AppStartHook
	appClose      []spi.AppCloseHook
	appError      []spi.AppErrorHook
	platformClose []spi.PlatformCloseHook
	postDraw      []spi.PostDrawHook
}

// NewHooks returns an empty registry.
func NewHooks() *Hooks {
	return &Hooks{subs: map[spi.Hook][]spi.Plugin{}}
}

// Register subscribes p to every hook it declares. A declared hook without
// the matching callback is an activation error; repeated declarations and
// repeated registrations of the same plugin are ignored.
func (h *Hooks) Register(p spi.Plugin) error {
	declared := map[spi.Hook]bool{}
	var hooks []spi.Hook
	for _, hook := range p.Hooks() {
		if declared[hook] {
			continue
		}
		declared[hook] = true
		if !spi.Implements(p, hook) {
			return fmt.Errorf("%w: plugin %q declares %s without implementing it", spi.ErrActivation, p.Name(), hook)
		}
		hooks = append(hooks, hook)
	}
	for _, hook := range hooks {
		if h.subscribed(hook, p) {
			continue
		}
		h.subs[hook] = append(h.subs[hook], p)
		switch hook {
		case spi.OnUpdate:
			h.update = append(h.update, p.(spi.UpdateHook))
		case spi.OnAppStart:
			h.appStart = append(h.appStart, p.(spi.AppStartHook))
		case spi.OnAppClose:
			h.appClose = append(h.appClose, p.(spi.AppCloseHook))
		case spi.OnAppError:
			h.appError = append(h.appError, p.(spi.AppErrorHook))
		case spi.OnPlatformClose:
			h.platformClose = append(h.platformClose, p.(spi.PlatformCloseHook))
		case spi.PostDraw:
			h.postDraw = append(h.postDraw, p.(spi.PostDrawHook))
		}
	}
	return nil
}

func (h *Hooks) subscribed(hook spi.Hook, p spi.Plugin) bool {
	for _, s := range h.subs[hook] {
		if s == p {
			return true
		}
	}
	return false
}

// Subscribers returns the plugins registered for hook, in dispatch order.
func (h *Hooks) Subscribers(hook spi.Hook) []spi.Plugin {
	return append([]spi.Plugin(nil), h.subs[hook]...)
}

// dispatch calls fn for each subscriber in order and stops at the first error.
// Errors are returned to the caller unchanged.
func dispatch[T any](hook spi.Hook, subs []spi.Plugin, callbacks []T, fn func(T) error) error {
	for i, cb := range callbacks {
		metrics.RecordHookDispatch(hook.String())
		if err := fn(cb); err != nil {
			metrics.RecordHookError(hook.String(), subs[i].Name())
			logx.Log.Debug().Str("hook", hook.String()).Str("plugin", subs[i].Name()).Err(err).Msg("hook failed")
			return err
		}
	}
	return nil
}

func (h *Hooks) Update(dt float64) error {
	return dispatch(spi.OnUpdate, h.subs[spi.OnUpdate], h.update, func(cb spi.UpdateHook) error { return cb.OnUpdate(dt) })
}

func (h *Hooks) AppStart(appID string) error {
	return dispatch(spi.OnAppStart, h.subs[spi.OnAppStart], h.appStart, func(cb spi.AppStartHook) error { return cb.OnAppStart(appID) })
}

func (h *Hooks) AppClose(appID string) error {
	return dispatch(spi.OnAppClose, h.subs[spi.OnAppClose], h.appClose, func(cb spi.AppCloseHook) error { return cb.OnAppClose(appID) })
}

func (h *Hooks) AppError(appID string) error {
	return dispatch(spi.OnAppError, h.subs[spi.OnAppError], h.appError, func(cb spi.AppErrorHook) error { return cb.OnAppError(appID) })
}

func (h *Hooks) PlatformClose() error {
	return dispatch(spi.OnPlatformClose, h.subs[spi.OnPlatformClose], h.platformClose, func(cb spi.PlatformCloseHook) error { return cb.OnPlatformClose() })
}

func (h *Hooks) PostDraw(ctx spi.DrawContext) error {
	return dispatch(spi.PostDraw, h.subs[spi.PostDraw], h.postDraw, func(cb spi.PostDrawHook) error { return cb.OnPostDraw(ctx) })
}
