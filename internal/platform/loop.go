package platform

import (
	"fmt"
	"runtime/debug"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/internal/metrics"
	"github.com/gaspardpetit/harness/internal/window"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// MainLoop runs until the window asks to close. A failing iteration fires
// OnAppError; the loop continues when a replacement application was
// requested and otherwise returns the original error, after releasing the
// failing application.
func (p *Platform) MainLoop() error {
	for !p.win.ShouldClose() {
		err := p.safely(p.iterate)
		if err == nil {
			continue
		}
		if err := p.recoverFrom(err); err != nil {
			return err
		}
	}
	return nil
}

// safely runs fn, converting a panic into a *PanicError.
func (p *Platform) safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

func (p *Platform) iterate() error {
	if p.requested != nil {
		if err := p.startApp(); err != nil {
			return err
		}
	}
	if err := p.update(); err != nil {
		return err
	}
	p.win.ProcessEvents(p)
	return nil
}

// startApp finishes the running application, then creates, prepares and
// primes the requested one before firing OnAppStart.
func (p *Platform) startApp() error {
	info := *p.requested
	p.requested = nil

	if p.app != nil {
		p.finishApp()
	}

	app := info.Create()
	if app == nil {
		p.appID = info.ID
		return fmt.Errorf("create application %q: factory returned nil", info.ID)
	}
	p.app, p.appID = app, info.ID
	p.config, p.renderer, p.input = nil, nil, nil
	if c, ok := app.(spi.Configurable); ok {
		p.config = c.Configuration()
	}
	if r, ok := app.(spi.Renderer); ok {
		p.renderer = r
	}
	if in, ok := app.(spi.InputHandler); ok {
		p.input = in
	}
	p.started = p.timer.now()
	p.frame = 0

	if err := app.Prepare(p); err != nil {
		return fmt.Errorf("prepare application %q: %w", info.ID, err)
	}
	e := p.win.Extent()
	if err := app.Resize(e.Width, e.Height); err != nil {
		return fmt.Errorf("resize application %q: %w", info.ID, err)
	}

	p.timer.Tick()
	if err := app.Update(0); err != nil {
		return err
	}

	p.state = Running
	metrics.RecordAppStart(info.ID)
	logx.Log.Info().Str("app", info.ID).Str("name", app.Name()).Msg("application started")
	return p.hooks.AppStart(info.ID)
}

// update advances the running application by the time since the last tick.
// Nothing runs while the window is unfocused.
func (p *Platform) update() error {
	dt := p.timer.Tick().Seconds()
	if !p.focused || p.app == nil {
		return nil
	}
	if err := p.hooks.Update(dt); err != nil {
		return err
	}
	if p.props.Render.UseFixedSimulationFPS {
		dt = 1 / p.props.Render.FixedSimulationFPS
	}
	if err := p.app.Update(dt); err != nil {
		return err
	}
	metrics.ObserveFrame(dt)

	if p.renderer == nil {
		return nil
	}
	frame := p.renderer.Render()
	p.frame++
	if err := p.hooks.PostDraw(spi.DrawContext{AppID: p.appID, FrameIndex: p.frame, Frame: frame}); err != nil {
		return err
	}
	p.win.Present(frame)
	return nil
}

func (p *Platform) recoverFrom(err error) error {
	p.state = ErrorRecovery
	failed := p.appID
	metrics.RecordAppError(failed)
	logx.Log.Error().Err(err).Str("app", failed).Msg("failed when running application; attempting to continue")

	if hookErr := p.safely(func() error { return p.hooks.AppError(failed) }); hookErr != nil {
		logx.Log.Error().Err(hookErr).Str("app", failed).Msg("on_app_error failed")
	}
	if p.requested != nil {
		p.state = AwaitingApp
		return nil
	}

	logx.Log.Info().Msg("no application queued")
	if p.app != nil {
		p.finishApp()
	}
	return err
}

// finishApp releases the running application.
func (p *Platform) finishApp() {
	elapsed := p.timer.now().Sub(p.started)
	logx.Log.Info().Str("app", p.appID).Str("runtime", fmt.Sprintf("%.1fs", elapsed.Seconds())).Msg("closing application")
	metrics.RecordAppRuntime(p.appID, elapsed)
	app := p.app
	p.app, p.config, p.renderer, p.input = nil, nil, nil, nil
	if err := p.safely(func() error { app.Finish(); return nil }); err != nil {
		logx.Log.Error().Err(err).Str("app", p.appID).Msg("finish failed")
	}
}

// Resize clamps the extent to the minimum, applies it to the window and
// forwards the actual extent to the running application.
func (p *Platform) Resize(width, height uint32) {
	if p.win == nil {
		return
	}
	actual := p.win.Resize(window.Clamp(properties.Extent{Width: width, Height: height}, p.opts.MinExtent))
	if p.app == nil {
		return
	}
	if err := p.app.Resize(actual.Width, actual.Height); err != nil {
		logx.Log.Warn().Err(err).Str("app", p.appID).Msg("resize failed")
	}
}

// Focus gates updates: an unfocused window pauses hooks and the application.
func (p *Platform) Focus(focused bool) { p.focused = focused }

// Input forwards an event to the running application when input processing
// is enabled and the application handles input.
func (p *Platform) Input(ev spi.InputEvent) {
	if p.props.Platform.ProcessInputEvents && p.input != nil {
		p.input.Input(ev)
	}
}
