// Package platform drives the run: it builds the command line from the
// plugin set, activates plugins, and runs applications in a loop that
// dispatches lifecycle hooks.
package platform

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/internal/plugin"
	"github.com/gaspardpetit/harness/internal/window"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// Options configure a Platform.
type Options struct {
	// Program is the name shown in usage lines.
	Program string
	Plugins []spi.Plugin
	Catalog spi.Catalog
	// OpenWindow creates the window; window.Open when nil.
	OpenWindow window.Factory
	// MinExtent is the smallest window extent; 420x320 when zero.
	MinExtent properties.Extent
	// HelpOut receives the help text. When nil help is logged line by line.
	HelpOut io.Writer
	// Now is the loop clock; time.Now when nil.
	Now func() time.Time
}

// Platform is the lifecycle orchestrator. It is not safe for concurrent use
// except for Close.
type Platform struct {
	opts  Options
	runID string
	state State

	parser *parser.Parser
	hooks  *plugin.Hooks
	active []spi.Plugin
	props  properties.Resolved

	// mu guards win and closePending against Close from other goroutines.
	mu           sync.Mutex
	win          window.Window
	closePending bool
	focused      bool

	requested *spi.AppInfo
	app       spi.Application
	appID     string
	config    spi.Configuration
	renderer  spi.Renderer
	input     spi.InputHandler
	started   time.Time
	frame     uint64

	timer *timer
}

var _ spi.Host = (*Platform)(nil)

// New creates an idle platform.
func New(opts Options) *Platform {
	if opts.Program == "" {
		opts.Program = "harness"
	}
	if opts.OpenWindow == nil {
		opts.OpenWindow = window.Open
	}
	if opts.MinExtent.Width == 0 {
		opts.MinExtent.Width = 420
	}
	if opts.MinExtent.Height == 0 {
		opts.MinExtent.Height = 320
	}
	return &Platform{
		opts:    opts,
		runID:   uuid.NewString(),
		focused: true,
		timer:   newTimer(opts.Now),
	}
}

// Run initializes, loops until the window closes, and terminates.
func (p *Platform) Run(argv []string) ExitCode {
	code, err := p.Initialize(argv)
	if err != nil {
		logx.Log.Error().Err(err).Msg("unable to run")
	}
	if code == Success {
		if err := p.MainLoop(); err != nil {
			logx.Log.Error().Err(err).Msg("fatal error")
			code = FatalError
		}
	}
	p.Terminate(code)
	return code
}

// Initialize builds the grammar, parses argv, activates plugins, opens the
// window and checks that an application was requested. Any code other than
// Success means the loop must not run.
func (p *Platform) Initialize(argv []string) (ExitCode, error) {
	entries, err := plugin.Resolve(p.opts.Plugins)
	if err != nil {
		return UnableToRun, err
	}
	p.parser, err = parser.New(p.opts.Program, p.opts.Plugins, entries)
	if err != nil {
		return UnableToRun, err
	}

	res := p.parser.Parse(argv)
	switch res.Outcome {
	case parser.HelpRequested:
		return HelpShown, nil
	case parser.Failed:
		return UnableToRun, res.Err
	}

	act, err := plugin.Activate(p, p.opts.Plugins, res.Args)
	if err != nil {
		if act != nil {
			p.hooks = act.Hooks
			p.active = act.Active
		}
		return UnableToRun, err
	}
	p.hooks = act.Hooks
	p.active = act.Active
	p.props = act.Properties.Resolve(p.opts.Program)
	logx.Log.Info().Str("run", p.runID).Str("entrypoint", act.Entrypoint.Name()).Int("plugins", len(act.Active)).Msg("plugins activated")

	if id := p.props.Application; id != "" {
		if err := p.RequestApplication(id); err != nil {
			return UnableToRun, err
		}
	}

	settings := p.props.Window
	settings.Extent = window.Clamp(settings.Extent, p.opts.MinExtent)
	win, err := p.opts.OpenWindow(settings)
	if err != nil {
		return UnableToRun, fmt.Errorf("open window: %w", err)
	}
	p.mu.Lock()
	p.win = win
	if p.closePending {
		win.Close()
	}
	p.mu.Unlock()
	p.focused = p.win.Focused()

	if p.requested == nil {
		return UnableToRun, errors.New("an application was not requested, can not continue")
	}
	p.state = AwaitingApp
	return Success, nil
}

// Terminate closes the running application, releases the window and fires
// OnPlatformClose. Help is printed when the run could not start.
func (p *Platform) Terminate(code ExitCode) {
	if (code == UnableToRun || code == HelpShown) && p.parser != nil {
		p.printHelp()
	}
	p.state = Terminating

	if p.app != nil {
		if p.hooks != nil {
			if err := p.safely(func() error { return p.hooks.AppClose(p.appID) }); err != nil {
				logx.Log.Error().Err(err).Str("app", p.appID).Msg("on_app_close failed")
			}
		}
		p.finishApp()
	}
	p.mu.Lock()
	win := p.win
	p.win = nil
	p.mu.Unlock()
	if win != nil {
		win.Release()
	}
	if p.hooks != nil {
		if err := p.safely(p.hooks.PlatformClose); err != nil {
			logx.Log.Error().Err(err).Msg("on_platform_close failed")
		}
	}
	p.state = Terminated
	logx.Log.Debug().Str("run", p.runID).Stringer("code", code).Msg("platform terminated")
}

func (p *Platform) printHelp() {
	if p.opts.HelpOut != nil {
		if err := p.parser.WriteHelp(p.opts.HelpOut); err != nil {
			logx.Log.Warn().Err(err).Msg("write help")
		}
		return
	}
	for _, line := range p.parser.HelpLines() {
		logx.Log.Info().Msg(line)
	}
}

// State returns the lifecycle state.
func (p *Platform) State() State { return p.state }

// Parser returns the synthesized grammar, or nil before Initialize.
func (p *Platform) Parser() *parser.Parser { return p.parser }

// Active returns the activated plugins in activation order.
func (p *Platform) Active() []spi.Plugin { return append([]spi.Plugin(nil), p.active...) }

// Settings returns the resolved properties of the run.
func (p *Platform) Settings() properties.Resolved { return p.props }

// AppID returns the id of the running application.
func (p *Platform) AppID() string { return p.appID }

func (p *Platform) RunID() string { return p.runID }

// RequestApplication queues id to start on the next loop iteration.
func (p *Platform) RequestApplication(id string) error {
	if p.opts.Catalog == nil {
		return fmt.Errorf("%w: %q (no catalog)", spi.ErrUnknownApp, id)
	}
	info, ok := p.opts.Catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", spi.ErrUnknownApp, id)
	}
	p.requested = &info
	return nil
}

// Close asks the window to close. Before the window exists the request is
// remembered and applied once it opens. Safe for concurrent use.
func (p *Platform) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.win == nil {
		p.closePending = true
		return
	}
	p.win.Close()
}

func (p *Platform) Application() spi.Application { return p.app }

func (p *Platform) Configuration() spi.Configuration { return p.config }

func (p *Platform) Catalog() spi.Catalog { return p.opts.Catalog }
