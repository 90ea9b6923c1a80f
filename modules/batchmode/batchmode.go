// Package batchmode runs a filtered set of catalog applications one after
// another, cycling through each application's configurations.
package batchmode

import (
	"errors"
	"fmt"
	"time"

	"github.com/gaspardpetit/harness/internal/logx"
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var (
	BatchCmd     = &spi.Flag{Key: "batch", Type: spi.Command, Help: "Enable batch mode"}
	DurationFlag = &spi.Flag{Key: "duration", Type: spi.FlagWithOneArg, Help: "Seconds each configuration runs for", Placeholder: "s"}
	TagFlag      = &spi.Flag{Key: "tag", Short: "T", Type: spi.FlagWithManyArg, Help: "Filter applications by tag", Placeholder: "tag"}
	CategoryFlag = &spi.Flag{Key: "category", Short: "C", Type: spi.FlagWithManyArg, Help: "Filter applications by category", Placeholder: "category"}
	WrapFlag     = &spi.Flag{Key: "wrap-to-start", Type: spi.FlagOnly, Help: "Start over once every application has run"}
)

// DefaultDuration is the run time per configuration.
const DefaultDuration = 3 * time.Second

// ErrNoApplications is returned by Init when the filters match nothing.
var ErrNoApplications = errors.New("batch mode: no applications match the filters")

type Plugin struct {
	baseplugin.Base

	host     spi.Host
	list     []spi.AppInfo
	index    int
	duration float64
	elapsed  float64
	wrap     bool
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Batch Mode",
		"Run a collection of applications in sequence.",
		spi.Tags(spi.Entrypoint, spi.FullControl),
		[]spi.Hook{spi.OnUpdate, spi.OnAppError},
		spi.NewGroup(spi.Individual, true, BatchCmd),
		spi.NewGroup(spi.Individual, false, DurationFlag, TagFlag, CategoryFlag, WrapFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return args.Contains(BatchCmd) }

func (p *Plugin) Init(host spi.Host, args spi.Arguments, props *properties.Properties) error {
	p.host = host
	p.duration = DefaultDuration.Seconds()
	if args.Contains(DurationFlag) {
		d, err := args.Float(DurationFlag)
		if err != nil {
			return err
		}
		if d <= 0 {
			return &spi.ArgError{Key: DurationFlag.Key, Err: spi.ErrParse, Detail: "duration must be positive"}
		}
		p.duration = d
	}
	p.wrap = args.Contains(WrapFlag)

	var tags, categories []string
	var err error
	if args.Contains(TagFlag) {
		if tags, err = args.List(TagFlag); err != nil {
			return err
		}
	}
	if args.Contains(CategoryFlag) {
		if categories, err = args.List(CategoryFlag); err != nil {
			return err
		}
	}
	if host.Catalog() != nil {
		p.list = host.Catalog().Filter(categories, tags)
	}
	if len(p.list) == 0 {
		return fmt.Errorf("%w (categories %v, tags %v)", ErrNoApplications, categories, tags)
	}
	logx.Log.Info().Int("apps", len(p.list)).Float64("duration", p.duration).Bool("wrap", p.wrap).Msg("batch mode")

	props.Platform.ProcessInputEvents.Set(false)
	props.Window.Resizable.Set(false)

	p.index = 0
	p.elapsed = 0
	return host.RequestApplication(p.list[0].ID)
}

// OnUpdate advances to the next configuration of the running application once
// the duration elapsed, and to the next application after the last one.
func (p *Plugin) OnUpdate(dt float64) error {
	p.elapsed += dt
	if p.elapsed < p.duration {
		return nil
	}
	p.elapsed = 0
	if cfg := p.host.Configuration(); cfg != nil && cfg.Next() {
		logx.Log.Debug().Str("app", p.list[p.index].ID).Msg("next configuration")
		return nil
	}
	return p.loadNext()
}

// OnAppError skips the failed application.
func (p *Plugin) OnAppError(appID string) error {
	logx.Log.Warn().Str("app", appID).Msg("batch mode skipping failed application")
	return p.loadNext()
}

func (p *Plugin) loadNext() error {
	p.elapsed = 0
	p.index++
	if p.index >= len(p.list) {
		if !p.wrap {
			p.host.Close()
			return nil
		}
		p.index = 0
	}
	return p.host.RequestApplication(p.list[p.index].ID)
}

// Current returns the id of the application batch mode last requested.
func (p *Plugin) Current() string {
	if len(p.list) == 0 {
		return ""
	}
	return p.list[p.index].ID
}
