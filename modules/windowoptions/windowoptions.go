// Package windowoptions configures the window the platform opens.
package windowoptions

import (
	"strings"

	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var (
	WidthFlag      = &spi.Flag{Key: "width", Type: spi.FlagWithOneArg, Help: "Initial window width", Placeholder: "n"}
	HeightFlag     = &spi.Flag{Key: "height", Type: spi.FlagWithOneArg, Help: "Initial window height", Placeholder: "n"}
	VsyncFlag      = &spi.Flag{Key: "vsync", Type: spi.FlagWithOneArg, Help: "Force vsync {on | off}", Placeholder: "on/off"}
	FullscreenFlag = &spi.Flag{Key: "fullscreen", Type: spi.FlagOnly, Help: "Run in fullscreen mode"}
	BorderlessFlag = &spi.Flag{Key: "borderless", Type: spi.FlagOnly, Help: "Run in borderless fullscreen mode"}
	HeadlessFlag   = &spi.Flag{Key: "headless", Type: spi.FlagOnly, Help: "Run without a window"}
)

type Plugin struct {
	baseplugin.Base
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Window Options",
		"A collection of flags to configure the window used when running the application.",
		spi.Tags(spi.Passive),
		nil,
		spi.NewGroup(spi.Individual, false, WidthFlag, HeightFlag, VsyncFlag),
		spi.NewGroup(spi.UseOne, false, FullscreenFlag, BorderlessFlag, HeadlessFlag),
	)}
}

// IsActive is always true so the defaults below apply to every run.
func (p *Plugin) IsActive(spi.Arguments) bool { return true }

func (p *Plugin) Init(_ spi.Host, args spi.Arguments, props *properties.Properties) error {
	if args.Contains(WidthFlag) {
		w, err := positive(args, WidthFlag)
		if err != nil {
			return err
		}
		props.TargetExtent.Width.Set(w)
	}
	if args.Contains(HeightFlag) {
		h, err := positive(args, HeightFlag)
		if err != nil {
			return err
		}
		props.TargetExtent.Height.Set(h)
	}

	switch {
	case args.Contains(HeadlessFlag):
		props.Window.Mode.Set(properties.WindowHeadless)
	case args.Contains(FullscreenFlag):
		props.Window.Mode.Set(properties.WindowFullscreen)
	case args.Contains(BorderlessFlag):
		props.Window.Mode.Set(properties.WindowFullscreenBorderless)
	}

	if args.Contains(VsyncFlag) {
		v, err := args.String(VsyncFlag)
		if err != nil {
			return err
		}
		switch strings.ToLower(v) {
		case "on":
			props.Render.Vsync.Set(properties.VsyncOn)
		case "off":
			props.Render.Vsync.Set(properties.VsyncOff)
		default:
			return &spi.ArgError{Key: VsyncFlag.Key, Err: spi.ErrParse, Detail: "expected on or off, got " + v}
		}
	}
	return nil
}

func positive(args spi.Arguments, f *spi.Flag) (uint32, error) {
	n, err := args.Int(f)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, &spi.ArgError{Key: f.Key, Err: spi.ErrParse, Detail: "must be positive"}
	}
	return uint32(n), nil
}
