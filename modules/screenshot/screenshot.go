// Package screenshot saves the rendered frame of a chosen update to a file.
package screenshot

import (
	"fmt"
	"time"

	"github.com/gaspardpetit/harness/internal/fs"
	"github.com/gaspardpetit/harness/internal/logx"
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var (
	ScreenshotFlag = &spi.Flag{Key: "screenshot", Type: spi.FlagWithOneArg, Help: "Take a screenshot at a given frame", Placeholder: "frame"}
	OutputFlag     = &spi.Flag{Key: "screenshot-output", Type: spi.FlagWithOneArg, Help: "Declare an output name for the screenshot", Placeholder: "path"}
)

const stampLayout = "2006-01-02---15-04-05"

type Plugin struct {
	baseplugin.Base

	// Now stamps default file names; time.Now when nil.
	Now func() time.Time

	frame   int
	output  string
	app     string
	current int
	saved   []string
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Screenshot",
		"Save a screenshot of a specific frame.",
		spi.Tags(spi.Passive),
		[]spi.Hook{spi.OnUpdate, spi.OnAppStart, spi.PostDraw},
		spi.NewGroup(spi.Individual, false, ScreenshotFlag, OutputFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return args.Contains(ScreenshotFlag) }

func (p *Plugin) Init(_ spi.Host, args spi.Arguments, _ *properties.Properties) error {
	n, err := args.Int(ScreenshotFlag)
	if err != nil {
		return err
	}
	p.frame = n
	if args.Contains(OutputFlag) {
		if p.output, err = args.String(OutputFlag); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) OnAppStart(appID string) error {
	p.app = appID
	p.current = 0
	return nil
}

func (p *Plugin) OnUpdate(float64) error {
	p.current++
	return nil
}

func (p *Plugin) OnPostDraw(ctx spi.DrawContext) error {
	if p.current != p.frame {
		return nil
	}
	path := p.output
	if path == "" {
		now := time.Now
		if p.Now != nil {
			now = p.Now
		}
		path = fmt.Sprintf("%s-%s.txt", p.app, now().Format(stampLayout))
	}
	sum, err := fs.WriteAtomic(path, []byte(ctx.Frame.String()+"\n"))
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	p.saved = append(p.saved, path)
	logx.Log.Info().Str("app", ctx.AppID).Uint64("frame", ctx.FrameIndex).Str("path", path).Str("sha256", sum).Msg("screenshot saved")
	return nil
}

// Saved returns the paths written so far.
func (p *Plugin) Saved() []string { return append([]string(nil), p.saved...) }
