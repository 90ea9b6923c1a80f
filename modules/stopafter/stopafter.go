// Package stopafter closes the platform after a number of frames.
package stopafter

import (
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var StopAfterFlag = &spi.Flag{Key: "stop-after-frame", Type: spi.FlagWithOneArg, Help: "Stop the application after a number of frames", Placeholder: "n"}

type Plugin struct {
	baseplugin.Base

	host      spi.Host
	remaining int
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Stop After X",
		"A collection of flags to stop the running application after a set period.",
		spi.Tags(spi.Stopping),
		[]spi.Hook{spi.OnUpdate},
		spi.NewGroup(spi.UseOne, true, StopAfterFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return args.Contains(StopAfterFlag) }

func (p *Plugin) Init(host spi.Host, args spi.Arguments, _ *properties.Properties) error {
	n, err := args.Int(StopAfterFlag)
	if err != nil {
		return err
	}
	p.host = host
	p.remaining = n
	return nil
}

func (p *Plugin) OnUpdate(float64) error {
	p.remaining--
	if p.remaining <= 0 {
		p.host.Close()
	}
	return nil
}
