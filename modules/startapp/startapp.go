// Package startapp is the default entrypoint: it starts the application or
// sample named on the command line.
package startapp

import (
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var (
	AppFlag    = &spi.Flag{Key: "app", Type: spi.FlagWithOneArg, Help: "Run a specific application", Placeholder: "id"}
	SampleFlag = &spi.Flag{Key: "sample", Short: "s", Type: spi.FlagWithOneArg, Help: "Run a specific sample", Placeholder: "id"}
)

// TitlePrefix is prepended to a sample's name in the window title.
const TitlePrefix = "Harness: "

type Plugin struct {
	baseplugin.Base
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Apps",
		"A collection of flags to run applications and samples.",
		spi.Tags(spi.Entrypoint),
		nil,
		spi.NewGroup(spi.UseOne, true, AppFlag, SampleFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return p.AnyPresent(args) }

// Init requests the named application. A sample also titles the window after
// its catalog name. Unknown ids are reported when the platform requests them.
func (p *Plugin) Init(host spi.Host, args spi.Arguments, props *properties.Properties) error {
	flag := AppFlag
	if args.Contains(SampleFlag) {
		flag = SampleFlag
	}
	id, err := args.String(flag)
	if err != nil {
		return err
	}
	props.Application.ID.Set(id)

	if flag == SampleFlag && host.Catalog() != nil {
		if info, ok := host.Catalog().Lookup(id); ok {
			props.Window.Title.Set(TitlePrefix + info.Name)
		}
	}
	return nil
}
