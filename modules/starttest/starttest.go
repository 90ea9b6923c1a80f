// Package starttest is the entrypoint for test applications.
package starttest

import (
	"fmt"

	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// Category is the catalog category test applications are filed under.
const Category = "test"

var TestFlag = &spi.Flag{Key: "test", Short: "t", Type: spi.FlagWithOneArg, Help: "Run a specific test", Placeholder: "id"}

type Plugin struct {
	baseplugin.Base
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Tests",
		"A collection of flags to run tests.",
		spi.Tags(spi.Entrypoint),
		nil,
		spi.NewGroup(spi.UseOne, true, TestFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return p.AnyPresent(args) }

func (p *Plugin) Init(host spi.Host, args spi.Arguments, props *properties.Properties) error {
	id, err := args.String(TestFlag)
	if err != nil {
		return err
	}
	if host.Catalog() == nil {
		return fmt.Errorf("%w: %q (no catalog)", spi.ErrUnknownApp, id)
	}
	info, ok := host.Catalog().Lookup(id)
	if !ok || info.Category != Category {
		return fmt.Errorf("%w: %q is not a test", spi.ErrUnknownApp, id)
	}
	props.Application.ID.Set(info.ID)
	return nil
}
