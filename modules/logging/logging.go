// Package logging sets the log level from the command line.
package logging

import (
	"github.com/gaspardpetit/harness/internal/logx"
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var LevelFlag = &spi.Flag{Key: "log-level", Type: spi.FlagWithOneArg, Help: "Log verbosity (all|debug|info|warn|error|none)", Placeholder: "level"}

type Plugin struct {
	baseplugin.Base
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Logging",
		"Configure log output.",
		spi.Tags(spi.Passive),
		nil,
		spi.NewGroup(spi.Individual, false, LevelFlag),
	)}
}

func (p *Plugin) IsActive(spi.Arguments) bool { return true }

func (p *Plugin) Init(_ spi.Host, args spi.Arguments, _ *properties.Properties) error {
	if !args.Contains(LevelFlag) {
		return nil
	}
	level, err := args.String(LevelFlag)
	if err != nil {
		return err
	}
	logx.Configure(level)
	logx.Log.Debug().Str("level", level).Msg("log level set")
	return nil
}
