// Package stoponclose holds the process open until a key is pressed.
package stoponclose

import (
	"errors"
	"fmt"
	"io"
	"os"

	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var StopFlag = &spi.Flag{Key: "stop-on-close", Type: spi.FlagOnly, Help: "Halt the application before closing"}

// Prompt is written before waiting.
const Prompt = "Press enter to continue"

type Plugin struct {
	baseplugin.Base

	In  io.Reader
	Out io.Writer
}

func New() *Plugin {
	return &Plugin{
		Base: baseplugin.NewBase(
			"Stop on Close",
			"Halt the application before exiting.",
			spi.Tags(spi.Passive),
			[]spi.Hook{spi.OnPlatformClose},
			spi.NewGroup(spi.Individual, false, StopFlag),
		),
		In:  os.Stdin,
		Out: os.Stdout,
	}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return args.Contains(StopFlag) }

// OnPlatformClose blocks until a byte can be read from In. End of input also
// releases it.
func (p *Plugin) OnPlatformClose() error {
	if _, err := fmt.Fprintln(p.Out, Prompt); err != nil {
		return err
	}
	var b [1]byte
	if _, err := p.In.Read(b[:]); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
