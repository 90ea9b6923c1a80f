// Package fpslogger logs the frame rate once per second.
package fpslogger

import (
	"github.com/gaspardpetit/harness/internal/logx"
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var LogFPSFlag = &spi.Flag{Key: "log-fps", Type: spi.FlagOnly, Help: "Log the frame rate every second"}

type Plugin struct {
	baseplugin.Base

	frames  int
	elapsed float64
	last    float64
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"FPS Logger",
		"Enable FPS logging.",
		spi.Tags(spi.Passive),
		[]spi.Hook{spi.OnUpdate},
		spi.NewGroup(spi.Individual, false, LogFPSFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return args.Contains(LogFPSFlag) }

func (p *Plugin) OnUpdate(dt float64) error {
	p.frames++
	p.elapsed += dt
	if p.elapsed < 1 {
		return nil
	}
	p.last = float64(p.frames) / p.elapsed
	logx.Log.Info().Float64("fps", p.last).Int("frames", p.frames).Msg("fps")
	p.frames = 0
	p.elapsed = 0
	return nil
}

// Last returns the most recently logged frame rate, zero before the first second.
func (p *Plugin) Last() float64 { return p.last }
