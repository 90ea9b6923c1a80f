// Package benchmark runs applications at a fixed simulation rate and reports
// frame throughput and process resource usage when each one closes.
package benchmark

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/gaspardpetit/harness/internal/logx"
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// SimulationFPS is the fixed rate applications run at while benchmarking.
const SimulationFPS = 60

var BenchmarkFlag = &spi.Flag{Key: "benchmark", Type: spi.FlagOnly, Help: "Toggles benchmark mode"}

// Report summarises one benchmarked application.
type Report struct {
	App     string
	Frames  uint64
	Elapsed time.Duration
	// FPS is Frames over the measured wall time.
	FPS float64
	// CPUSeconds is user plus system time spent by the process during the run.
	CPUSeconds float64
	RSSBytes   uint64
}

type Plugin struct {
	baseplugin.Base

	proc     *process.Process
	app      string
	frames   uint64
	elapsed  float64
	cpuStart float64
	reports  []Report
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Benchmark",
		"Log frame throughput and resource usage; runs applications at a fixed simulation rate.",
		spi.Tags(spi.Passive),
		[]spi.Hook{spi.OnUpdate, spi.OnAppStart, spi.OnAppClose},
		spi.NewGroup(spi.Individual, false, BenchmarkFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return args.Contains(BenchmarkFlag) }

func (p *Plugin) Init(_ spi.Host, _ spi.Arguments, props *properties.Properties) error {
	props.Render.FixedSimulationFPS.Set(SimulationFPS)
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logx.Log.Warn().Err(err).Msg("benchmark: process stats unavailable")
		return nil
	}
	p.proc = proc
	return nil
}

func (p *Plugin) OnAppStart(appID string) error {
	p.app = appID
	p.frames = 0
	p.elapsed = 0
	p.cpuStart = p.cpuSeconds()
	logx.Log.Info().Str("app", appID).Int("fps", SimulationFPS).Msg("starting benchmark")
	return nil
}

func (p *Plugin) OnUpdate(dt float64) error {
	p.frames++
	p.elapsed += dt
	return nil
}

func (p *Plugin) OnAppClose(appID string) error {
	r := Report{
		App:        appID,
		Frames:     p.frames,
		Elapsed:    time.Duration(p.elapsed * float64(time.Second)),
		CPUSeconds: p.cpuSeconds() - p.cpuStart,
	}
	if p.elapsed > 0 {
		r.FPS = float64(p.frames) / p.elapsed
	}
	if p.proc != nil {
		if mem, err := p.proc.MemoryInfo(); err == nil {
			r.RSSBytes = mem.RSS
		}
	}
	p.reports = append(p.reports, r)
	logx.Log.Info().
		Str("app", r.App).
		Uint64("frames", r.Frames).
		Dur("elapsed", r.Elapsed).
		Float64("avg_fps", r.FPS).
		Float64("cpu_seconds", r.CPUSeconds).
		Uint64("rss_bytes", r.RSSBytes).
		Msg("benchmark complete")
	return nil
}

func (p *Plugin) cpuSeconds() float64 {
	if p.proc == nil {
		return 0
	}
	t, err := p.proc.Times()
	if err != nil {
		return 0
	}
	return t.User + t.System
}

// Reports returns the reports collected so far, oldest first.
func (p *Plugin) Reports() []Report { return append([]Report(nil), p.reports...) }
