package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gaspardpetit/harness/internal/apps"
	"github.com/gaspardpetit/harness/internal/config"
	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/internal/metrics"
	"github.com/gaspardpetit/harness/internal/platform"
	"github.com/gaspardpetit/harness/internal/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var (
	version   = "dev"
	buildSHA  = "unknown"
	buildDate = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cfg, err := config.Load()
	if err != nil {
		logx.Log.Error().Err(err).Str("path", cfg.ConfigFile).Msg("load config")
		return int(platform.UnableToRun)
	}
	logx.Configure(cfg.LogLevel)
	logx.Log.Debug().Str("version", version).Str("sha", buildSHA).Str("date", buildDate).Msg("harness")

	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	metrics.Register(reg)
	metrics.SetBuildInfo(version, buildSHA, buildDate)

	plugins := enabledPlugins(cfg)
	if len(argv) == 0 {
		argv = cfg.DefaultArgs
	}

	p := platform.New(platform.Options{
		Program:   cfg.AppName,
		Plugins:   plugins,
		Catalog:   apps.Builtin(),
		MinExtent: properties.Extent{Width: cfg.MinWidth, Height: cfg.MinHeight},
		HelpOut:   os.Stdout,
	})

	stop := watchSignals(p.Close)
	defer stop()

	return int(p.Run(argv))
}

// watchSignals calls closeFn on SIGINT or SIGTERM until the returned stop
// function is called; stop waits for the watcher to exit.
func watchSignals(closeFn func()) (stop func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer close(exited)
		for {
			select {
			case sig := <-sigs:
				logx.Log.Info().Str("signal", sig.String()).Msg("closing")
				closeFn()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
		<-exited
	}
}

func enabledPlugins(cfg config.HostConfig) []spi.Plugin {
	var out []spi.Plugin
	for _, id := range plugin.IDs() {
		if !cfg.PluginEnabled(id) {
			logx.Log.Debug().Str("plugin", id).Msg("plugin disabled by configuration")
			continue
		}
		f, _ := plugin.Get(id)
		out = append(out, f())
	}
	return out
}
