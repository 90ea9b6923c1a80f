package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "harness_build_info",
			Help:        "Build information",
			ConstLabels: prometheus.Labels{"component": "platform"},
		},
		[]string{"date", "sha", "version"},
	)

	hookDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_hook_dispatch_total",
			Help: "Hook callbacks invoked per hook kind",
		},
		[]string{"hook"},
	)

	hookErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_hook_errors_total",
			Help: "Hook callbacks that returned an error",
		},
		[]string{"hook", "plugin"},
	)

	appStarts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_app_starts_total",
			Help: "Applications started",
		},
		[]string{"app"},
	)

	appErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_app_errors_total",
			Help: "Application failures entering error recovery",
		},
		[]string{"app"},
	)

	appRuntime = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harness_app_runtime_seconds_total",
			Help: "Wall time spent running each application",
		},
		[]string{"app"},
	)

	frames = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harness_frames_total",
			Help: "Loop iterations that advanced an application",
		},
	)

	frameDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harness_frame_delta_seconds",
			Help:    "Delta time passed to applications",
			Buckets: []float64{0.001, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25, 1},
		},
	)

	activePlugins = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "harness_plugin_active",
			Help: "Plugins activated for this run",
		},
		[]string{"plugin"},
	)
)

// Register registers all metrics with the provided registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(buildInfo, hookDispatches, hookErrors, appStarts, appErrors, appRuntime, frames, frameDuration, activePlugins)
}

// SetBuildInfo sets the build info metric.
func SetBuildInfo(version, sha, date string) {
	buildInfo.WithLabelValues(date, sha, version).Set(1)
}

// RecordHookDispatch counts one callback invocation for hook.
func RecordHookDispatch(hook string) {
	hookDispatches.WithLabelValues(hook).Inc()
}

// RecordHookError counts a failed callback.
func RecordHookError(hook, plugin string) {
	hookErrors.WithLabelValues(hook, plugin).Inc()
}

// RecordAppStart counts an application start.
func RecordAppStart(app string) {
	appStarts.WithLabelValues(app).Inc()
}

// RecordAppError counts an application failure.
func RecordAppError(app string) {
	appErrors.WithLabelValues(app).Inc()
}

// RecordAppRuntime adds the time an application ran before it finished.
func RecordAppRuntime(app string, d time.Duration) {
	appRuntime.WithLabelValues(app).Add(d.Seconds())
}

// ObserveFrame records one application update.
func ObserveFrame(dt float64) {
	frames.Inc()
	frameDuration.Observe(dt)
}

// SetPluginActive marks a plugin as active for the run.
func SetPluginActive(plugin string) {
	activePlugins.WithLabelValues(plugin).Set(1)
}

