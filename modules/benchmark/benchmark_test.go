package benchmark

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/internal/plugintest"
	"github.com/gaspardpetit/harness/sdk/properties"
)

func TestFixesSimulationRate(t *testing.T) {
	p := New()
	args := plugintest.Args(map[string]parser.Value{"benchmark": parser.Bool(true)})
	require.True(t, p.IsActive(args))

	var props properties.Properties
	require.NoError(t, p.Init(&plugintest.Host{}, args, &props))
	r := props.Resolve("t").Render
	assert.True(t, r.UseFixedSimulationFPS)
	assert.Equal(t, float64(SimulationFPS), r.FixedSimulationFPS)
}

func TestReportPerApplication(t *testing.T) {
	p := New()
	require.NoError(t, p.Init(&plugintest.Host{}, plugintest.Args(nil), &properties.Properties{}))

	require.NoError(t, p.OnAppStart("hello"))
	for i := 0; i < 120; i++ {
		require.NoError(t, p.OnUpdate(1.0/60))
	}
	require.NoError(t, p.OnAppClose("hello"))

	require.NoError(t, p.OnAppStart("bounce"))
	require.NoError(t, p.OnUpdate(0.5))
	require.NoError(t, p.OnAppClose("bounce"))

	reports := p.Reports()
	require.Len(t, reports, 2)
	assert.Equal(t, "hello", reports[0].App)
	assert.Equal(t, uint64(120), reports[0].Frames)
	assert.InDelta(t, 60, reports[0].FPS, 1e-6)
	assert.InDelta(t, float64(2*time.Second), float64(reports[0].Elapsed), float64(time.Millisecond))
	assert.GreaterOrEqual(t, reports[0].CPUSeconds, 0.0)
	if runtime.GOOS == "linux" {
		assert.NotZero(t, reports[0].RSSBytes)
	}

	assert.Equal(t, uint64(1), reports[1].Frames)
	assert.InDelta(t, 2, reports[1].FPS, 1e-9)
}

func TestNoUpdatesMeansNoRate(t *testing.T) {
	p := New()
	require.NoError(t, p.OnAppStart("hello"))
	require.NoError(t, p.OnAppClose("hello"))
	assert.Zero(t, p.Reports()[0].FPS)
}
