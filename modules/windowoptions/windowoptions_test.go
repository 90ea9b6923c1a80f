package windowoptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/internal/plugintest"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

func initWith(t *testing.T, values map[string]parser.Value) (properties.Properties, error) {
	t.Helper()
	p := New()
	args := plugintest.Args(values)
	require.True(t, p.IsActive(args))
	var props properties.Properties
	err := p.Init(&plugintest.Host{}, args, &props)
	return props, err
}

func TestNoFlagsLeavesEverythingUnset(t *testing.T) {
	props, err := initWith(t, nil)
	require.NoError(t, err)
	assert.Equal(t, properties.Properties{}, props)
}

func TestExtentModeAndVsync(t *testing.T) {
	props, err := initWith(t, map[string]parser.Value{
		"width":    parser.String("800"),
		"height":   parser.Int(600),
		"headless": parser.Bool(true),
		"vsync":    parser.String("OFF"),
	})
	require.NoError(t, err)

	r := props.Resolve("t")
	assert.Equal(t, properties.Extent{Width: 800, Height: 600}, r.Window.Extent)
	assert.Equal(t, properties.WindowHeadless, r.Window.Mode)
	assert.Equal(t, properties.VsyncOff, r.Render.Vsync)
	assert.Equal(t, properties.VsyncOff, r.Window.Vsync)
}

func TestWindowModes(t *testing.T) {
	cases := map[string]properties.WindowMode{
		"fullscreen": properties.WindowFullscreen,
		"borderless": properties.WindowFullscreenBorderless,
		"headless":   properties.WindowHeadless,
	}
	for key, want := range cases {
		props, err := initWith(t, map[string]parser.Value{key: parser.Bool(true)})
		require.NoError(t, err)
		got, ok := props.Window.Mode.Get()
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}

func TestInvalidValues(t *testing.T) {
	for _, values := range []map[string]parser.Value{
		{"width": parser.String("0")},
		{"height": parser.String("-5")},
		{"vsync": parser.String("maybe")},
	} {
		_, err := initWith(t, values)
		assert.ErrorIs(t, err, spi.ErrParse)
	}
	_, err := initWith(t, map[string]parser.Value{"width": parser.String("wide")})
	assert.ErrorIs(t, err, spi.ErrTypeMismatch)
}

func TestModesAreExclusiveOnTheCommandLine(t *testing.T) {
	entry := &plugintest.Stub{
		PluginName: "entry",
		TagSet:     spi.Tags(spi.Entrypoint),
		Active:     func(spi.Arguments) bool { return true },
	}
	p := plugintest.NewParser(t, entry, New())
	res := p.Parse([]string{"--fullscreen", "--headless"})
	assert.Equal(t, parser.Failed, res.Outcome)
	assert.ErrorIs(t, res.Err, spi.ErrParse)
}
