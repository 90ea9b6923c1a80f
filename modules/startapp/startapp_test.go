package startapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaspardpetit/harness/internal/apps"
	"github.com/gaspardpetit/harness/internal/plugintest"
	"github.com/gaspardpetit/harness/sdk/properties"
)

func TestAppSetsApplicationID(t *testing.T) {
	p := New()
	parser := plugintest.NewParser(t, p)
	args := plugintest.MustParse(t, parser, "--app", "hello")
	require.True(t, p.IsActive(args))

	var props properties.Properties
	require.NoError(t, p.Init(&plugintest.Host{Apps: apps.Builtin()}, args, &props))
	id, ok := props.Application.ID.Get()
	assert.True(t, ok)
	assert.Equal(t, "hello", id)
	assert.False(t, props.Window.Title.IsSet())
}

func TestSampleSetsTitle(t *testing.T) {
	p := New()
	args := plugintest.MustParse(t, plugintest.NewParser(t, p), "-s", "bounce")

	var props properties.Properties
	require.NoError(t, p.Init(&plugintest.Host{Apps: apps.Builtin()}, args, &props))
	assert.Equal(t, "bounce", props.Application.ID.Or(""))
	assert.Equal(t, TitlePrefix+"Bounce", props.Window.Title.Or(""))
}

func TestUnknownSampleKeepsDefaultTitle(t *testing.T) {
	p := New()
	args := plugintest.MustParse(t, plugintest.NewParser(t, p), "--sample", "nope")

	var props properties.Properties
	require.NoError(t, p.Init(&plugintest.Host{Apps: apps.Builtin()}, args, &props))
	assert.Equal(t, "nope", props.Application.ID.Or(""))
	assert.False(t, props.Window.Title.IsSet())
}

func TestInactiveWithoutFlags(t *testing.T) {
	p := New()
	assert.False(t, p.IsActive(plugintest.Args(nil)))
}
