package starttest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaspardpetit/harness/internal/apps"
	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/internal/plugintest"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

func TestStartsTestApplication(t *testing.T) {
	p := New()
	args := plugintest.MustParse(t, plugintest.NewParser(t, p), "-t", "crash")
	require.True(t, p.IsActive(args))

	var props properties.Properties
	require.NoError(t, p.Init(&plugintest.Host{Apps: apps.Builtin()}, args, &props))
	assert.Equal(t, "crash", props.Application.ID.Or(""))
}

func TestRejectsNonTests(t *testing.T) {
	for _, id := range []string{"hello", "missing"} {
		p := New()
		args := plugintest.Args(map[string]parser.Value{"test": parser.String(id)})
		var props properties.Properties
		err := p.Init(&plugintest.Host{Apps: apps.Builtin()}, args, &props)
		assert.ErrorIs(t, err, spi.ErrUnknownApp, id)
		assert.False(t, props.Application.ID.IsSet())
	}
}
