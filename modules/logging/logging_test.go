package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/internal/plugintest"
	"github.com/gaspardpetit/harness/sdk/properties"
)

func TestSetsLevel(t *testing.T) {
	defer logx.Configure("info")
	logx.Configure("info")

	p := New()
	args := plugintest.Args(map[string]parser.Value{"log-level": parser.String("debug")})
	require.True(t, p.IsActive(args))
	require.NoError(t, p.Init(&plugintest.Host{}, args, &properties.Properties{}))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestAlwaysActive(t *testing.T) {
	defer logx.Configure("info")
	logx.Configure("warn")

	p := New()
	args := plugintest.Args(nil)
	assert.True(t, p.IsActive(args))
	require.NoError(t, p.Init(&plugintest.Host{}, args, &properties.Properties{}))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
