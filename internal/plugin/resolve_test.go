package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gaspardpetit/harness/internal/plugintest"
	"github.com/gaspardpetit/harness/sdk/spi"
)

func stub(name string, tags ...spi.Tag) *plugintest.Stub {
	return &plugintest.Stub{PluginName: name, TagSet: spi.Tags(tags...)}
}

func names(ps []spi.Plugin) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name()
	}
	return out
}

func TestResolveCompatibility(t *testing.T) {
	start := stub("start", spi.Entrypoint)
	batch := stub("batch", spi.Entrypoint, spi.FullControl)
	stoppable := stub("stoppable", spi.Entrypoint, spi.FullControl, spi.Stopping)
	stop := stub("stop", spi.Stopping)
	control := stub("control", spi.FullControl)
	window := stub("window", spi.Passive)
	untagged := stub("untagged")

	entries, err := Resolve([]spi.Plugin{start, stop, batch, window, stoppable, control, untagged})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "start", entries[0].Entrypoint.Name())
	assert.Equal(t, []string{"stop", "control", "window", "untagged"}, names(entries[0].Compatible))

	assert.Equal(t, "batch", entries[1].Entrypoint.Name())
	assert.Equal(t, []string{"window", "untagged"}, names(entries[1].Compatible))

	assert.Equal(t, "stoppable", entries[2].Entrypoint.Name())
	assert.Equal(t, []string{"stop", "control", "window", "untagged"}, names(entries[2].Compatible))
}

func TestResolveWithoutEntrypoint(t *testing.T) {
	_, err := Resolve([]spi.Plugin{stub("window", spi.Passive)})
	assert.ErrorIs(t, err, spi.ErrGrammar)
}

func TestResolvePassiveAlwaysCompatible(t *testing.T) {
	allTags := []spi.Tag{spi.Entrypoint, spi.FullControl, spi.Stopping, spi.Passive}
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		plugins := []spi.Plugin{stub("entry", spi.Entrypoint)}
		for i := 0; i < n; i++ {
			tags := rapid.SliceOfDistinct(rapid.SampledFrom(allTags), rapid.ID[spi.Tag]).Draw(t, "tags")
			plugins = append(plugins, stub(string(rune('a'+i)), tags...))
		}
		entries, err := Resolve(plugins)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		for _, e := range entries {
			seen := map[spi.Plugin]bool{}
			for _, c := range e.Compatible {
				if c.Tags().Has(spi.Entrypoint) {
					t.Fatalf("entrypoint %q listed as compatible", c.Name())
				}
				seen[c] = true
			}
			for _, p := range plugins {
				tags := p.Tags()
				if tags.Has(spi.Entrypoint) || tags.HasAny(spi.FullControl, spi.Stopping) {
					continue
				}
				if !seen[p] {
					t.Fatalf("passive %q missing for %q", p.Name(), e.Entrypoint.Name())
				}
			}
		}
	})
}
