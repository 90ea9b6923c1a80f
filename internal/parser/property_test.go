package parser_test

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/internal/plugintest"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var optionTypes = []spi.FlagType{spi.Command, spi.FlagOnly, spi.FlagWithOneArg, spi.FlagWithManyArg}

// pluginsGen draws 1..4 plugins with collision-free keys. The first plugin is
// always an entrypoint.
func pluginsGen() *rapid.Generator[[]*plugintest.Stub] {
	return rapid.Custom(func(t *rapid.T) []*plugintest.Stub {
		keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{3,8}`), 40, 40, rapid.ID[string]).
			Filter(func(ks []string) bool {
				for _, k := range ks {
					if k == parser.HelpKey {
						return false
					}
				}
				return true
			}).Draw(t, "keys")
		next := 0
		n := rapid.IntRange(1, 4).Draw(t, "plugins")
		out := make([]*plugintest.Stub, n)
		for i := range out {
			tags := spi.Tags(spi.Passive)
			if i == 0 || rapid.Bool().Draw(t, "entry") {
				tags = spi.Tags(spi.Entrypoint)
			}
			var groups []spi.FlagGroup
			for g := rapid.IntRange(0, 3).Draw(t, "groups"); g > 0; g-- {
				typ := rapid.SampledFrom([]spi.GroupType{spi.Individual, spi.UseOne}).Draw(t, "type")
				var flags []*spi.Flag
				for f := rapid.IntRange(1, 3).Draw(t, "flags"); f > 0; f-- {
					flags = append(flags, spi.NewFlag(keys[next], rapid.SampledFrom(optionTypes).Draw(t, "ftype"), "generated"))
					next++
				}
				groups = append(groups, spi.NewGroup(typ, rapid.Bool().Draw(t, "required"), flags...))
			}
			out[i] = &plugintest.Stub{PluginName: fmt.Sprintf("p%d", i), TagSet: tags, Groups: groups}
		}
		return out
	})
}

func asPlugins(stubs []*plugintest.Stub) []spi.Plugin {
	out := make([]spi.Plugin, len(stubs))
	for i, s := range stubs {
		out[i] = s
	}
	return out
}

func tokens(f *spi.Flag, t *rapid.T) []string {
	switch f.Type {
	case spi.Command:
		return []string{f.Key}
	case spi.FlagOnly:
		return []string{"--" + f.Key}
	case spi.FlagWithOneArg:
		return []string{"--" + f.Key + "=" + rapid.StringMatching(`[A-Z0-9]{1,4}`).Draw(t, "value")}
	default:
		var out []string
		for i := rapid.IntRange(1, 2).Draw(t, "repeat"); i > 0; i-- {
			out = append(out, "--"+f.Key, rapid.StringMatching(`[A-Z0-9]{1,4}`).Draw(t, "value"))
		}
		return out
	}
}

func TestLegalInvocationsParse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stubs := pluginsGen().Draw(t, "plugins")
		p := plugintest.NewParser(t, asPlugins(stubs)...)

		var chunks [][]string
		present := map[*spi.Flag]bool{}
		for _, s := range stubs {
			for _, g := range s.Groups {
				var pick []*spi.Flag
				if g.Type == spi.UseOne {
					if g.Required || rapid.Bool().Draw(t, "use") {
						pick = append(pick, rapid.SampledFrom(g.Flags).Draw(t, "choice"))
					}
				} else {
					for _, f := range g.Flags {
						if g.Required || rapid.Bool().Draw(t, "use") {
							pick = append(pick, f)
						}
					}
				}
				for _, f := range pick {
					present[f] = true
					chunks = append(chunks, tokens(f, t))
				}
			}
		}
		var argv []string
		for _, c := range rapid.Permutation(chunks).Draw(t, "order") {
			argv = append(argv, c...)
		}

		res := p.Parse(argv)
		if res.Outcome != parser.Parsed {
			t.Fatalf("parse %q: %s %v", argv, res.Outcome, res.Err)
		}
		for _, f := range p.Flags() {
			if got := res.Args.Contains(f); got != present[f] {
				t.Fatalf("flag %q: contains=%v want %v (argv %q)", f.Key, got, present[f], argv)
			}
		}
	})
}

func TestUnknownTokensRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stubs := pluginsGen().Draw(t, "plugins")
		p := plugintest.NewParser(t, asPlugins(stubs)...)

		unknown := rapid.StringMatching(`[a-z]{3,8}[0-9]`).Draw(t, "unknown")
		tok := rapid.SampledFrom([]string{unknown, "--" + unknown}).Draw(t, "form")
		res := p.Parse([]string{tok})
		if res.Outcome != parser.Failed {
			t.Fatalf("token %q: outcome %s", tok, res.Outcome)
		}
	})
}

func TestGeneratedUsageLinesRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stubs := pluginsGen().Draw(t, "plugins")
		p := plugintest.NewParser(t, asPlugins(stubs)...)
		keep := rapid.Bool().Draw(t, "keepOptional")
		for _, line := range p.UsageLines() {
			argv := instantiate(line, keep)
			if res := p.Parse(argv); res.Outcome != parser.Parsed {
				t.Fatalf("usage %q as %q: %v", line, argv, res.Err)
			}
		}
	})
}
