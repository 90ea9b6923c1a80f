package plugin

import (
	"fmt"

	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// Resolve computes, for every entrypoint, the plugins it may run with.
//
// Non-entrypoints tagged FullControl or Stopping are aggressive; all others
// are passive. Passive plugins are compatible with every entrypoint.
// Aggressive ones only join entrypoints that are not FullControl, or that are
// also Stopping. Input order is preserved.
func Resolve(plugins []spi.Plugin) ([]parser.Entry, error) {
	var entrypoints, aggressive, passive []spi.Plugin
	for _, p := range plugins {
		tags := p.Tags()
		switch {
		case tags.Has(spi.Entrypoint):
			entrypoints = append(entrypoints, p)
		case tags.HasAny(spi.FullControl, spi.Stopping):
			aggressive = append(aggressive, p)
		default:
			passive = append(passive, p)
		}
	}
	if len(entrypoints) == 0 {
		return nil, fmt.Errorf("%w: no entrypoint plugin among %d plugins", spi.ErrGrammar, len(plugins))
	}

	entries := make([]parser.Entry, 0, len(entrypoints))
	for _, e := range entrypoints {
		var compatible []spi.Plugin
		if !e.Tags().Has(spi.FullControl) || e.Tags().Has(spi.Stopping) {
			compatible = append(compatible, aggressive...)
		}
		compatible = append(compatible, passive...)
		entries = append(entries, parser.Entry{Entrypoint: e, Compatible: compatible})
	}
	return entries, nil
}
