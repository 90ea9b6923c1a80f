// Package parser builds the command line grammar from plugin flag
// declarations, parses argument vectors against it and renders help.
package parser

import (
	"fmt"
	"strings"

	"github.com/gaspardpetit/harness/sdk/spi"
)

// HelpKey is reserved for the help pseudo-command.
const HelpKey = "help"

// Entry pairs an entrypoint with the plugins compatible with it. It drives
// the entrypoint's usage line only; activation is decided by IsActive.
type Entry struct {
	Entrypoint spi.Plugin
	Compatible []spi.Plugin
}

// owned is a group together with the plugin that declared it.
type owned struct {
	plugin spi.Plugin
	group  spi.FlagGroup
}

// Parser is the grammar synthesized from a plugin set.
type Parser struct {
	program string
	plugins []spi.Plugin
	entries []Entry

	flags   []*spi.Flag // unique, in declaration order
	groups  []owned
	byKey   map[string]*spi.Flag
	byShort map[string]*spi.Flag
	// groupOf maps each positional to the first group declaring it.
	groupOf map[*spi.Flag]spi.FlagGroup
}

// New builds the grammar for plugins. Conflicting declarations return an
// error wrapping spi.ErrGrammar.
func New(program string, plugins []spi.Plugin, entries []Entry) (*Parser, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entrypoint plugin registered", spi.ErrGrammar)
	}
	p := &Parser{
		program: program,
		plugins: plugins,
		entries: entries,
		byKey:   map[string]*spi.Flag{},
		byShort: map[string]*spi.Flag{},
		groupOf: map[*spi.Flag]spi.FlagGroup{},
	}
	seen := map[*spi.Flag]bool{}
	for _, pl := range plugins {
		for _, g := range pl.FlagGroups() {
			p.groups = append(p.groups, owned{plugin: pl, group: g})
			for _, f := range g.Flags {
				if f == nil {
					return nil, fmt.Errorf("%w: plugin %q declares a nil flag", spi.ErrGrammar, pl.Name())
				}
				if seen[f] {
					continue
				}
				if err := p.addFlag(pl, f); err != nil {
					return nil, err
				}
				seen[f] = true
				p.flags = append(p.flags, f)
				if f.Type == spi.Positional {
					p.groupOf[f] = g
				}
			}
		}
	}
	return p, nil
}

func (p *Parser) addFlag(pl spi.Plugin, f *spi.Flag) error {
	key := strings.TrimSpace(f.Key)
	switch {
	case key == "":
		return fmt.Errorf("%w: plugin %q declares a flag with an empty key", spi.ErrGrammar, pl.Name())
	case key != f.Key || strings.HasPrefix(key, "-"):
		return fmt.Errorf("%w: flag key %q must not contain spaces or leading dashes", spi.ErrGrammar, f.Key)
	case key == HelpKey:
		return fmt.Errorf("%w: flag key %q is reserved", spi.ErrGrammar, HelpKey)
	}
	if other, ok := p.byKey[key]; ok {
		return fmt.Errorf("%w: flag key %q declared twice (%s and %s)", spi.ErrGrammar, key, other.Type, f.Type)
	}
	if f.Short != "" {
		if !f.IsOption() {
			return fmt.Errorf("%w: %s %q cannot have a short name", spi.ErrGrammar, f.Type, key)
		}
		if len(f.Short) != 1 || f.Short == "-" {
			return fmt.Errorf("%w: short name %q of %q must be a single character", spi.ErrGrammar, f.Short, key)
		}
		if f.Short == "h" {
			return fmt.Errorf("%w: short name -h is reserved", spi.ErrGrammar)
		}
		if other, ok := p.byShort[f.Short]; ok {
			return fmt.Errorf("%w: short name -%s used by %q and %q", spi.ErrGrammar, f.Short, other.Key, key)
		}
		p.byShort[f.Short] = f
	}
	p.byKey[key] = f
	return nil
}

// Flags returns the unique flags in declaration order.
func (p *Parser) Flags() []*spi.Flag { return append([]*spi.Flag(nil), p.flags...) }

// Lookup returns the flag declared under key.
func (p *Parser) Lookup(key string) (*spi.Flag, bool) {
	f, ok := p.byKey[key]
	return f, ok
}

// UsageLines returns one synopsis per entrypoint, without the program name.
func (p *Parser) UsageLines() []string {
	lines := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		var parts []string
		parts = appendGroups(parts, e.Entrypoint)
		for _, c := range e.Compatible {
			parts = appendGroups(parts, c)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

func appendGroups(parts []string, pl spi.Plugin) []string {
	for _, g := range pl.FlagGroups() {
		if cmd := g.Command(); cmd != "" {
			parts = append(parts, cmd)
		}
	}
	return parts
}

// CheckRequired verifies that every required group of pl has a member present.
func CheckRequired(pl spi.Plugin, args spi.Arguments) error {
	for _, g := range pl.FlagGroups() {
		if !g.Required || len(g.Flags) == 0 {
			continue
		}
		present := false
		for _, f := range g.Flags {
			if args.Contains(f) {
				present = true
				break
			}
		}
		if !present {
			return fmt.Errorf("%w: %s requires %s", spi.ErrParse, pl.Name(), g.Command())
		}
	}
	return nil
}
