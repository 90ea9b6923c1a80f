package plugin

import (
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// Base holds the static descriptor of a plugin. Concrete plugins embed it
// and add IsActive plus their hook callbacks; Init defaults to a no-op.
type Base struct {
	name   string
	desc   string
	hooks  []spi.Hook
	groups []spi.FlagGroup
	tags   spi.TagSet
}

// NewBase constructs a Base with the given descriptor.
func NewBase(name, desc string, tags spi.TagSet, hooks []spi.Hook, groups ...spi.FlagGroup) Base {
	return Base{name: name, desc: desc, hooks: hooks, groups: groups, tags: tags}
}

func (b Base) Name() string                { return b.name }
func (b Base) Description() string         { return b.desc }
func (b Base) Hooks() []spi.Hook           { return b.hooks }
func (b Base) FlagGroups() []spi.FlagGroup { return b.groups }
func (b Base) Tags() spi.TagSet            { return b.tags }

// Init is a no-op in the base implementation.
func (b Base) Init(spi.Host, spi.Arguments, *properties.Properties) error { return nil }

// AnyPresent reports whether any flag of the plugin's groups was matched.
// Most plugins use it as their IsActive.
func (b Base) AnyPresent(args spi.Arguments) bool {
	for _, g := range b.groups {
		for _, f := range g.Flags {
			if args.Contains(f) {
				return true
			}
		}
	}
	return false
}
