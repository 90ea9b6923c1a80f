package spi

import (
	"fmt"
	"strings"
)

// FlagType describes how a flag appears on the command line.
type FlagType int

const (
	// Command is a bare keyword such as "batch".
	Command FlagType = iota
	// Positional is a bare value bound by position, rendered <key>.
	Positional
	// FlagOnly is a switch without a value: --key.
	FlagOnly
	// FlagWithOneArg takes exactly one value: --key <arg>.
	FlagWithOneArg
	// FlagWithManyArg takes one value per occurrence and may repeat: --key <arg>...
	FlagWithManyArg
)

func (t FlagType) String() string {
	switch t {
	case Command:
		return "command"
	case Positional:
		return "positional"
	case FlagOnly:
		return "flag"
	case FlagWithOneArg:
		return "flag-one-arg"
	case FlagWithManyArg:
		return "flag-many-arg"
	default:
		return fmt.Sprintf("FlagType(%d)", int(t))
	}
}

// Flag declares a single command line element. Flags are compared by
// identity: plugins share a flag by sharing the pointer.
type Flag struct {
	Key   string
	Short string // optional one-letter alias for options
	Type  FlagType
	Help  string
	// Placeholder names the value in help output; defaults to "arg".
	Placeholder string
}

// NewFlag returns a flag without a short alias.
func NewFlag(key string, t FlagType, help string) *Flag {
	return &Flag{Key: key, Type: t, Help: help}
}

// IsOption reports whether the flag is written with a leading dash.
func (f *Flag) IsOption() bool {
	return f.Type == FlagOnly || f.Type == FlagWithOneArg || f.Type == FlagWithManyArg
}

func (f *Flag) placeholder() string {
	if f.Placeholder != "" {
		return f.Placeholder
	}
	return "arg"
}

// Command renders the flag as it appears in a usage synopsis.
func (f *Flag) Command() string {
	switch f.Type {
	case Command:
		return f.Key
	case Positional:
		return "<" + f.Key + ">"
	case FlagOnly:
		return "--" + f.Key
	case FlagWithOneArg:
		return fmt.Sprintf("--%s <%s>", f.Key, f.placeholder())
	case FlagWithManyArg:
		return fmt.Sprintf("--%s <%s>...", f.Key, f.placeholder())
	default:
		return f.Key
	}
}

// Usage renders the left column of the help listing, including the short alias.
func (f *Flag) Usage() string {
	if !f.IsOption() || f.Short == "" {
		return f.Command()
	}
	return "-" + f.Short + ", " + f.Command()
}

// GroupType is the sharing policy of a FlagGroup.
type GroupType int

const (
	// Individual flags are independent of each other.
	Individual GroupType = iota
	// UseOne flags are mutually exclusive.
	UseOne
)

// FlagGroup is an ordered set of related flags.
type FlagGroup struct {
	Type     GroupType
	Required bool
	Flags    []*Flag
}

// NewGroup builds a FlagGroup.
func NewGroup(t GroupType, required bool, flags ...*Flag) FlagGroup {
	return FlagGroup{Type: t, Required: required, Flags: flags}
}

// Command renders the group for a usage synopsis. UseOne groups render as
// (a | b) when required and [a | b] otherwise; Individual groups render
// members bare when required and bracketed one by one otherwise.
func (g FlagGroup) Command() string {
	if len(g.Flags) == 0 {
		return ""
	}
	parts := make([]string, len(g.Flags))
	for i, f := range g.Flags {
		parts[i] = f.Command()
	}
	if g.Type == UseOne {
		body := strings.Join(parts, " | ")
		switch {
		case g.Required && len(parts) == 1:
			return body
		case g.Required:
			return "(" + body + ")"
		default:
			return "[" + body + "]"
		}
	}
	if g.Required {
		return strings.Join(parts, " ")
	}
	for i, p := range parts {
		parts[i] = "[" + p + "]"
	}
	return strings.Join(parts, " ")
}

// Commands returns the Command flags of the group.
func (g FlagGroup) Commands() []*Flag {
	var out []*Flag
	for _, f := range g.Flags {
		if f.Type == Command {
			out = append(out, f)
		}
	}
	return out
}
