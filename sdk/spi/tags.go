package spi

import "strings"

// Tag classifies how a plugin interacts with the run.
type Tag uint8

const (
	// Entrypoint plugins choose which application runs.
	Entrypoint Tag = 1 << iota
	// FullControl plugins dictate application behaviour.
	FullControl
	// Stopping plugins may end the run.
	Stopping
	// Passive plugins only observe or apply non-conflicting configuration.
	Passive
)

func (t Tag) String() string {
	switch t {
	case Entrypoint:
		return "entrypoint"
	case FullControl:
		return "full-control"
	case Stopping:
		return "stopping"
	case Passive:
		return "passive"
	default:
		return "unknown"
	}
}

// TagSet is a set of tags. The zero value is empty.
type TagSet uint8

// Tags builds a set from the given tags.
func Tags(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s |= TagSet(t)
	}
	return s
}

// Has reports whether t is in the set.
func (s TagSet) Has(t Tag) bool { return s&TagSet(t) != 0 }

// HasAny reports whether any of tags is in the set.
func (s TagSet) HasAny(tags ...Tag) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// With returns a copy of s with t added.
func (s TagSet) With(t Tag) TagSet { return s | TagSet(t) }

func (s TagSet) String() string {
	var names []string
	for _, t := range []Tag{Entrypoint, FullControl, Stopping, Passive} {
		if s.Has(t) {
			names = append(names, t.String())
		}
	}
	return strings.Join(names, ",")
}
