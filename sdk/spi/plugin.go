// Package spi defines the contract between the harness and its plugins and
// applications.
package spi

import "github.com/gaspardpetit/harness/sdk/properties"

// Plugin is an optional behaviour module compiled into the host.
//
// A plugin declares its hooks, flags and tags up front. Each run the host asks
// IsActive with the parsed arguments; active plugins receive Init and are
// registered for the hooks they declared. A declared hook must be backed by
// the matching callback interface (UpdateHook, AppStartHook, ...).
type Plugin interface {
	Name() string
	Description() string
	Hooks() []Hook
	FlagGroups() []FlagGroup
	Tags() TagSet
	IsActive(args Arguments) bool
	Init(host Host, args Arguments, props *properties.Properties) error
}

// Host is the view of the running platform given to plugins and applications.
type Host interface {
	// RunID identifies this process run.
	RunID() string
	// RequestApplication queues an application to start on the next loop iteration.
	RequestApplication(id string) error
	// Close asks the platform to stop after the current iteration.
	Close()
	// Application returns the running application, or nil.
	Application() Application
	// Configuration returns the running application's configuration view, or
	// nil when there is none.
	Configuration() Configuration
	Catalog() Catalog
}
