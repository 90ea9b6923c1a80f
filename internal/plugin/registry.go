// Package plugin holds the static plugin registry, the compatibility
// resolver, activation and hook dispatch.
package plugin

import (
	"fmt"
	"sync"

	"github.com/gaspardpetit/harness/sdk/spi"
)

// Factory is the common constructor for plugins. Each run gets fresh instances.
type Factory func() spi.Plugin

var (
	mu       sync.RWMutex
	order    []string
	registry = map[string]Factory{}
)

// Register adds a factory under id. Registration order is the activation
// order, so it must be deterministic (init of this package).
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[id]; dup {
		panic(fmt.Sprintf("plugin: %q registered twice", id))
	}
	registry[id] = f
	order = append(order, id)
}

// Get returns a factory by ID.
func Get(id string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[id]
	return f, ok
}

// IDs returns the registered plugin IDs in registration order.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), order...)
}

// Instantiate creates one instance of every registered plugin, in
// registration order.
func Instantiate() []spi.Plugin {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]spi.Plugin, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id]())
	}
	return out
}
