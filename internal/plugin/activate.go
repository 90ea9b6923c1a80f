package plugin

import (
	"fmt"
	"strings"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/internal/metrics"
	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// Activation is the outcome of activating a plugin set against parsed arguments.
type Activation struct {
	Entrypoint spi.Plugin
	// Active lists activated plugins in activation order.
	Active     []spi.Plugin
	Hooks      *Hooks
	Properties properties.Properties
}

// Activate asks every plugin, in order, whether it is active. Exactly one
// entrypoint must be; its required flag groups must be present. Active
// plugins are then registered for their hooks and initialised. Each Init
// writes into an empty Properties which is merged over the previous ones, so
// a later plugin's set field wins and unset fields never overwrite.
//
// When a plugin fails to register or initialise, the returned Activation
// holds only the plugins initialised before it, so the caller can still
// close them, together with the error.
func Activate(host spi.Host, plugins []spi.Plugin, args spi.Arguments) (*Activation, error) {
	var active, entrypoints []spi.Plugin
	for _, p := range plugins {
		if !p.IsActive(args) {
			continue
		}
		active = append(active, p)
		if p.Tags().Has(spi.Entrypoint) {
			entrypoints = append(entrypoints, p)
		}
	}
	switch len(entrypoints) {
	case 0:
		return nil, fmt.Errorf("%w: no entrypoint is active", spi.ErrActivation)
	case 1:
	default:
		names := make([]string, len(entrypoints))
		for i, e := range entrypoints {
			names[i] = e.Name()
		}
		return nil, fmt.Errorf("%w: entrypoints %s are active together", spi.ErrActivation, strings.Join(names, ", "))
	}
	if err := parser.CheckRequired(entrypoints[0], args); err != nil {
		return nil, err
	}

	a := &Activation{Entrypoint: entrypoints[0], Hooks: NewHooks()}
	for _, p := range active {
		if err := a.Hooks.Register(p); err != nil {
			return a.partial(), err
		}
		var props properties.Properties
		if err := p.Init(host, args, &props); err != nil {
			return a.partial(), fmt.Errorf("init plugin %q: %w", p.Name(), err)
		}
		a.Active = append(a.Active, p)
		a.Properties = properties.Merge(a.Properties, props)
		metrics.SetPluginActive(p.Name())
		logx.Log.Debug().Str("plugin", p.Name()).Str("tags", p.Tags().String()).Msg("plugin activated")
	}
	return a, nil
}

// partial rebuilds the hook registry from the plugins initialised so far.
func (a *Activation) partial() *Activation {
	a.Hooks = NewHooks()
	for _, p := range a.Active {
		_ = a.Hooks.Register(p)
	}
	return a
}
