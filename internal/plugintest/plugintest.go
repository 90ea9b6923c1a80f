// Package plugintest provides test doubles for plugins, hosts and parsed
// arguments.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// Recorder collects hook invocations in call order.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *Recorder) Add(format string, a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, a...))
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how many recorded calls equal call.
func (r *Recorder) Count(call string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Stub is a configurable plugin without hook callbacks.
type Stub struct {
	PluginName string
	Desc       string
	HookList   []spi.Hook
	Groups     []spi.FlagGroup
	TagSet     spi.TagSet
	// Active decides IsActive; nil means active when any own flag is present.
	Active func(spi.Arguments) bool
	// InitFn runs on Init when set.
	InitFn func(spi.Host, spi.Arguments, *properties.Properties) error
}

func (s *Stub) Name() string                { return s.PluginName }
func (s *Stub) Description() string         { return s.Desc }
func (s *Stub) Hooks() []spi.Hook           { return s.HookList }
func (s *Stub) FlagGroups() []spi.FlagGroup { return s.Groups }
func (s *Stub) Tags() spi.TagSet            { return s.TagSet }

func (s *Stub) IsActive(args spi.Arguments) bool {
	if s.Active != nil {
		return s.Active(args)
	}
	for _, g := range s.Groups {
		for _, f := range g.Flags {
			if args.Contains(f) {
				return true
			}
		}
	}
	return false
}

func (s *Stub) Init(host spi.Host, args spi.Arguments, props *properties.Properties) error {
	if s.InitFn != nil {
		return s.InitFn(host, args, props)
	}
	return nil
}

// Hooked is a Stub implementing every hook callback. Each call is recorded
// as "<name>:<hook>" and returns Fail[hook].
type Hooked struct {
	Stub
	Rec  *Recorder
	Fail map[spi.Hook]error
	// OnError runs inside OnAppError, e.g. to request a replacement app.
	OnError func(appID string)
}

func (h *Hooked) record(hook spi.Hook, detail string) error {
	if h.Rec != nil {
		if detail != "" {
			h.Rec.Add("%s:%s:%s", h.PluginName, hook, detail)
		} else {
			h.Rec.Add("%s:%s", h.PluginName, hook)
		}
	}
	return h.Fail[hook]
}

func (h *Hooked) OnUpdate(float64) error           { return h.record(spi.OnUpdate, "") }
func (h *Hooked) OnAppStart(id string) error       { return h.record(spi.OnAppStart, id) }
func (h *Hooked) OnAppClose(id string) error       { return h.record(spi.OnAppClose, id) }
func (h *Hooked) OnPlatformClose() error           { return h.record(spi.OnPlatformClose, "") }
func (h *Hooked) OnPostDraw(spi.DrawContext) error { return h.record(spi.PostDraw, "") }

func (h *Hooked) OnAppError(id string) error {
	err := h.record(spi.OnAppError, id)
	if h.OnError != nil {
		h.OnError(id)
	}
	return err
}

// Host is an in-memory spi.Host.
type Host struct {
	ID        string
	Requested []string
	Closed    bool
	App       spi.Application
	Config    spi.Configuration
	Apps      spi.Catalog
	// RequestErr is returned by RequestApplication when set.
	RequestErr error
}

func (h *Host) RunID() string {
	if h.ID == "" {
		return "test-run"
	}
	return h.ID
}

func (h *Host) RequestApplication(id string) error {
	if h.RequestErr != nil {
		return h.RequestErr
	}
	h.Requested = append(h.Requested, id)
	return nil
}

func (h *Host) Close()                           { h.Closed = true }
func (h *Host) Application() spi.Application     { return h.App }
func (h *Host) Configuration() spi.Configuration { return h.Config }
func (h *Host) Catalog() spi.Catalog             { return h.Apps }

// TB is the subset of testing.TB the helpers need, also met by *rapid.T.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// NewParser builds a parser over plugins where every Entrypoint-tagged
// plugin is compatible with every other plugin.
func NewParser(t TB, plugins ...spi.Plugin) *parser.Parser {
	t.Helper()
	var entries []parser.Entry
	for _, p := range plugins {
		if !p.Tags().Has(spi.Entrypoint) {
			continue
		}
		e := parser.Entry{Entrypoint: p}
		for _, o := range plugins {
			if !o.Tags().Has(spi.Entrypoint) {
				e.Compatible = append(e.Compatible, o)
			}
		}
		entries = append(entries, e)
	}
	p, err := parser.New("app", plugins, entries)
	if err != nil {
		t.Fatalf("build grammar: %v", err)
	}
	return p
}

// MustParse parses argv and fails the test unless the outcome is Parsed.
func MustParse(t TB, p *parser.Parser, argv ...string) *parser.Arguments {
	t.Helper()
	res := p.Parse(argv)
	if res.Outcome != parser.Parsed {
		t.Fatalf("parse %q: outcome %s: %v", argv, res.Outcome, res.Err)
	}
	return res.Args
}

// Args builds parsed arguments directly from values.
func Args(values map[string]parser.Value) *parser.Arguments {
	return parser.NewArguments(values)
}
