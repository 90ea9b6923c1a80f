// Package statusserver exposes the state of a run over HTTP: a JSON status
// snapshot, Prometheus metrics and a websocket stream of lifecycle events.
package statusserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/modules/common/events"
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var (
	AddrFlag   = &spi.Flag{Key: "status-addr", Type: spi.FlagWithOneArg, Help: "Serve run status over HTTP on this address", Placeholder: "addr"}
	OriginFlag = &spi.Flag{Key: "status-origin", Type: spi.FlagWithManyArg, Help: "Allowed CORS origin for the status server", Placeholder: "origin"}
)

const (
	shutdownTimeout = 5 * time.Second
	writeTimeout    = 5 * time.Second
	subscriberQueue = 32
)

// Status is the document served on /status.
type Status struct {
	RunID     string     `json:"run_id"`
	App       string     `json:"app,omitempty"`
	Running   bool       `json:"running"`
	Frames    uint64     `json:"frames"`
	Errors    uint64     `json:"errors"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

type Plugin struct {
	baseplugin.Base

	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer

	mu     sync.Mutex
	status Status
	subs   map[chan events.Event]struct{}
	closed bool

	srv  *http.Server
	addr string
	done chan struct{}
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Status Server",
		"Serve run status, metrics and lifecycle events over HTTP.",
		spi.Tags(spi.Passive),
		[]spi.Hook{spi.OnAppStart, spi.OnAppClose, spi.OnAppError, spi.OnUpdate, spi.OnPlatformClose},
		spi.NewGroup(spi.Individual, false, AddrFlag, OriginFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return args.Contains(AddrFlag) }

// Init starts listening. The server runs until OnPlatformClose.
func (p *Plugin) Init(host spi.Host, args spi.Arguments, _ *properties.Properties) error {
	addr, err := args.String(AddrFlag)
	if err != nil {
		return err
	}
	var origins []string
	if args.Contains(OriginFlag) {
		if origins, err = args.List(OriginFlag); err != nil {
			return err
		}
	}

	p.mu.Lock()
	p.status = Status{RunID: host.RunID()}
	p.subs = map[chan events.Event]struct{}{}
	p.closed = false
	p.mu.Unlock()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	p.addr = ln.Addr().String()
	p.srv = &http.Server{Handler: p.Handler(origins), ReadHeaderTimeout: 5 * time.Second}
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		if err := p.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Log.Error().Err(err).Str("addr", p.addr).Msg("status server error")
		}
	}()
	logx.Log.Info().Str("addr", p.addr).Msg("status server listening")
	return nil
}

// Addr returns the address the server listens on, once Init succeeded.
func (p *Plugin) Addr() string { return p.addr }

// Handler builds the HTTP routes. CORS is enabled when origins is not empty.
func (p *Plugin) Handler(origins []string) http.Handler {
	r := chi.NewRouter()
	if len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}))
	}
	gatherer := p.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Get("/status", p.serveStatus)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/events", p.serveEvents)
	return r
}

// Snapshot returns the current status.
func (p *Plugin) Snapshot() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Plugin) serveStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p.Snapshot())
}

func (p *Plugin) serveEvents(w http.ResponseWriter, r *http.Request) {
	ch, ok := p.subscribe()
	if !ok {
		http.Error(w, "platform closing", http.StatusServiceUnavailable)
		return
	}
	defer p.unsubscribe(ch)

	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer c.CloseNow()
	ctx := c.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				_ = c.Close(websocket.StatusGoingAway, "platform closing")
				return
			}
			b, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err = c.Write(wctx, websocket.MessageText, b)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func (p *Plugin) subscribe() (chan events.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, false
	}
	ch := make(chan events.Event, subscriberQueue)
	p.subs[ch] = struct{}{}
	return ch, true
}

func (p *Plugin) unsubscribe(ch chan events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.subs[ch]; ok {
		delete(p.subs, ch)
		close(ch)
	}
}

// publish queues ev for every subscriber; slow subscribers miss events.
// Callers hold p.mu.
func (p *Plugin) publish(t events.Type, app string) {
	ev := events.New(t, p.status.RunID, app, p.status.Frames)
	for ch := range p.subs {
		select {
		case ch <- ev:
		default:
			logx.Log.Debug().Str("event", string(t)).Msg("status subscriber lagging; event dropped")
		}
	}
}

func (p *Plugin) OnAppStart(appID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now().UTC()
	p.status.App = appID
	p.status.Running = true
	p.status.Frames = 0
	p.status.StartedAt = &now
	p.publish(events.AppStart, appID)
	return nil
}

func (p *Plugin) OnUpdate(float64) error {
	p.mu.Lock()
	p.status.Frames++
	p.mu.Unlock()
	return nil
}

func (p *Plugin) OnAppClose(appID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Running = false
	p.publish(events.AppClose, appID)
	return nil
}

func (p *Plugin) OnAppError(appID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Running = false
	p.status.Errors++
	p.publish(events.AppError, appID)
	return nil
}

// OnPlatformClose sends the final event, ends every event stream and shuts
// the server down.
func (p *Plugin) OnPlatformClose() error {
	p.mu.Lock()
	p.publish(events.PlatformClose, "")
	p.closed = true
	for ch := range p.subs {
		delete(p.subs, ch)
		close(ch)
	}
	p.mu.Unlock()

	if p.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := p.srv.Shutdown(ctx)
	<-p.done
	return err
}
