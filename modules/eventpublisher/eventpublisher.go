// Package eventpublisher appends lifecycle events to a Redis stream so other
// processes can follow a run.
package eventpublisher

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/modules/common/events"
	"github.com/gaspardpetit/harness/modules/common/reconnect"
	baseplugin "github.com/gaspardpetit/harness/sdk/base/plugin"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

var (
	RedisFlag  = &spi.Flag{Key: "publish-redis", Type: spi.FlagWithOneArg, Help: "Publish lifecycle events to this Redis URL", Placeholder: "url"}
	StreamFlag = &spi.Flag{Key: "publish-stream", Type: spi.FlagWithOneArg, Help: "Redis stream receiving the events", Placeholder: "name"}
)

const (
	// DefaultStream is used when no stream name is given.
	DefaultStream = "harness:events"
	// MaxLen caps the stream length (approximate trimming).
	MaxLen = 10000

	opTimeout = 2 * time.Second
)

type Plugin struct {
	baseplugin.Base

	client redis.UniversalClient
	stream string
	runID  string
	gate   reconnect.Gate
	// Dropped counts events skipped while backing off after a failure.
	Dropped int
}

func New() *Plugin {
	return &Plugin{Base: baseplugin.NewBase(
		"Event Publisher",
		"Append lifecycle events to a Redis stream.",
		spi.Tags(spi.Passive),
		[]spi.Hook{spi.OnAppStart, spi.OnAppClose, spi.OnAppError, spi.OnPlatformClose},
		spi.NewGroup(spi.Individual, false, RedisFlag, StreamFlag),
	)}
}

func (p *Plugin) IsActive(args spi.Arguments) bool { return args.Contains(RedisFlag) }

// Init connects and pings the server; an unreachable server fails activation.
func (p *Plugin) Init(host spi.Host, args spi.Arguments, _ *properties.Properties) error {
	addr, err := args.String(RedisFlag)
	if err != nil {
		return err
	}
	p.stream = DefaultStream
	if args.Contains(StreamFlag) {
		if p.stream, err = args.String(StreamFlag); err != nil {
			return err
		}
	}
	opts, err := parseRedisURL(addr)
	if err != nil {
		return err
	}
	c := redis.NewUniversalClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("redis ping: %w", err)
	}
	p.client = c
	p.runID = host.RunID()
	logx.Log.Info().Str("stream", p.stream).Msg("publishing lifecycle events")
	return nil
}

// publish appends ev to the stream. Failures are logged and never stop the
// run; after one, events are dropped until the backoff expires.
func (p *Plugin) publish(t events.Type, app string) {
	if p.client == nil {
		return
	}
	if !p.gate.Allow() {
		p.Dropped++
		return
	}
	ev := events.New(t, p.runID, app, 0)
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: MaxLen,
		Approx: true,
		Values: ev.Values(),
	}).Err()
	if err != nil {
		wait := p.gate.Fail()
		logx.Log.Warn().Err(err).Str("stream", p.stream).Str("event", string(t)).Dur("retry_in", wait).Msg("publish failed")
		return
	}
	p.gate.Succeed()
}

func (p *Plugin) OnAppStart(appID string) error {
	p.publish(events.AppStart, appID)
	return nil
}

func (p *Plugin) OnAppClose(appID string) error {
	p.publish(events.AppClose, appID)
	return nil
}

func (p *Plugin) OnAppError(appID string) error {
	p.publish(events.AppError, appID)
	return nil
}

func (p *Plugin) OnPlatformClose() error {
	p.publish(events.PlatformClose, "")
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
