package statusserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gaspardpetit/harness/internal/metrics"
	"github.com/gaspardpetit/harness/internal/parser"
	"github.com/gaspardpetit/harness/internal/plugintest"
	"github.com/gaspardpetit/harness/modules/common/events"
	"github.com/gaspardpetit/harness/sdk/properties"
)

func getStatus(t *testing.T, addr string) Status {
	t.Helper()
	resp, err := http.Get("http://" + addr + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	return st
}

func readEvent(t *testing.T, ctx context.Context, c *websocket.Conn) events.Event {
	t.Helper()
	typ, data, err := c.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageText, typ)
	var ev events.Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestLifecycleOverHTTP(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	p := New()
	p.Gatherer = reg
	args := plugintest.Args(map[string]parser.Value{"status-addr": parser.String("127.0.0.1:0")})
	require.True(t, p.IsActive(args))
	require.NoError(t, p.Init(&plugintest.Host{ID: "run-1"}, args, &properties.Properties{}))
	addr := p.Addr()

	st := getStatus(t, addr)
	assert.Equal(t, "run-1", st.RunID)
	assert.False(t, st.Running)
	assert.Nil(t, st.StartedAt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, "ws://"+addr+"/events", nil)
	require.NoError(t, err)
	defer c.CloseNow()

	require.NoError(t, p.OnAppStart("hello"))
	for i := 0; i < 3; i++ {
		require.NoError(t, p.OnUpdate(0.016))
		metrics.ObserveFrame(0.016)
	}
	ev := readEvent(t, ctx, c)
	assert.Equal(t, events.AppStart, ev.Type)
	assert.Equal(t, "hello", ev.App)
	assert.Equal(t, "run-1", ev.RunID)

	st = getStatus(t, addr)
	assert.Equal(t, "hello", st.App)
	assert.True(t, st.Running)
	assert.Equal(t, uint64(3), st.Frames)
	assert.NotNil(t, st.StartedAt)

	require.NoError(t, p.OnAppError("hello"))
	ev = readEvent(t, ctx, c)
	assert.Equal(t, events.AppError, ev.Type)
	assert.Equal(t, uint64(3), ev.Frames)
	assert.Equal(t, uint64(1), getStatus(t, addr).Errors)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "harness_frames_total")

	require.NoError(t, p.OnPlatformClose())
	ev = readEvent(t, ctx, c)
	assert.Equal(t, events.PlatformClose, ev.Type)
	_, _, err = c.Read(ctx)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))

	_, err = http.Get("http://" + addr + "/status")
	assert.Error(t, err)
	http.DefaultClient.CloseIdleConnections()
}

func TestCORSPreflight(t *testing.T) {
	p := New()
	p.Gatherer = prometheus.NewRegistry()
	ts := httptest.NewServer(p.Handler([]string{"https://dash.example"}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/status", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://dash.example", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://other.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestInitFailsOnBadAddress(t *testing.T) {
	p := New()
	args := plugintest.Args(map[string]parser.Value{"status-addr": parser.String("127.0.0.1:-1")})
	assert.Error(t, p.Init(&plugintest.Host{}, args, &properties.Properties{}))
	assert.NoError(t, p.OnPlatformClose())
}
