package window

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

type sink struct {
	resizes []properties.Extent
	focus   []bool
	keys    []string
}

func (s *sink) Resize(w, h uint32)      { s.resizes = append(s.resizes, properties.Extent{Width: w, Height: h}) }
func (s *sink) Focus(f bool)            { s.focus = append(s.focus, f) }
func (s *sink) Input(ev spi.InputEvent) { s.keys = append(s.keys, ev.Name) }

func TestClamp(t *testing.T) {
	floor := properties.Extent{Width: 420, Height: 320}
	assert.Equal(t, properties.Extent{Width: 420, Height: 320}, Clamp(properties.Extent{Width: 10, Height: 10}, floor))
	assert.Equal(t, properties.Extent{Width: 800, Height: 320}, Clamp(properties.Extent{Width: 800, Height: 1}, floor))
}

func TestHeadlessReplaysEvents(t *testing.T) {
	h := NewHeadless(properties.WindowSettings{Extent: properties.Extent{Width: 640, Height: 480}})
	assert.True(t, h.Focused())
	assert.Equal(t, uint32(640), h.Extent().Width)

	h.Post(
		Event{Kind: EventResize, Extent: properties.Extent{Width: 100, Height: 50}},
		Event{Kind: EventFocus, Focused: false},
		Event{Kind: EventKey, Key: spi.InputEvent{Key: 'a', Name: "a"}},
	)
	s := &sink{}
	h.ProcessEvents(s)
	assert.Equal(t, []properties.Extent{{Width: 100, Height: 50}}, s.resizes)
	assert.Equal(t, []bool{false}, s.focus)
	assert.Equal(t, []string{"a"}, s.keys)
	assert.False(t, h.Focused())

	h.ProcessEvents(s)
	assert.Len(t, s.keys, 1)

	h.Post(Event{Kind: EventClose})
	assert.False(t, h.ShouldClose())
	h.ProcessEvents(s)
	assert.True(t, h.ShouldClose())

	h.Present(spi.Frame{Lines: []string{"x"}})
	f, n := h.LastFrame()
	assert.Equal(t, uint64(1), n)
	assert.Equal(t, "x", f.String())

	h.Release()
	assert.True(t, h.Released())
}

func TestOpenHeadlessMode(t *testing.T) {
	w, err := Open(properties.WindowSettings{Mode: properties.WindowHeadless})
	require.NoError(t, err)
	_, ok := w.(*Headless)
	assert.True(t, ok)
}

func simTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(properties.WindowSettings{Title: "Harness"}, screen)
	require.NoError(t, err)
	screen.SetSize(80, 25)
	t.Cleanup(term.Release)
	return term, screen
}

func screenText(screen tcell.SimulationScreen) []string {
	cells, w, h := screen.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			r := cells[y*w+x].Runes
			if len(r) == 0 {
				b.WriteRune(' ')
			} else {
				b.WriteRune(r[0])
			}
		}
		rows[y] = strings.TrimRight(b.String(), " ")
	}
	return rows
}

func TestTerminalKeysAndQuit(t *testing.T) {
	term, screen := simTerminal(t)
	s := &sink{}

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	term.ProcessEvents(s)
	assert.Equal(t, []string{"space", "x"}, s.keys)
	assert.False(t, term.ShouldClose())

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	term.ProcessEvents(s)
	assert.True(t, term.ShouldClose())
}

func TestTerminalResizeReportsExtent(t *testing.T) {
	term, screen := simTerminal(t)
	screen.SetSize(100, 30)
	require.NoError(t, screen.PostEvent(tcell.NewEventResize(100, 30)))

	s := &sink{}
	term.ProcessEvents(s)
	require.Len(t, s.resizes, 1)
	assert.Equal(t, uint32(100*spi.CellWidth), s.resizes[0].Width)
	assert.Equal(t, uint32((30-reservedRows-logRows)*spi.CellHeight), s.resizes[0].Height)
}

func TestTerminalPresentsFrameAndLogs(t *testing.T) {
	logx.Configure("info")
	term, screen := simTerminal(t)

	logx.Log.Info().Msg("inside-the-window")
	term.Present(spi.Frame{Lines: []string{"hello frame"}})

	rows := screenText(screen)
	assert.True(t, strings.HasPrefix(rows[0], " Harness"))
	assert.Equal(t, "hello frame", rows[1])
	assert.Contains(t, strings.Join(rows[len(rows)-logRows:], "\n"), "inside-the-window")
}
