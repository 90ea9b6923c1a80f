package window

import (
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gaspardpetit/harness/internal/logx"
	"github.com/gaspardpetit/harness/sdk/properties"
	"github.com/gaspardpetit/harness/sdk/spi"
)

const (
	logRows      = 4
	vsyncPeriod  = time.Second / 60
	reservedRows = 1 // title bar
)

// Terminal draws frames on a tcell screen. While open it also receives the
// console log so log lines are drawn below the frame instead of over it.
type Terminal struct {
	mu        sync.Mutex
	screen    tcell.Screen
	title     string
	vsync     bool
	focused   bool
	closed    bool
	extent    properties.Extent
	logs      []string
	prevLog   io.Writer
	lastShown time.Time
}

var _ Window = (*Terminal)(nil)

// OpenTerminal initialises the process terminal.
func OpenTerminal(s properties.WindowSettings) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminal(s, screen)
}

// NewTerminal takes ownership of screen and initialises it.
func NewTerminal(s properties.WindowSettings, screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableFocus()
	screen.HideCursor()
	t := &Terminal{
		screen:  screen,
		title:   s.Title,
		vsync:   s.Vsync == properties.VsyncOn,
		focused: true,
	}
	t.extent = t.screenExtent()
	t.prevLog = logx.SetOutput(t)
	return t, nil
}

func (t *Terminal) screenExtent() properties.Extent {
	cols, rows := t.screen.Size()
	rows -= reservedRows + logRows
	if rows < 1 {
		rows = 1
	}
	return properties.Extent{Width: uint32(cols * spi.CellWidth), Height: uint32(rows * spi.CellHeight)}
}

func (t *Terminal) Extent() properties.Extent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.extent
}

// Resize records the logical extent; the terminal itself keeps its size and
// frames larger than the screen are cropped.
func (t *Terminal) Resize(e properties.Extent) properties.Extent {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.extent = e
	return e
}

func (t *Terminal) Focused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.focused
}

func (t *Terminal) ShouldClose() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// ProcessEvents drains pending terminal events without blocking.
func (t *Terminal) ProcessEvents(sink EventSink) {
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
			e := t.screenExtent()
			sink.Resize(e.Width, e.Height)
		case *tcell.EventFocus:
			t.mu.Lock()
			t.focused = ev.Focused
			t.mu.Unlock()
			sink.Focus(ev.Focused)
		case *tcell.EventKey:
			if isQuit(ev) {
				t.Close()
				continue
			}
			sink.Input(keyEvent(ev))
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func keyEvent(ev *tcell.EventKey) spi.InputEvent {
	in := spi.InputEvent{Name: ev.Name()}
	if ev.Key() == tcell.KeyRune {
		in.Key = ev.Rune()
		if in.Key == ' ' {
			in.Name = "space"
		} else {
			in.Name = string(in.Key)
		}
	}
	return in
}

// Present draws the title bar, the frame and the latest log lines.
func (t *Terminal) Present(frame spi.Frame) {
	t.mu.Lock()
	title := t.title
	logs := append([]string(nil), t.logs...)
	wait := time.Duration(0)
	if t.vsync && !t.lastShown.IsZero() {
		wait = vsyncPeriod - time.Since(t.lastShown)
	}
	t.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}

	cols, rows := t.screen.Size()
	t.screen.Clear()
	bar := tcell.StyleDefault.Reverse(true)
	drawLine(t.screen, 0, cols, padRight(" "+title, cols), bar)

	frameRows := rows - reservedRows - logRows
	for y := 0; y < frameRows && y < len(frame.Lines); y++ {
		drawLine(t.screen, reservedRows+y, cols, frame.Lines[y], tcell.StyleDefault)
	}
	dim := tcell.StyleDefault.Dim(true)
	for i, line := range logs {
		y := rows - logRows + i
		if y >= reservedRows {
			drawLine(t.screen, y, cols, line, dim)
		}
	}
	t.screen.Show()

	t.mu.Lock()
	t.lastShown = time.Now()
	t.mu.Unlock()
}

func drawLine(s tcell.Screen, y, cols int, text string, style tcell.Style) {
	x := 0
	for _, r := range text {
		if x >= cols {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// Write receives console log output and keeps the last few lines.
func (t *Terminal) Write(p []byte) (int, error) {
	text := ansi.ReplaceAllString(string(p), "")
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		t.logs = append(t.logs, line)
	}
	if len(t.logs) > logRows {
		t.logs = t.logs[len(t.logs)-logRows:]
	}
	return len(p), nil
}

// Release restores the console log destination and the terminal.
func (t *Terminal) Release() {
	logx.SetOutput(t.prevLog)
	t.screen.Fini()
}
