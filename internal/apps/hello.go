package apps

import (
	"fmt"

	"github.com/gaspardpetit/harness/sdk/spi"
)

// Hello prints a greeting with the frame count and elapsed time.
type Hello struct {
	host    spi.Host
	frames  uint64
	elapsed float64
	cols    int
	rows    int
	last    string
}

func NewHello() spi.Application { return &Hello{cols: 60, rows: 20} }

func (h *Hello) Name() string { return "Hello" }

func (h *Hello) Prepare(host spi.Host) error {
	h.host = host
	return nil
}

func (h *Hello) Update(dt float64) error {
	h.elapsed += dt
	h.frames++
	return nil
}

func (h *Hello) Resize(width, height uint32) error {
	h.cols, h.rows = GridSize(width, height)
	return nil
}

func (h *Hello) Input(ev spi.InputEvent) { h.last = ev.Name }

func (h *Hello) Render() spi.Frame {
	g := newGrid(h.cols, h.rows)
	g.text(1, 1, "Hello from the harness")
	g.text(1, 3, fmt.Sprintf("frame   %d", h.frames))
	g.text(1, 4, fmt.Sprintf("elapsed %.2fs", h.elapsed))
	if h.host != nil {
		g.text(1, 5, "run     "+h.host.RunID())
	}
	if h.last != "" {
		g.text(1, 6, "key     "+h.last)
	}
	g.text(1, h.rows-1, "esc or q to quit")
	return g.frame()
}

func (h *Hello) Finish() {}
