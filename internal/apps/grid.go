package apps

import (
	"strings"

	"github.com/gaspardpetit/harness/sdk/spi"
)

// GridSize converts an extent to frame columns and rows, at least 1x1.
func GridSize(width, height uint32) (cols, rows int) {
	cols = int(width / spi.CellWidth)
	rows = int(height / spi.CellHeight)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

type grid struct {
	cols, rows int
	cells      [][]rune
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for y := range g.cells {
		g.cells[y] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

func (g *grid) set(x, y int, r rune) {
	if x >= 0 && y >= 0 && x < g.cols && y < g.rows {
		g.cells[y][x] = r
	}
}

func (g *grid) text(x, y int, s string) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r)
	}
}

func (g *grid) frame() spi.Frame {
	lines := make([]string, g.rows)
	for y, row := range g.cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return spi.Frame{Width: g.cols, Height: g.rows, Lines: lines}
}
