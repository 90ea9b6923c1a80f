package apps

import (
	"github.com/gaspardpetit/harness/sdk/spi"
)

// bounceVariant is one configuration of the Bounce app.
type bounceVariant struct {
	name  string
	speed float64 // cells per second
	ball  rune
}

var bounceVariants = []bounceVariant{
	{name: "slow", speed: 8, ball: 'o'},
	{name: "fast", speed: 24, ball: '@'},
}

// Bounce moves a ball around the frame. It exposes two configurations and
// reverses direction on space.
type Bounce struct {
	cols, rows int
	x, y       float64
	vx, vy     float64
	variant    int
	config     *Variants
}

func NewBounce() spi.Application {
	b := &Bounce{cols: 60, rows: 20, vx: 1, vy: 1}
	b.config = NewVariants(len(bounceVariants), func(i int) { b.variant = i })
	return b
}

func (b *Bounce) Name() string { return "Bounce" }

func (b *Bounce) Prepare(spi.Host) error {
	b.x, b.y = 1, 1
	return nil
}

func (b *Bounce) Update(dt float64) error {
	v := bounceVariants[b.variant]
	b.x += b.vx * v.speed * dt
	b.y += b.vy * v.speed * dt / 2
	maxX, maxY := float64(b.cols-1), float64(b.rows-1)
	if b.x < 0 {
		b.x, b.vx = -b.x, -b.vx
	}
	if b.x > maxX {
		b.x, b.vx = 2*maxX-b.x, -b.vx
	}
	if b.y < 0 {
		b.y, b.vy = -b.y, -b.vy
	}
	if b.y > maxY {
		b.y, b.vy = 2*maxY-b.y, -b.vy
	}
	b.x = clamp(b.x, 0, maxX)
	b.y = clamp(b.y, 0, maxY)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (b *Bounce) Resize(width, height uint32) error {
	b.cols, b.rows = GridSize(width, height)
	b.x = clamp(b.x, 0, float64(b.cols-1))
	b.y = clamp(b.y, 0, float64(b.rows-1))
	return nil
}

func (b *Bounce) Input(ev spi.InputEvent) {
	if ev.Key == ' ' {
		b.vx, b.vy = -b.vx, -b.vy
	}
}

func (b *Bounce) Configuration() spi.Configuration { return b.config }

// Variant returns the name of the active configuration.
func (b *Bounce) Variant() string { return bounceVariants[b.variant].name }

func (b *Bounce) Render() spi.Frame {
	g := newGrid(b.cols, b.rows)
	g.text(0, 0, bounceVariants[b.variant].name)
	g.set(int(b.x+0.5), int(b.y+0.5), bounceVariants[b.variant].ball)
	return g.frame()
}

func (b *Bounce) Finish() {}
