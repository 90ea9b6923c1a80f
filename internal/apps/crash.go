package apps

import (
	"fmt"

	"github.com/gaspardpetit/harness/sdk/spi"
)

// CrashAfter is the update on which Crash fails.
const CrashAfter = 3

// Crash exercises error recovery: its third update fails.
type Crash struct {
	updates int
}

func NewCrash() spi.Application { return &Crash{} }

func (c *Crash) Name() string { return "Crash" }

func (c *Crash) Prepare(spi.Host) error { return nil }

// Update counts real updates only; the zero-length priming tick is ignored.
func (c *Crash) Update(dt float64) error {
	if dt == 0 {
		return nil
	}
	c.updates++
	if c.updates >= CrashAfter {
		return fmt.Errorf("crash: simulated failure on update %d", c.updates)
	}
	return nil
}

func (c *Crash) Resize(uint32, uint32) error { return nil }

func (c *Crash) Finish() {}
