package arena

import "time"

// Clock is the simulation clock. Every deadline in the World (bomb fuses,
// powerup cooldowns) is measured against it, never against wall-clock time.
// While the clock is paused, Advance does nothing, so a deadline that was in
// the future before a pause is still in the future after it.
type Clock struct {
	now    time.Duration
	paused bool
}

func (c *Clock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by dt, unless it is paused.
func (c *Clock) Advance(dt time.Duration) {
	if c.paused || dt <= 0 {
		return
	}
	c.now += dt
}

func (c *Clock) Pause() {
	c.paused = true
}

func (c *Clock) Resume() {
	c.paused = false
}

func (c *Clock) IsPaused() bool {
	return c.paused
}

// Reset rewinds the clock to zero. The paused state is kept.
func (c *Clock) Reset() {
	c.now = 0
}
