package editor

// Cooldown is a frame-based countdown. Activate restarts it; Tick is called
// once per update.
type Cooldown struct {
	Frames    int
	remaining int
}

func (c *Cooldown) Activate() { c.remaining = c.Frames }

func (c *Cooldown) Active() bool { return c.remaining > 0 }

func (c *Cooldown) Tick() {
	if c.remaining > 0 {
		c.remaining--
	}
}
