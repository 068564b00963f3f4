// Package navigation owns the active stage number.
package navigation

// Reaction is called synchronously after every transition with the new
// stage number.
type Reaction func(stage int)

// Controller is a stage state machine over 1..Count. Count is the terminal
// stage. It is not safe for concurrent use; the render thread owns it.
type Controller struct {
	current   int
	count     int
	reactions []Reaction
}

// New creates a controller over count stages starting at start. An
// out-of-range start falls back to stage 1.
func New(count, start int) *Controller {
	if count < 0 {
		count = 0
	}
	c := &Controller{current: 1, count: count}
	if start >= 1 && start <= count {
		c.current = start
	}
	return c
}

// Subscribe registers a reaction. Reactions run in registration order.
func (c *Controller) Subscribe(r Reaction) {
	c.reactions = append(c.reactions, r)
}

// Current returns the active stage number.
func (c *Controller) Current() int {
	return c.current
}

// Count returns the number of stages.
func (c *Controller) Count() int {
	return c.count
}

// IsTerminal reports whether the active stage is the last one.
func (c *Controller) IsTerminal() bool {
	return c.count > 0 && c.current == c.count
}

// Enabled reports whether there is anything to navigate.
func (c *Controller) Enabled() bool {
	return c.count > 0
}

// GoTo activates stage n and runs the reactions. Requests outside 1..Count
// and requests for the active stage are ignored; the result reports whether
// a transition happened.
func (c *Controller) GoTo(n int) bool {
	if n < 1 || n > c.count || n == c.current {
		return false
	}
	c.current = n
	for _, r := range c.reactions {
		r(n)
	}
	return true
}

// Next moves one stage forward. It is a no-op at the terminal stage.
func (c *Controller) Next() bool {
	return c.GoTo(c.current + 1)
}

// Prev moves one stage back. It is a no-op on the overview.
func (c *Controller) Prev() bool {
	return c.GoTo(c.current - 1)
}

// JumpToOverview returns to stage 1.
func (c *Controller) JumpToOverview() bool {
	return c.GoTo(1)
}

// SetCount replaces the stage count, for example after the stage list was
// reloaded. The active stage is kept when still in range and otherwise
// falls back to 1. Reactions are not run; the caller re-applies the stage.
func (c *Controller) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	c.count = count
	if c.current > count {
		c.current = 1
	}
}
