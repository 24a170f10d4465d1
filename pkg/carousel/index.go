package carousel

// Transitioner applies a transition contract to an index change requested
// through an IndexController.
type Transitioner interface {
	Begin(c *IndexController, target int)
}

// IndexController owns the current and next index. It has no timers; a
// Transitioner decides when a requested index is committed.
//
// With a nil Transitioner every request commits immediately.
type IndexController struct {
	slides        Collection
	mode          TransitionMode
	current       int
	next          int
	transitioning bool

	transitions Transitioner
	onChange    func()
	onCommit    func(previous, current int)
}

// NewIndexController creates a controller positioned on the first slide.
func NewIndexController(slides Collection, mode TransitionMode, transitions Transitioner) *IndexController {
	return &IndexController{
		slides:      slides,
		mode:        mode,
		transitions: transitions,
	}
}

// OnChange registers a callback invoked after any state change, including
// a new in-flight target.
func (c *IndexController) OnChange(fn func()) { c.onChange = fn }

// OnCommit registers a callback invoked when a commit moves CurrentIndex.
func (c *IndexController) OnCommit(fn func(previous, current int)) { c.onCommit = fn }

// Len returns the number of slides.
func (c *IndexController) Len() int { return c.slides.Len() }

// State returns a snapshot of the navigation state.
func (c *IndexController) State() State {
	if c.slides.Len() == 0 {
		return State{CurrentIndex: NoIndex, NextIndex: NoIndex, Mode: c.mode, Empty: true}
	}
	return State{
		CurrentIndex:  c.current,
		NextIndex:     c.next,
		Mode:          c.mode,
		Transitioning: c.transitioning,
	}
}

// Advance moves one slide forward (direction > 0) or back (direction < 0),
// wrapping at either end. While a transition is in flight the step is taken
// from the pending target. It returns the requested index, or the current
// index when there is nothing to move to.
func (c *IndexController) Advance(direction int) int {
	n := c.slides.Len()
	if n == 0 {
		return NoIndex
	}
	if n == 1 || direction == 0 {
		return c.current
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	target := (c.destination() + step + n) % n
	c.RequestTransition(target)
	return target
}

// JumpTo requests a transition to index. Out-of-range indices are rejected,
// never clamped or wrapped. A jump to the slide already shown (or already
// pending) is also rejected. It reports whether a transition was requested.
func (c *IndexController) JumpTo(index int) bool {
	if index < 0 || index >= c.slides.Len() {
		return false
	}
	if index == c.destination() {
		return false
	}
	c.RequestTransition(index)
	return true
}

// RequestTransition hands target to the Transitioner. If a transition is
// already in flight the Transitioner replaces its target; requests never
// stack.
func (c *IndexController) RequestTransition(target int) {
	if target < 0 || target >= c.slides.Len() {
		return
	}
	if !c.transitioning && target == c.current {
		return
	}
	if c.transitions == nil {
		c.CommitTo(target)
		return
	}
	c.transitions.Begin(c, target)
}

// Retarget sets NextIndex. It marks the controller as transitioning unless
// target is already current.
func (c *IndexController) Retarget(target int) {
	if target < 0 || target >= c.slides.Len() {
		return
	}
	c.next = target
	c.transitioning = target != c.current
	c.changed()
}

// CommitTo sets NextIndex to target and commits it in one step, so no
// intermediate state reaches the change callback.
func (c *IndexController) CommitTo(target int) {
	if target < 0 || target >= c.slides.Len() {
		return
	}
	if target != c.current {
		c.transitioning = true
	}
	c.next = target
	c.Commit()
}

// Commit makes NextIndex the current index and clears the in-flight flag.
// It reads the controller's state when called, never a value captured when
// the transition was scheduled.
func (c *IndexController) Commit() {
	if c.slides.Len() == 0 {
		return
	}
	previous := c.current
	wasTransitioning := c.transitioning
	c.current = c.next
	c.transitioning = false
	if previous == c.current && !wasTransitioning {
		return
	}
	c.changed()
	if previous != c.current && c.onCommit != nil {
		c.onCommit(previous, c.current)
	}
}

// destination is where the controller is heading: the pending target while
// transitioning, otherwise the current index.
func (c *IndexController) destination() int {
	if c.transitioning {
		return c.next
	}
	return c.current
}

func (c *IndexController) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
