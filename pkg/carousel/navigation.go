package carousel

import "math"

// NavigationInput adapts user triggers to the controller and scheduler.
// Every accepted trigger signals the interaction before it requests the
// index change, in the same call, so an autoplay tick can never compete with
// a manual navigation.
type NavigationInput struct {
	index     *IndexController
	scheduler *AutoScrollScheduler
	mode      TransitionMode
	observe   func(Trigger)
}

// NewNavigationInput creates an input adapter. scheduler may be nil when
// autoplay is never used.
func NewNavigationInput(index *IndexController, scheduler *AutoScrollScheduler, mode TransitionMode) *NavigationInput {
	return &NavigationInput{index: index, scheduler: scheduler, mode: mode}
}

// OnInteraction registers a callback for every accepted trigger. It runs
// after the scheduler has been told about the interaction.
func (n *NavigationInput) OnInteraction(fn func(Trigger)) { n.observe = fn }

// Prev handles a press of the previous control.
func (n *NavigationInput) Prev() int { return n.step(-1) }

// Next handles a press of the next control.
func (n *NavigationInput) Next() int { return n.step(+1) }

func (n *NavigationInput) step(direction int) int {
	if n.index.Len() <= 1 {
		return n.index.State().CurrentIndex
	}
	trigger := TriggerNext
	if direction < 0 {
		trigger = TriggerPrev
	}
	n.interaction(trigger)
	return n.index.Advance(direction)
}

// SelectThumbnail handles a tap on the thumbnail at index. Out-of-range
// taps are ignored entirely.
func (n *NavigationInput) SelectThumbnail(index int) bool {
	return n.selectIndex(index, TriggerThumbnail)
}

func (n *NavigationInput) selectIndex(index int, trigger Trigger) bool {
	if index < 0 || index >= n.index.Len() {
		return false
	}
	n.interaction(trigger)
	return n.index.JumpTo(index)
}

// DragEnd handles the end of a drag or scroll gesture in ContinuousScroll
// mode. offset is the horizontal scroll offset and pageWidth the width of
// one slide, in the same units. The nearest page is selected; offsets past
// either end resolve to the first or last slide. It reports whether a
// transition was requested.
func (n *NavigationInput) DragEnd(offset, pageWidth float64) bool {
	if n.mode != ContinuousScroll || pageWidth <= 0 || n.index.Len() == 0 {
		return false
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return false
	}
	return n.selectIndex(NearestPage(offset, pageWidth, n.index.Len()), TriggerDrag)
}

// NearestPage resolves a scroll offset to the closest page index in
// [0, count). It returns NoIndex when count or pageWidth is not positive.
func NearestPage(offset, pageWidth float64, count int) int {
	if count <= 0 || pageWidth <= 0 {
		return NoIndex
	}
	page := int(math.Round(offset / pageWidth))
	if page < 0 {
		return 0
	}
	if page >= count {
		return count - 1
	}
	return page
}

func (n *NavigationInput) interaction(trigger Trigger) {
	if n.scheduler != nil {
		n.scheduler.Interaction()
	}
	if n.observe != nil {
		n.observe(trigger)
	}
}
