package carousel

// Trigger names the user action behind an interaction.
type Trigger string

const (
	TriggerPrev      Trigger = "prev"
	TriggerNext      Trigger = "next"
	TriggerThumbnail Trigger = "thumbnail"
	TriggerDrag      Trigger = "drag"
)

// Metrics receives carousel events. Calls arrive on the carousel's owner
// loop, one carousel at a time.
type Metrics interface {
	// TransitionRequested is called for every index change handed to the
	// transition coordinator, including retargets of an in-flight overlay.
	TransitionRequested(mode TransitionMode)
	// Committed is called once per committed index change.
	Committed(mode TransitionMode)
	// AutoplayTick is called for every autoplay advance.
	AutoplayTick()
	// Interaction is called for every accepted user trigger.
	Interaction(trigger Trigger)
}

// meteredTransitioner reports requests before delegating.
type meteredTransitioner struct {
	inner   Transitioner
	mode    TransitionMode
	metrics Metrics
}

func (m meteredTransitioner) Begin(c *IndexController, target int) {
	m.metrics.TransitionRequested(m.mode)
	m.inner.Begin(c, target)
}
