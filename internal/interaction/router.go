// Package interaction classifies raw pointer input into clicks, double
// clicks and drags, and dispatches them to the editor. Classification
// is pure so the thresholds can be tested without a window system.
package interaction

import "time"

// Kind is the classification of a completed press/release pair.
type Kind int

const (
	// KindNone means the release did not produce an actionable event.
	KindNone Kind = iota
	// KindSingleClick is a press/release with negligible movement.
	KindSingleClick
	// KindDoubleClick is a second click inside the double-click window.
	KindDoubleClick
	// KindDrag is a press/release whose movement exceeded the drag
	// threshold; drags are camera work and are ignored entirely.
	KindDrag
)

// Event is a classified pointer event at a screen position.
type Event struct {
	Kind Kind
	X, Y float64
}

const (
	defaultDoubleClickWindow = 350 * time.Millisecond
	// Less than 5 pixels moved counts as a click, same tolerance the
	// camera orbit uses.
	defaultDragThreshold = 5.0
)

// Classifier turns mouse down/up pairs into Events.
type Classifier struct {
	doubleClickWindow time.Duration
	dragThreshold     float64

	pressed      bool
	downX, downY float64
	moved        bool

	lastClickAt   time.Time
	haveLastClick bool
}

// NewClassifier creates a classifier with the default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		doubleClickWindow: defaultDoubleClickWindow,
		dragThreshold:     defaultDragThreshold,
	}
}

// MouseDown records the press position.
func (c *Classifier) MouseDown(x, y float64, at time.Time) {
	c.pressed = true
	c.downX, c.downY = x, y
	c.moved = false
}

// MouseMove tracks movement while pressed; movement beyond the drag
// threshold poisons the pending click.
func (c *Classifier) MouseMove(x, y float64) {
	if !c.pressed {
		return
	}
	dx := x - c.downX
	dy := y - c.downY
	if dx*dx+dy*dy > c.dragThreshold*c.dragThreshold {
		c.moved = true
	}
}

// MouseUp classifies the completed press/release pair.
func (c *Classifier) MouseUp(x, y float64, at time.Time) Event {
	if !c.pressed {
		return Event{Kind: KindNone, X: x, Y: y}
	}
	c.pressed = false

	dx := x - c.downX
	dy := y - c.downY
	if c.moved || dx*dx+dy*dy > c.dragThreshold*c.dragThreshold {
		c.haveLastClick = false
		return Event{Kind: KindDrag, X: x, Y: y}
	}

	if c.haveLastClick && at.Sub(c.lastClickAt) <= c.doubleClickWindow {
		// Consume the pair so a third click starts over.
		c.haveLastClick = false
		return Event{Kind: KindDoubleClick, X: x, Y: y}
	}

	c.lastClickAt = at
	c.haveLastClick = true
	return Event{Kind: KindSingleClick, X: x, Y: y}
}

// Handlers receive dispatched events. Nil handlers are skipped.
type Handlers struct {
	OnSingleClick func(x, y float64)
	OnDoubleClick func(x, y float64)
	// OnMove fires for pointer movement without a pressed button,
	// at most once per Router.MouseMove call; the drawing session
	// applies its own per-frame throttling on top.
	OnMove func(x, y float64)
}

// Router feeds raw pointer input through a Classifier and dispatches
// the result. Drags are dropped here and never reach a handler.
type Router struct {
	classifier *Classifier
	handlers   Handlers
}

// NewRouter creates a router with default classification thresholds.
func NewRouter(handlers Handlers) *Router {
	return &Router{
		classifier: NewClassifier(),
		handlers:   handlers,
	}
}

// MouseDown forwards a press.
func (r *Router) MouseDown(x, y float64, at time.Time) {
	r.classifier.MouseDown(x, y, at)
}

// MouseMove forwards movement. Without a pressed button it feeds the
// hover/preview path; with one it only informs drag detection.
func (r *Router) MouseMove(x, y float64, pressed bool) {
	if pressed {
		r.classifier.MouseMove(x, y)
		return
	}
	if r.handlers.OnMove != nil {
		r.handlers.OnMove(x, y)
	}
}

// MouseUp classifies the release and dispatches it.
func (r *Router) MouseUp(x, y float64, at time.Time) Event {
	ev := r.classifier.MouseUp(x, y, at)
	switch ev.Kind {
	case KindSingleClick:
		if r.handlers.OnSingleClick != nil {
			r.handlers.OnSingleClick(ev.X, ev.Y)
		}
	case KindDoubleClick:
		if r.handlers.OnDoubleClick != nil {
			r.handlers.OnDoubleClick(ev.X, ev.Y)
		}
	}
	return ev
}
