package admin

import "time"

const (
	// BlogSection is the section shown after admin mode turns on.
	BlogSection = "blog"
	// ActivationScrollDelay lets the admin banner render before scrolling.
	ActivationScrollDelay = 100 * time.Millisecond
)

// Viewport is the part of the UI the logo click moves.
type Viewport interface {
	ScrollToTop()
	ScrollTo(section string)
}

// Scheduler runs fn after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// Controller wires the logo click to the detector, the state and the viewport.
type Controller struct {
	state     *State
	detector  *Detector
	viewport  Viewport
	scheduler Scheduler
}

// NewController builds a Controller. A nil scheduler uses time.AfterFunc.
func NewController(state *State, detector *Detector, viewport Viewport, scheduler Scheduler) *Controller {
	if scheduler == nil {
		scheduler = timerScheduler{}
	}
	return &Controller{state: state, detector: detector, viewport: viewport, scheduler: scheduler}
}

// State returns the admin flag the controller toggles.
func (c *Controller) State() *State {
	return c.state
}

// LogoClick handles one click on the logo and reports whether admin mode changed.
// A click that does not complete the gesture scrolls to the top of the page.
func (c *Controller) LogoClick() bool {
	if !c.detector.Click() {
		if c.viewport != nil {
			c.viewport.ScrollToTop()
		}
		return false
	}

	if c.state.Toggle() && c.viewport != nil {
		c.scheduler.AfterFunc(ActivationScrollDelay, func() {
			c.viewport.ScrollTo(BlogSection)
		})
	}
	return true
}
