// Package client holds the state of one running client: the admin flag, the
// blog section and the contact form. Nothing here is persisted.
package client

import (
	"github.com/folio/internal/admin"
	"github.com/folio/internal/blogsync"
)

// Session is the application state threaded through a client run.
type Session struct {
	Admin   *admin.Controller
	Blog    *BlogSection
	Contact *ContactForm
	Sync    *blogsync.Synchronizer
}

// Options configures NewSession. Clock and Scheduler may be nil.
type Options struct {
	Source    blogsync.Source
	Notifier  blogsync.Notifier
	Viewport  admin.Viewport
	Clock     admin.Clock
	Scheduler admin.Scheduler
	SyncOpts  []blogsync.Option
}

// NewSession starts a session with admin mode off and empty click history.
func NewSession(opts Options) *Session {
	state := &admin.State{}
	controller := admin.NewController(
		state,
		admin.NewDetector(admin.WithClock(opts.Clock)),
		opts.Viewport,
		opts.Scheduler,
	)
	synchronizer := blogsync.New(opts.Source, opts.Notifier, opts.SyncOpts...)

	return &Session{
		Admin:   controller,
		Blog:    NewBlogSection(synchronizer, state),
		Contact: NewContactForm(synchronizer),
		Sync:    synchronizer,
	}
}

// AdminMode reports whether admin mode is on.
func (s *Session) AdminMode() bool {
	return s.Admin.State().Enabled()
}
