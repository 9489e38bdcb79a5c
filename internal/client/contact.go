package client

import (
	"context"
	"sync"

	"github.com/folio/internal/blogsync"
)

// ContactForm keeps the entered values until a submission succeeds.
type ContactForm struct {
	syncer *blogsync.Synchronizer

	mu     sync.Mutex
	fields blogsync.ContactInput
}

// NewContactForm returns an empty form.
func NewContactForm(s *blogsync.Synchronizer) *ContactForm {
	return &ContactForm{syncer: s}
}

// SetName sets the name field.
func (f *ContactForm) SetName(v string) { f.set(func(in *blogsync.ContactInput) { in.Name = v }) }

// SetEmail sets the email field.
func (f *ContactForm) SetEmail(v string) { f.set(func(in *blogsync.ContactInput) { in.Email = v }) }

// SetMessage sets the message field.
func (f *ContactForm) SetMessage(v string) { f.set(func(in *blogsync.ContactInput) { in.Message = v }) }

// Values returns the current field values.
func (f *ContactForm) Values() blogsync.ContactInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Submit sends the form. The fields are cleared on success and kept otherwise.
func (f *ContactForm) Submit(ctx context.Context) error {
	values := f.Values()
	if err := f.syncer.SubmitContact(ctx, values); err != nil {
		return err
	}

	f.mu.Lock()
	f.fields = blogsync.ContactInput{}
	f.mu.Unlock()
	return nil
}

func (f *ContactForm) set(update func(*blogsync.ContactInput)) {
	f.mu.Lock()
	update(&f.fields)
	f.mu.Unlock()
}
