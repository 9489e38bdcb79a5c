package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/folio/internal/actor"
	"github.com/folio/internal/blogsync"
	"github.com/folio/internal/category"
)

// ErrAdminRequired is returned by admin-only actions while admin mode is off.
var ErrAdminRequired = errors.New("admin mode is off")

// AdminFlag is the read side of admin.State.
type AdminFlag interface {
	Enabled() bool
}

// BlogSection is the view state of the blog: the list, the open post and the
// new-post form.
type BlogSection struct {
	syncer *blogsync.Synchronizer
	admin  AdminFlag

	mu       sync.Mutex
	selected *actor.BlogPost
	formOpen bool
}

// NewBlogSection returns a section showing the list.
func NewBlogSection(s *blogsync.Synchronizer, flag AdminFlag) *BlogSection {
	return &BlogSection{syncer: s, admin: flag}
}

// Posts lists every post.
func (b *BlogSection) Posts(ctx context.Context) ([]actor.BlogPost, error) {
	return b.syncer.ListPosts(ctx)
}

// Open shows the post with id in the detail view.
func (b *BlogSection) Open(ctx context.Context, id uint64) (actor.BlogPost, error) {
	post, err := b.syncer.Post(ctx, id)
	if err != nil {
		return actor.BlogPost{}, err
	}
	b.mu.Lock()
	b.selected = &post
	b.mu.Unlock()
	return post, nil
}

// Back returns to the list.
func (b *BlogSection) Back() {
	b.mu.Lock()
	b.selected = nil
	b.mu.Unlock()
}

// Selected returns the post open in the detail view.
func (b *BlogSection) Selected() (actor.BlogPost, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == nil {
		return actor.BlogPost{}, false
	}
	return *b.selected, true
}

// FormOpen reports whether the new-post form is shown.
func (b *BlogSection) FormOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.formOpen
}

// ToggleForm shows or hides the new-post form. It is only offered in admin
// mode and while no post is open.
func (b *BlogSection) ToggleForm() error {
	if !b.admin.Enabled() {
		return ErrAdminRequired
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected != nil {
		return errors.New("close the open post first")
	}
	b.formOpen = !b.formOpen
	return nil
}

// Publish creates a post and closes the form once the backend confirms it.
func (b *BlogSection) Publish(ctx context.Context, draft blogsync.PostDraft) (uint64, error) {
	if !b.admin.Enabled() {
		return 0, ErrAdminRequired
	}
	if draft.Category == "" {
		draft.Category = category.Default
	}

	id, err := b.syncer.CreatePost(ctx, draft)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	b.formOpen = false
	b.mu.Unlock()
	return id, nil
}

// Delete removes a post. If it is the one open in the detail view, the view
// returns to the list after the delete succeeds; on failure it stays open.
func (b *BlogSection) Delete(ctx context.Context, id uint64) error {
	if !b.admin.Enabled() {
		return ErrAdminRequired
	}

	if _, err := b.syncer.DeletePost(ctx, id); err != nil {
		return err
	}

	b.mu.Lock()
	if b.selected != nil && b.selected.ID == id {
		b.selected = nil
	}
	b.mu.Unlock()
	return nil
}

// Paragraphs splits post content on blank lines, dropping empty pieces.
func Paragraphs(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	parts := strings.Split(normalized, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
