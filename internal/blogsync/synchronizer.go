// Package blogsync keeps the client's view of the blog in step with the backend actor.
package blogsync

import (
	"context"
	"strings"

	"github.com/folio/internal/actor"
	"github.com/folio/internal/category"
	"go.uber.org/zap"
)

// Notification texts shown after a mutation settles.
const (
	MsgPostCreated      = "Post published!"
	MsgPostCreateFailed = "Failed to publish post. Please try again."
	MsgPostDeleted      = "Post deleted."
	MsgPostDeleteFailed = "Failed to delete post. Please try again."
	MsgContactSent      = "Message sent! I'll get back to you soon."
	MsgContactFailed    = "Something went wrong. Please try again."
)

// Source returns the connected actor, or nil while not connected.
// *actor.Handle satisfies it.
type Source interface {
	Current() actor.Actor
}

// Notifier surfaces the outcome of a mutation to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// PostDraft is the input of CreatePost.
type PostDraft struct {
	Title    string
	Content  string
	Excerpt  string
	Category string
}

// Trimmed returns the draft with surrounding whitespace removed from every field.
func (d PostDraft) Trimmed() PostDraft {
	return PostDraft{
		Title:    strings.TrimSpace(d.Title),
		Content:  strings.TrimSpace(d.Content),
		Excerpt:  strings.TrimSpace(d.Excerpt),
		Category: strings.TrimSpace(d.Category),
	}
}

// Validate reports every empty field and an unknown category.
func (d PostDraft) Validate() error {
	t := d.Trimmed()
	var fields []string
	if t.Title == "" {
		fields = append(fields, "title")
	}
	if t.Content == "" {
		fields = append(fields, "content")
	}
	if t.Excerpt == "" {
		fields = append(fields, "excerpt")
	}
	if !category.Valid(t.Category) {
		fields = append(fields, "category")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ContactInput is the input of SubmitContact.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Validate reports every field that is empty after trimming.
func (in ContactInput) Validate() error {
	var fields []string
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, "email")
	}
	if strings.TrimSpace(in.Message) == "" {
		fields = append(fields, "message")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Synchronizer mediates every read and write of posts and contact messages.
type Synchronizer struct {
	source Source
	notify Notifier
	cell   *PostsCell
	logger *zap.Logger
}

// Option customises a Synchronizer.
type Option func(*Synchronizer)

// WithLogger logs failed actor calls.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCell shares an existing posts cell.
func WithCell(cell *PostsCell) Option {
	return func(s *Synchronizer) {
		if cell != nil {
			s.cell = cell
		}
	}
}

// New returns a Synchronizer reading the actor from source.
func New(source Source, notifier Notifier, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		source: source,
		notify: notifier,
		cell:   &PostsCell{},
		logger: zap.NewNop(),
	}
	if s.notify == nil {
		s.notify = nopNotifier{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cell exposes the shared posts cache.
func (s *Synchronizer) Cell() *PostsCell {
	return s.cell
}

// ListPosts returns every post. Before the actor is connected it returns an
// empty slice and caches nothing.
func (s *Synchronizer) ListPosts(ctx context.Context) ([]actor.BlogPost, error) {
	if posts, ok := s.cell.Peek(); ok {
		return posts, nil
	}

	a := s.source.Current()
	if a == nil {
		return []actor.BlogPost{}, nil
	}

	posts, err := s.cell.Load(ctx, a.GetAllPosts)
	if err != nil {
		s.logger.Warn("fetch posts", zap.Error(err))
		return nil, remoteError("list posts", err)
	}
	return posts, nil
}

// Post returns the post with id. A post already in the cached list is served
// without a round trip; otherwise the actor is asked directly, which lets a
// client open a post it has never listed.
func (s *Synchronizer) Post(ctx context.Context, id uint64) (actor.BlogPost, error) {
	if posts, ok := s.cell.Peek(); ok {
		for _, p := range posts {
			if p.ID == id {
				return p, nil
			}
		}
	}

	a := s.source.Current()
	if a == nil {
		return actor.BlogPost{}, ErrNotConnected
	}

	post, err := a.GetPostByID(ctx, id)
	if err != nil {
		s.logger.Warn("fetch post", zap.Uint64("id", id), zap.Error(err))
		return actor.BlogPost{}, remoteError("get post", err)
	}
	if post == nil {
		return actor.BlogPost{}, ErrPostNotFound
	}
	return *post, nil
}

// CreatePost validates the draft, publishes it with a single actor call and
// invalidates the posts cache on success.
func (s *Synchronizer) CreatePost(ctx context.Context, draft PostDraft) (uint64, error) {
	if err := draft.Validate(); err != nil {
		return 0, err
	}

	a := s.source.Current()
	if a == nil {
		s.notify.Error(MsgPostCreateFailed)
		return 0, ErrNotConnected
	}

	d := draft.Trimmed()
	id, err := a.CreatePost(ctx, d.Title, d.Content, d.Excerpt, d.Category)
	if err != nil {
		s.logger.Warn("create post", zap.Error(err))
		s.notify.Error(MsgPostCreateFailed)
		return 0, remoteError("create post", err)
	}

	s.cell.Invalidate()
	s.notify.Success(MsgPostCreated)
	return id, nil
}

// DeletePost removes a post and invalidates the posts cache on success.
// The returned bool is the actor's answer to whether the post existed.
func (s *Synchronizer) DeletePost(ctx context.Context, id uint64) (bool, error) {
	a := s.source.Current()
	if a == nil {
		s.notify.Error(MsgPostDeleteFailed)
		return false, ErrNotConnected
	}

	existed, err := a.DeletePost(ctx, id)
	if err != nil {
		s.logger.Warn("delete post", zap.Uint64("id", id), zap.Error(err))
		s.notify.Error(MsgPostDeleteFailed)
		return false, remoteError("delete post", err)
	}

	s.cell.Invalidate()
	s.notify.Success(MsgPostDeleted)
	return existed, nil
}

// SubmitContact validates and sends a contact message.
func (s *Synchronizer) SubmitContact(ctx context.Context, in ContactInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	a := s.source.Current()
	if a == nil {
		s.notify.Error(MsgContactFailed)
		return ErrNotConnected
	}

	err := a.SubmitContactMessage(ctx,
		strings.TrimSpace(in.Name),
		strings.TrimSpace(in.Email),
		strings.TrimSpace(in.Message),
	)
	if err != nil {
		s.logger.Warn("submit contact message", zap.Error(err))
		s.notify.Error(MsgContactFailed)
		return remoteError("submit contact message", err)
	}

	s.notify.Success(MsgContactSent)
	return nil
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
