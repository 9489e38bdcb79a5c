// Package local serves the actor contract in-process from the backend
// services. It is the only actor implementation that touches the database.
package local

import (
	"context"
	"errors"
	"math"

	"github.com/folio/internal/actor"
	"github.com/folio/internal/service"
)

// Backend implements actor.Actor on top of the post and contact services.
type Backend struct {
	posts    *service.PostService
	messages *service.ContactService
}

// New wraps the given services.
func New(posts *service.PostService, messages *service.ContactService) *Backend {
	return &Backend{posts: posts, messages: messages}
}

var _ actor.Actor = (*Backend)(nil)

func (b *Backend) CreatePost(ctx context.Context, title, content, excerpt, category string) (uint64, error) {
	post, err := b.posts.Create(ctx, service.PostInput{
		Title:    title,
		Content:  content,
		Excerpt:  excerpt,
		Category: category,
	})
	if err != nil {
		return 0, err
	}
	return uint64(post.ID), nil
}

func (b *Backend) DeletePost(ctx context.Context, id uint64) (bool, error) {
	if id > math.MaxUint32 {
		return false, nil
	}
	return b.posts.Delete(ctx, uint(id))
}

func (b *Backend) GetAllPosts(ctx context.Context) ([]actor.BlogPost, error) {
	posts, err := b.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return PostsFromDB(posts), nil
}

func (b *Backend) GetPostByID(ctx context.Context, id uint64) (*actor.BlogPost, error) {
	if id > math.MaxUint32 {
		return nil, nil
	}
	post, err := b.posts.Get(ctx, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return nil, nil
		}
		return nil, err
	}
	wire := PostFromDB(*post)
	return &wire, nil
}

func (b *Backend) SubmitContactMessage(ctx context.Context, name, email, message string) error {
	_, err := b.messages.Submit(ctx, service.MessageInput{Name: name, Email: email, Message: message})
	return err
}

func (b *Backend) GetAllMessages(ctx context.Context) ([]actor.ContactMessage, error) {
	items, err := b.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	return MessagesFromDB(items), nil
}
