// Package actor defines the backend collaborator contract shared by the
// server handlers and every client, together with its HTTP implementation.
// The in-process implementation lives in actor/local.
package actor

import (
	"context"
	"time"
)

// BlogPost is the wire form of a post. CreatedAt is nanoseconds since the Unix epoch.
type BlogPost struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"createdAt"`
}

// Created returns CreatedAt as a time.Time.
func (p BlogPost) Created() time.Time {
	return time.Unix(0, p.CreatedAt)
}

// ContactMessage is the wire form of a contact form submission.
type ContactMessage struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// Actor is the backend collaborator. GetPostByID returns (nil, nil) when the post does not exist.
type Actor interface {
	CreatePost(ctx context.Context, title, content, excerpt, category string) (uint64, error)
	DeletePost(ctx context.Context, id uint64) (bool, error)
	GetAllPosts(ctx context.Context) ([]BlogPost, error)
	GetPostByID(ctx context.Context, id uint64) (*BlogPost, error)
	SubmitContactMessage(ctx context.Context, name, email, message string) error
	GetAllMessages(ctx context.Context) ([]ContactMessage, error)
}
