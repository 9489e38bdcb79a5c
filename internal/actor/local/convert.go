package local

import (
	"github.com/folio/internal/actor"
	"github.com/folio/internal/db"
)

// PostFromDB converts a stored post to its wire form.
func PostFromDB(p db.Post) actor.BlogPost {
	return actor.BlogPost{
		ID:        uint64(p.ID),
		Title:     p.Title,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Category:  p.Category,
		CreatedAt: p.CreatedAt.UnixNano(),
	}
}

// PostsFromDB converts a slice of stored posts, never returning nil.
func PostsFromDB(posts []db.Post) []actor.BlogPost {
	out := make([]actor.BlogPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostFromDB(p))
	}
	return out
}

// MessageFromDB converts a stored contact message to its wire form.
func MessageFromDB(m db.ContactMessage) actor.ContactMessage {
	return actor.ContactMessage{
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt.UnixNano(),
	}
}

// MessagesFromDB converts a slice of stored messages, never returning nil.
func MessagesFromDB(items []db.ContactMessage) []actor.ContactMessage {
	out := make([]actor.ContactMessage, 0, len(items))
	for _, m := range items {
		out = append(out, MessageFromDB(m))
	}
	return out
}
