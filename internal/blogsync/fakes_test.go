package blogsync

import (
	"context"
	"sync"

	"github.com/folio/internal/actor"
)

type createCall struct {
	Title, Content, Excerpt, Category string
}

type fakeActor struct {
	mu          sync.Mutex
	posts       []actor.BlogPost
	nextID      uint64
	err         error
	creates     []createCall
	deletes     []uint64
	listCalls   int
	getCalls    int
	contacts    []actor.ContactMessage
	listStarted chan struct{}
	listRelease chan struct{}
}

func (f *fakeActor) CreatePost(_ context.Context, title, content, excerpt, category string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, createCall{title, content, excerpt, category})
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.posts = append(f.posts, actor.BlogPost{ID: f.nextID, Title: title, Content: content, Excerpt: excerpt, Category: category})
	return f.nextID, nil
}

func (f *fakeActor) DeletePost(_ context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.err != nil {
		return false, f.err
	}
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeActor) GetAllPosts(context.Context) ([]actor.BlogPost, error) {
	if f.listStarted != nil {
		f.listStarted <- struct{}{}
		<-f.listRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]actor.BlogPost(nil), f.posts...), nil
}

func (f *fakeActor) GetPostByID(_ context.Context, id uint64) (*actor.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.posts {
		if p.ID == id {
			post := p
			return &post, nil
		}
	}
	return nil, nil
}

func (f *fakeActor) SubmitContactMessage(_ context.Context, name, email, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.contacts = append(f.contacts, actor.ContactMessage{Name: name, Email: email, Message: message})
	return nil
}

func (f *fakeActor) GetAllMessages(context.Context) ([]actor.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]actor.ContactMessage(nil), f.contacts...), nil
}

func (f *fakeActor) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates) + len(f.deletes) + f.listCalls + f.getCalls + len(f.contacts)
}

type staticSource struct {
	actor actor.Actor
}

func (s *staticSource) Current() actor.Actor { return s.actor }

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }

func (n *recordingNotifier) Error(msg string) { n.errors = append(n.errors, msg) }
