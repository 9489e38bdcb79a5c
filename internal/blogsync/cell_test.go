package blogsync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/folio/internal/actor"
)

func TestLoadCancelledLeaderDoesNotFailJoinedReader(t *testing.T) {
	var cell PostsCell
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]actor.BlogPost, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return samplePosts(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := cell.Load(leaderCtx, fetch)
		leaderErr <- err
	}()
	<-started

	cancel()
	if err := <-leaderErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the cancelled caller to get context.Canceled, got %v", err)
	}

	joined := make(chan []actor.BlogPost, 1)
	joinedErr := make(chan error, 1)
	go func() {
		posts, err := cell.Load(context.Background(), fetch)
		joined <- posts
		joinedErr <- err
	}()
	close(release)

	if err := <-joinedErr; err != nil {
		t.Fatalf("expected the joined reader to succeed, got %v", err)
	}
	if posts := <-joined; len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected one shared fetch, got %d", n)
	}
	if !cell.Valid() {
		t.Fatalf("expected the shared result to be cached")
	}
}

func TestLoadReturnsFetchError(t *testing.T) {
	var cell PostsCell
	boom := errors.New("boom")

	_, err := cell.Load(context.Background(), func(context.Context) ([]actor.BlogPost, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if cell.Valid() {
		t.Fatalf("a failed fetch must not be cached")
	}
}
