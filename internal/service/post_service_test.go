package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/folio/internal/cache"
	"github.com/folio/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

type memoryStore struct {
	mu          sync.Mutex
	values      map[string][]byte
	generations map[string]int64
	gets        int
	sets        int
	invalidates int
	beforeSet   func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}, generations: map[string]int64{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Generation(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generations[key], nil
}

func (m *memoryStore) SetIfGeneration(_ context.Context, key string, generation int64, value []byte, _ time.Duration) (bool, error) {
	if m.beforeSet != nil {
		m.beforeSet()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generations[key] != generation {
		return false, nil
	}
	m.sets++
	m.values[key] = value
	return true, nil
}

func (m *memoryStore) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidates++
	m.generations[key]++
	delete(m.values, key)
	return nil
}

func (m *memoryStore) cached(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

func validPostInput(title string) PostInput {
	return PostInput{
		Title:    title,
		Content:  "Paragraph one.\n\nParagraph two.",
		Excerpt:  "A summary",
		Category: "Lifestyle",
	}
}

func TestPostService_CreateTrimsAndStores(t *testing.T) {
	svc := NewPostService(setupServiceTestDB(t))
	ctx := context.Background()

	post, err := svc.Create(ctx, PostInput{
		Title:    "  My Post  ",
		Content:  "Paragraph one.\n\nParagraph two.\n",
		Excerpt:  " A summary ",
		Category: "Lifestyle",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if post.Title != "My Post" || post.Excerpt != "A summary" {
		t.Fatalf("expected trimmed fields, got %q / %q", post.Title, post.Excerpt)
	}
	if post.CreatedAt.IsZero() {
		t.Fatalf("expected creation time to be set")
	}

	got, err := svc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Content != "Paragraph one.\n\nParagraph two." {
		t.Fatalf("unexpected content %q", got.Content)
	}
}

func TestPostService_CreateRejectsInvalidInput(t *testing.T) {
	svc := NewPostService(setupServiceTestDB(t))

	tests := []struct {
		name  string
		input PostInput
	}{
		{name: "blank title", input: PostInput{Title: "   ", Content: "c", Excerpt: "e", Category: "Lifestyle"}},
		{name: "blank excerpt", input: PostInput{Title: "t", Content: "c", Excerpt: "", Category: "Lifestyle"}},
		{name: "blank content", input: PostInput{Title: "t", Content: "\n\n", Excerpt: "e", Category: "Lifestyle"}},
		{name: "unknown category", input: PostInput{Title: "t", Content: "c", Excerpt: "e", Category: "Travel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			if !errors.Is(err, ErrPostInvalidInput) {
				t.Fatalf("expected ErrPostInvalidInput, got %v", err)
			}
		})
	}
}

func TestPostService_ListAllInsertionOrder(t *testing.T) {
	svc := NewPostService(setupServiceTestDB(t))
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := svc.Create(ctx, validPostInput(title)); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	posts, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i, want := range []string{"first", "second", "third"} {
		if posts[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, posts[i].Title)
		}
	}
}

func TestPostService_DeleteReportsExistence(t *testing.T) {
	svc := NewPostService(setupServiceTestDB(t))
	ctx := context.Background()

	post, err := svc.Create(ctx, validPostInput("doomed"))
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	deleted, err := svc.Delete(ctx, post.ID)
	if err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if !deleted {
		t.Fatalf("expected first delete to report true")
	}

	deleted, err = svc.Delete(ctx, post.ID)
	if err != nil {
		t.Fatalf("delete post again: %v", err)
	}
	if deleted {
		t.Fatalf("expected second delete to report false")
	}

	if _, err := svc.Get(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_IDsAreNotReusedAfterDelete(t *testing.T) {
	svc := NewPostService(setupServiceTestDB(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, validPostInput("first"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete first: %v", err)
	}

	second, err := svc.Create(ctx, validPostInput("second"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("expected new id greater than %d, got %d", first.ID, second.ID)
	}
}

func TestPostService_CacheIsFilledAndInvalidated(t *testing.T) {
	store := newMemoryStore()
	svc := NewPostService(setupServiceTestDB(t), WithPostCache(store, time.Minute))
	ctx := context.Background()

	if _, err := svc.Create(ctx, validPostInput("cached")); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := svc.ListAll(ctx); err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if !store.cached(cache.PostListKey) {
		t.Fatalf("expected list to be cached")
	}

	posts, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list posts from cache: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "cached" {
		t.Fatalf("unexpected cached posts %+v", posts)
	}
	if store.sets != 1 {
		t.Fatalf("expected a single cache write, got %d", store.sets)
	}

	if _, err := svc.Delete(ctx, posts[0].ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if store.cached(cache.PostListKey) {
		t.Fatalf("expected delete to invalidate the cached list")
	}

	posts, err = svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list posts after delete: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(posts))
	}
}

func TestPostService_ListLoadedBeforeCreateIsNotCached(t *testing.T) {
	store := newMemoryStore()
	svc := NewPostService(setupServiceTestDB(t), WithPostCache(store, time.Minute))
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	store.beforeSet = func() {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	done := make(chan error, 1)
	go func() {
		posts, err := svc.ListAll(ctx)
		if err == nil && len(posts) != 0 {
			err = fmt.Errorf("expected the first load to see an empty table, got %d posts", len(posts))
		}
		done <- err
	}()

	<-entered
	if _, err := svc.Create(ctx, validPostInput("New")); err != nil {
		t.Fatalf("create post: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("list posts: %v", err)
	}

	if store.cached(cache.PostListKey) {
		t.Fatalf("expected the list loaded before the create to stay out of the cache")
	}
	posts, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list posts after create: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "New" {
		t.Fatalf("expected the created post after create, got %+v", posts)
	}
	if !store.cached(cache.PostListKey) {
		t.Fatalf("expected the fresh list to be cached")
	}
}
