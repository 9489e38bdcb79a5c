package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/folio/internal/actor"
	"github.com/folio/internal/blogsync"
	"github.com/folio/internal/client"
	"github.com/folio/internal/db"
	"github.com/folio/internal/handler"
	"github.com/folio/internal/router"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	n.successes = append(n.successes, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	n.errors = append(n.errors, msg)
	n.mu.Unlock()
}

type nopViewport struct{}

func (nopViewport) ScrollToTop()    {}
func (nopViewport) ScrollTo(string) {}

type inlineScheduler struct{}

func (inlineScheduler) AfterFunc(_ time.Duration, fn func()) { fn() }

var e2eSeq atomic.Int64

type e2eSuite struct {
	server   *httptest.Server
	handle   *actor.Handle
	session  *client.Session
	notifier *recordingNotifier
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", e2eSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	api := handler.NewAPI(service.NewPostService(gdb), service.NewContactService(gdb))
	srv := httptest.NewServer(router.SetupRouter(router.Options{API: api}))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	notifier := &recordingNotifier{}
	handle := actor.NewHandle()
	return &e2eSuite{
		server: srv,
		handle: handle,
		session: client.NewSession(client.Options{
			Source:    handle,
			Notifier:  notifier,
			Viewport:  nopViewport{},
			Scheduler: inlineScheduler{},
		}),
		notifier: notifier,
	}
}

func (s *e2eSuite) connect(t *testing.T) {
	t.Helper()
	if err := s.handle.Connect(context.Background(), actor.NewClient(s.server.URL)); err != nil {
		t.Fatalf("connect: %v", err)
	}
}

func (s *e2eSuite) enableAdmin(t *testing.T) {
	t.Helper()
	for i := 0; i < 5; i++ {
		s.session.Admin.LogoClick()
	}
	if !s.session.AdminMode() {
		t.Fatalf("expected admin mode after five rapid clicks")
	}
}

func TestE2EBlogLifecycle(t *testing.T) {
	s := newE2ESuite(t)
	ctx := context.Background()

	posts, err := s.session.Blog.Posts(ctx)
	if err != nil || len(posts) != 0 {
		t.Fatalf("expected empty list before connecting, got %v %v", posts, err)
	}

	s.connect(t)
	s.enableAdmin(t)

	if err := s.session.Blog.ToggleForm(); err != nil {
		t.Fatalf("open form: %v", err)
	}
	id, err := s.session.Blog.Publish(ctx, blogsync.PostDraft{
		Title:    "My Post",
		Excerpt:  "A summary",
		Content:  "Paragraph one.\n\nParagraph two.",
		Category: "Lifestyle",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if s.session.Blog.FormOpen() {
		t.Fatalf("expected form to close after publishing")
	}

	posts, err = s.session.Blog.Posts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != id || posts[0].Title != "My Post" {
		t.Fatalf("unexpected posts %+v", posts)
	}
	if got := client.Paragraphs(posts[0].Content); len(got) != 2 {
		t.Fatalf("expected two paragraphs, got %v", got)
	}

	if _, err := s.session.Blog.Open(ctx, id); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.session.Blog.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.session.Blog.Selected(); ok {
		t.Fatalf("expected detail view to close after delete")
	}

	posts, err = s.session.Blog.Posts(ctx)
	if err != nil || len(posts) != 0 {
		t.Fatalf("expected empty list after delete, got %v %v", posts, err)
	}

	if _, err := s.session.Blog.Open(ctx, id); !errors.Is(err, blogsync.ErrPostNotFound) {
		t.Fatalf("expected deleted post to be absent, got %v", err)
	}

	want := []string{blogsync.MsgPostCreated, blogsync.MsgPostDeleted}
	if fmt.Sprint(s.notifier.successes) != fmt.Sprint(want) {
		t.Fatalf("unexpected notifications %v", s.notifier.successes)
	}
}

func TestE2EDeepLinkOpensUnlistedPost(t *testing.T) {
	s := newE2ESuite(t)
	ctx := context.Background()
	s.connect(t)

	id, err := actor.NewClient(s.server.URL).CreatePost(ctx, "Direct", "Body", "Teaser", "Content")
	if err != nil {
		t.Fatalf("seed via client: %v", err)
	}

	post, err := s.session.Blog.Open(ctx, id)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if post.Title != "Direct" || post.Category != "Content" {
		t.Fatalf("unexpected post %+v", post)
	}
}

func TestE2EContactFlow(t *testing.T) {
	s := newE2ESuite(t)
	ctx := context.Background()
	s.connect(t)

	form := s.session.Contact
	form.SetName("Ana")
	form.SetEmail("ana@example.com")
	form.SetMessage("Hello there")
	if err := form.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if form.Values() != (blogsync.ContactInput{}) {
		t.Fatalf("expected form to clear after success, got %+v", form.Values())
	}

	messages, err := actor.NewClient(s.server.URL).GetAllMessages(ctx)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 1 || messages[0].Message != "Hello there" {
		t.Fatalf("unexpected messages %+v", messages)
	}
}

func TestE2EBackendFailureKeepsState(t *testing.T) {
	s := newE2ESuite(t)
	ctx := context.Background()
	s.connect(t)
	s.enableAdmin(t)

	id, err := s.session.Blog.Publish(ctx, blogsync.PostDraft{Title: "Keep", Excerpt: "x", Content: "y"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := s.session.Blog.Open(ctx, id); err != nil {
		t.Fatalf("open: %v", err)
	}

	s.server.Close()

	if err := s.session.Blog.Delete(ctx, id); !errors.Is(err, blogsync.ErrRemote) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if _, ok := s.session.Blog.Selected(); !ok {
		t.Fatalf("expected detail view to stay open after a failed delete")
	}

	form := s.session.Contact
	form.SetName("Ana")
	form.SetEmail("ana@example.com")
	form.SetMessage("Still there?")
	if err := form.Submit(ctx); err == nil {
		t.Fatalf("expected submit to fail")
	}
	if form.Values().Message != "Still there?" {
		t.Fatalf("expected values to be kept after failure")
	}

	want := []string{blogsync.MsgPostDeleteFailed, blogsync.MsgContactFailed}
	if fmt.Sprint(s.notifier.errors) != fmt.Sprint(want) {
		t.Fatalf("unexpected error notifications %v", s.notifier.errors)
	}
}
