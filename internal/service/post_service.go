package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/folio/internal/cache"
	"github.com/folio/internal/category"
	"github.com/folio/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostInvalidInput = errors.New("invalid post input")
)

// PostService wraps post related database operations.
type PostService struct {
	db     *gorm.DB
	cache  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// PostInput represents fields accepted when creating a post.
type PostInput struct {
	Title    string
	Content  string
	Excerpt  string
	Category string
}

// PostServiceOption customises a PostService.
type PostServiceOption func(*PostService)

// WithPostCache stores the "all posts" result in store for ttl (0 = no expiry).
func WithPostCache(store cache.Store, ttl time.Duration) PostServiceOption {
	return func(s *PostService) {
		if store != nil {
			s.cache = store
			s.ttl = ttl
		}
	}
}

// WithPostLogger sets the logger used for cache problems.
func WithPostLogger(logger *zap.Logger) PostServiceOption {
	return func(s *PostService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB, opts ...PostServiceOption) *PostService {
	s := &PostService{db: gdb, cache: cache.Nop{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAll returns all posts in insertion order.
func (s *PostService) ListAll(ctx context.Context) ([]db.Post, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	// Read the generation before the query so a create or delete that lands
	// in between keeps this result out of the cache.
	generation, genErr := s.cache.Generation(ctx, cache.PostListKey)
	if genErr != nil {
		s.logger.Warn("read post list generation", zap.Error(genErr))
	}

	var posts []db.Post
	if err := s.db.WithContext(ctx).Order("id asc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	if genErr == nil {
		s.storeList(ctx, generation, posts)
	}
	return posts, nil
}

// Get fetches a post by id.
func (s *PostService) Get(ctx context.Context, id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// Create validates and persists a post in a single insert.
func (s *PostService) Create(ctx context.Context, input PostInput) (*db.Post, error) {
	input = normalizePostInput(input)
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post := db.Post{
		Title:    input.Title,
		Content:  input.Content,
		Excerpt:  input.Excerpt,
		Category: input.Category,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.invalidateList(ctx)
	return &post, nil
}

// Delete removes a post by id and reports whether a post was removed.
func (s *PostService) Delete(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&db.Post{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	s.invalidateList(ctx)
	return true, nil
}

func (s *PostService) cachedList(ctx context.Context) ([]db.Post, bool) {
	raw, ok, err := s.cache.Get(ctx, cache.PostListKey)
	if err != nil {
		s.logger.Warn("read post list cache", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var posts []db.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		s.logger.Warn("decode post list cache", zap.Error(err))
		return nil, false
	}
	return posts, true
}

func (s *PostService) storeList(ctx context.Context, generation int64, posts []db.Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		s.logger.Warn("encode post list cache", zap.Error(err))
		return
	}
	written, err := s.cache.SetIfGeneration(ctx, cache.PostListKey, generation, raw, s.ttl)
	if err != nil {
		s.logger.Warn("write post list cache", zap.Error(err))
		return
	}
	if !written {
		s.logger.Debug("post list changed while loading, not cached", zap.Int64("generation", generation))
	}
}

func (s *PostService) invalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.PostListKey); err != nil {
		s.logger.Warn("invalidate post list cache", zap.Error(err))
	}
}

func normalizePostInput(input PostInput) PostInput {
	return PostInput{
		Title:    strings.TrimSpace(input.Title),
		Content:  strings.TrimSpace(input.Content),
		Excerpt:  strings.TrimSpace(input.Excerpt),
		Category: strings.TrimSpace(input.Category),
	}
}

func validatePostInput(input PostInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", ErrPostInvalidInput)
	}
	if input.Excerpt == "" {
		return fmt.Errorf("%w: excerpt is required", ErrPostInvalidInput)
	}
	if input.Content == "" {
		return fmt.Errorf("%w: content is required", ErrPostInvalidInput)
	}
	if !category.Valid(input.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrPostInvalidInput, input.Category)
	}
	return nil
}
