package handler

import (
	"strings"
	"time"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	posts    *service.PostService
	messages *service.ContactService
	logger   *zap.Logger
	site     SiteInfo
	now      func() time.Time
}

// SiteInfo is the static identity shown on rendered pages.
type SiteInfo struct {
	Name            string
	ContactEmail    string
	ContactLocation string
}

// Option customises an API.
type Option func(*API)

// WithLogger sets the logger used for failures that are not reported to clients.
func WithLogger(logger *zap.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithSite sets the site identity used by the HTML pages.
func WithSite(site SiteInfo) Option {
	return func(a *API) {
		a.site = site
	}
}

// NewAPI constructs a handler set with shared services.
func NewAPI(posts *service.PostService, messages *service.ContactService, opts ...Option) *API {
	a := &API{
		posts:    posts,
		messages: messages,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if strings.TrimSpace(a.site.Name) == "" {
		a.site.Name = "Folio"
	}
	return a
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["site"]; !exists {
		payload["site"] = a.site
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = a.now().Year()
	}
	c.HTML(status, template, payload)
}
