package router

import (
	"net/http"

	"github.com/folio/internal/handler"
	"github.com/folio/internal/middleware"
	"github.com/folio/internal/view"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionName = "folio_session"

// Options carries everything SetupRouter needs.
type Options struct {
	API            *handler.API
	Logger         *zap.Logger
	SessionSecret  string
	AllowedOrigins []string
}

// SetupRouter configures the Gin engine and its routes.
func SetupRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	secret := opts.SessionSecret
	if secret == "" {
		secret = "folio-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	r.SetHTMLTemplate(view.Templates())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := opts.API
	if api == nil {
		return r
	}

	r.GET("/", api.ShowHome)
	r.GET("/blog/:id", api.ShowPost)
	r.POST("/contact", api.SubmitContactForm)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/posts", api.GetPosts)
		apiGroup.GET("/posts/:id", api.GetPost)
		apiGroup.POST("/posts", api.CreatePost)
		apiGroup.DELETE("/posts/:id", api.DeletePost)

		apiGroup.GET("/messages", api.GetMessages)
		apiGroup.POST("/messages", api.SubmitMessage)
	}

	return r
}

func corsConfig(allowed []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
	}
	// With no configured origins only same-origin requests pass; the
	// middleware lets those through before consulting AllowOriginFunc.
	if len(allowed) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
		return cfg
	}

	patterns := append([]string(nil), allowed...)
	cfg.AllowOriginFunc = func(origin string) bool {
		host := extractOriginHost(origin)
		for _, pattern := range patterns {
			if pattern == "*" || pattern == origin || matchOriginPattern(pattern, host) {
				return true
			}
		}
		return false
	}
	return cfg
}
