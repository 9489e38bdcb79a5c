package handler

import (
	"errors"
	"net/http"

	"github.com/folio/internal/actor/local"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type postPayload struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
}

// GetPosts returns every post in insertion order.
func (a *API) GetPosts(c *gin.Context) {
	posts, err := a.posts.ListAll(c.Request.Context())
	if err != nil {
		a.logger.Error("list posts", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": local.PostsFromDB(posts)})
}

// GetPost returns a single post.
func (a *API) GetPost(c *gin.Context) {
	id, inRange, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	if !inRange {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		a.logger.Error("get post", zap.Uint("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": local.PostFromDB(*post)})
}

// CreatePost stores a new post and returns its id.
func (a *API) CreatePost(c *gin.Context) {
	var payload postPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	post, err := a.posts.Create(c.Request.Context(), service.PostInput{
		Title:    payload.Title,
		Content:  payload.Content,
		Excerpt:  payload.Excerpt,
		Category: payload.Category,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostInvalidInput) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		a.logger.Error("create post", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create post")
		return
	}

	a.logger.Info("post created", zap.Uint("id", post.ID), zap.String("category", post.Category))
	c.JSON(http.StatusCreated, gin.H{"id": post.ID})
}

// DeletePost removes a post and reports whether anything was removed.
func (a *API) DeletePost(c *gin.Context) {
	id, inRange, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	if !inRange {
		c.JSON(http.StatusOK, gin.H{"deleted": false})
		return
	}

	deleted, err := a.posts.Delete(c.Request.Context(), id)
	if err != nil {
		a.logger.Error("delete post", zap.Uint("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}

	if deleted {
		a.logger.Info("post deleted", zap.Uint("id", id))
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
