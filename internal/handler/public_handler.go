package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/folio/internal/category"
	"github.com/folio/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	flashContactSent   = "contact_sent"
	flashContactFailed = "contact_failed"

	formNameKey    = "contact_name"
	formEmailKey   = "contact_email"
	formMessageKey = "contact_message"

	contactSentText    = "Message sent! I'll get back to you soon."
	contactFailedText  = "Something went wrong. Please try again."
	contactInvalidText = "Please fill in your name, email and message."
)

type postCard struct {
	ID       uint
	Title    string
	Excerpt  string
	Category string
	Date     time.Time
}

type contactFormView struct {
	Name    string
	Email   string
	Message string
}

// ShowHome renders the portfolio page with the post list and contact form.
func (a *API) ShowHome(c *gin.Context) {
	posts, err := a.posts.ListAll(c.Request.Context())
	if err != nil {
		a.logger.Error("list posts for home", zap.Error(err))
		c.Error(err)
		posts = nil
	}

	cards := make([]postCard, 0, len(posts))
	for _, post := range posts {
		cards = append(cards, postCard{
			ID:       post.ID,
			Title:    post.Title,
			Excerpt:  post.Excerpt,
			Category: post.Category,
			Date:     post.CreatedAt,
		})
	}

	session := sessions.Default(c)
	sent := flashText(session.Flashes(flashContactSent))
	failed := flashText(session.Flashes(flashContactFailed))
	form := contactFormView{
		Name:    sessionString(session, formNameKey),
		Email:   sessionString(session, formEmailKey),
		Message: sessionString(session, formMessageKey),
	}
	session.Delete(formNameKey)
	session.Delete(formEmailKey)
	session.Delete(formMessageKey)
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":       a.site.Name,
		"posts":       cards,
		"categories":  slices.Clone(category.All),
		"contactSent": sent,
		"contactErr":  failed,
		"form":        form,
	})
}

// ShowPost renders a single post with markdown content.
func (a *API) ShowPost(c *gin.Context) {
	id, inRange, err := parseIDParam(c, "id")
	if err != nil || !inRange {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, service.ErrPostNotFound) {
			a.logger.Error("load post page", zap.Uint("id", id), zap.Error(err))
		}
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	htmlContent, err := renderMarkdown(post.Content)
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "post_detail.html", gin.H{
			"title": post.Title,
			"error": "failed to render content",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "post_detail.html", gin.H{
		"title":   post.Title,
		"post":    post,
		"content": htmlContent,
	})
}

// SubmitContactForm handles the HTML contact form and redirects back to the page.
func (a *API) SubmitContactForm(c *gin.Context) {
	input := service.MessageInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	session := sessions.Default(c)
	_, err := a.messages.Submit(c.Request.Context(), input)
	switch {
	case err == nil:
		session.AddFlash(contactSentText, flashContactSent)
	case errors.Is(err, service.ErrMessageInvalidInput):
		session.AddFlash(contactInvalidText, flashContactFailed)
		keepContactForm(session, input)
	default:
		a.logger.Error("submit contact form", zap.Error(err))
		session.AddFlash(contactFailedText, flashContactFailed)
		keepContactForm(session, input)
	}
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	c.Redirect(http.StatusSeeOther, "/#contact")
}

func keepContactForm(session sessions.Session, input service.MessageInput) {
	session.Set(formNameKey, input.Name)
	session.Set(formEmailKey, input.Email)
	session.Set(formMessageKey, input.Message)
}

func sessionString(session sessions.Session, key string) string {
	if value, ok := session.Get(key).(string); ok {
		return value
	}
	return ""
}

func flashText(flashes []interface{}) string {
	for i := len(flashes) - 1; i >= 0; i-- {
		if text, ok := flashes[i].(string); ok && strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}
