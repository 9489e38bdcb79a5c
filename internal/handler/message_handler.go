package handler

import (
	"errors"
	"net/http"

	"github.com/folio/internal/actor/local"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type messagePayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitMessage stores a contact form submission.
func (a *API) SubmitMessage(c *gin.Context) {
	var payload messagePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	msg, err := a.messages.Submit(c.Request.Context(), service.MessageInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Message: payload.Message,
	})
	if err != nil {
		if errors.Is(err, service.ErrMessageInvalidInput) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		a.logger.Error("submit contact message", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to store message")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": local.MessageFromDB(*msg)})
}

// GetMessages lists stored contact messages.
func (a *API) GetMessages(c *gin.Context) {
	items, err := a.messages.List(c.Request.Context())
	if err != nil {
		a.logger.Error("list contact messages", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": local.MessagesFromDB(items)})
}
