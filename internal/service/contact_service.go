package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

// ErrMessageInvalidInput is returned when a contact message is missing a field
var ErrMessageInvalidInput = errors.New("invalid contact message input")

// ContactService stores messages left through the contact form.
type ContactService struct {
	db *gorm.DB
}

// NewContactService constructs a ContactService.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// MessageInput describes a contact form submission.
type MessageInput struct {
	Name    string
	Email   string
	Message string
}

// Submit validates and stores a message.
func (s *ContactService) Submit(ctx context.Context, input MessageInput) (*db.ContactMessage, error) {
	msg := db.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Message: strings.TrimSpace(input.Message),
	}
	switch {
	case msg.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrMessageInvalidInput)
	case msg.Email == "":
		return nil, fmt.Errorf("%w: email is required", ErrMessageInvalidInput)
	case msg.Message == "":
		return nil, fmt.Errorf("%w: message is required", ErrMessageInvalidInput)
	}

	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return &msg, nil
}

// List returns every stored message, oldest first.
func (s *ContactService) List(ctx context.Context) ([]db.ContactMessage, error) {
	var items []db.ContactMessage
	if err := s.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return items, nil
}
