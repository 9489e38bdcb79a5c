package db

import "gorm.io/gorm"

// ContactMessage stores a message left through the contact form
type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"size:120;not null"`
	Email   string `gorm:"size:255;not null"`
	Message string `gorm:"type:text;not null"`
}

// TableName keeps the table name stable across renames of the struct.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
