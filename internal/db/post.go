package db

import "gorm.io/gorm"

// Post is a published blog post. Rows are soft deleted so ids are never handed out twice.
type Post struct {
	gorm.Model
	Title    string `gorm:"size:255;not null"`
	Content  string `gorm:"type:text;not null"`
	Excerpt  string `gorm:"size:512;not null"`
	Category string `gorm:"size:64;not null;index"`
}
