package model

import "time"

// Post represents user-submitted content awaiting or past moderation.
type Post struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"not null;default:pending;size:20;index"`
	UserID      string     `json:"user_id" gorm:"not null;index"`
	CategoryID  *string    `json:"category_id" gorm:"index"`
	MediaURL    string     `json:"media_url"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes string     `json:"review_notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	User     User      `json:"user" gorm:"foreignKey:UserID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
