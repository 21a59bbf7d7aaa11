package model

import "time"

// Category is one node of the fixed two-level content taxonomy. Level 1
// rows are top-level topics and never carry a parent; level 2 rows always
// reference a level 1 parent. Names are unique across the whole catalog,
// enforced by the store.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"not null;default:active;size:20"`
	Level       int       `json:"level" gorm:"not null;index"`
	SortOrder   int       `json:"sort_order" gorm:"not null;default:0"`
	ParentID    *string   `json:"parent_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationship
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}
