package model

import "time"

// User is the owning account for submitted posts. Registration and token
// issuance live in the upstream auth service; this table backs username
// joins for admin search and the seeded admin account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"not null;default:user;size:20"`
	Status    string    `json:"status" gorm:"not null;default:active;size:20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
