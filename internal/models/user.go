// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DeletedUserName is what presentation layers render for content whose
// author no longer exists (author_id IS NULL).
const DeletedUserName = "Deleted User"

// User represents a registered forum member.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Username     string    `gorm:"unique;not null" json:"username"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	IsOwner      bool      `gorm:"default:false" json:"is_owner"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Derived from follow edges; never persisted.
	FollowerIDs  []uint `gorm:"-" json:"follower_ids,omitempty"`
	FollowingIDs []uint `gorm:"-" json:"following_ids,omitempty"`
}

// Name returns the user's preferred display name, falling back to the
// username when no display name is set.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// DefaultAvatarURL builds the deterministic placeholder avatar used when
// signup does not provide one.
func DefaultAvatarURL(name string) string {
	initial := "U"
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		initial = strings.ToUpper(string([]rune(trimmed)[0]))
	}
	return fmt.Sprintf("https://placehold.co/40x40.png?text=%s", initial)
}
