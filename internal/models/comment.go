package models

import "time"

// Comment belongs to a thread and optionally replies to another comment
// in the same thread. Nesting depth is unbounded.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ThreadID  uint      `gorm:"index;not null" json:"thread_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	AuthorID  *uint     `gorm:"index" json:"author_id"`
	Content   string    `gorm:"not null" json:"content"`
	Upvotes   int       `gorm:"default:1" json:"upvotes"`
	Downvotes int       `gorm:"default:0" json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Populated on read paths only.
	ContentHTML string     `gorm:"-" json:"content_html,omitempty"`
	Replies     []*Comment `gorm:"-" json:"replies,omitempty"`
}

// Score is the net vote count.
func (cm *Comment) Score() int {
	return cm.Upvotes - cm.Downvotes
}

// AuthorName resolves the display name, handling deleted authors.
func (cm *Comment) AuthorName() string {
	if cm.AuthorID == nil || cm.Author == nil {
		return DeletedUserName
	}
	return cm.Author.Name()
}
