package models

import "time"

// Thread is a top-level discussion. AuthorID is nil when the author's
// account has been deleted; the thread itself survives.
type Thread struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Content      string    `gorm:"not null" json:"content"`
	AuthorID     *uint     `gorm:"index" json:"author_id"`
	Upvotes      int       `gorm:"default:1" json:"upvotes"`
	Downvotes    int       `gorm:"default:0" json:"downvotes"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Populated on read paths only.
	ContentHTML string     `gorm:"-" json:"content_html,omitempty"`
	Comments    []*Comment `gorm:"-" json:"comments,omitempty"`
}

// Score is the net vote count shown in listings.
func (t *Thread) Score() int {
	return t.Upvotes - t.Downvotes
}

// AuthorName resolves the display name, handling deleted authors.
func (t *Thread) AuthorName() string {
	if t.AuthorID == nil || t.Author == nil {
		return DeletedUserName
	}
	return t.Author.Name()
}
