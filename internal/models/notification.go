package models

import "time"

// NotificationType enumerates every event that can notify a user.
type NotificationType string

const (
	NotificationNewThreadFromFollowedUser NotificationType = "new_thread_from_followed_user"
	NotificationNewCommentOnThread        NotificationType = "new_comment_on_thread"
	NotificationNewReplyToComment         NotificationType = "new_reply_to_comment"
	NotificationUserFollowedYou           NotificationType = "user_followed_you"
	NotificationThreadUpvote              NotificationType = "thread_upvote"
	NotificationThreadDownvote            NotificationType = "thread_downvote"
	NotificationCommentUpvote             NotificationType = "comment_upvote"
	NotificationCommentDownvote           NotificationType = "comment_downvote"
)

// IsVote reports whether the type is one of the four vote notifications.
// Vote notifications are suppressed when a user votes on their own content.
func (t NotificationType) IsVote() bool {
	switch t {
	case NotificationThreadUpvote, NotificationThreadDownvote,
		NotificationCommentUpvote, NotificationCommentDownvote:
		return true
	}
	return false
}

// EntityType values for Notification.EntityType.
const (
	EntityTypeThread  = "thread"
	EntityTypeComment = "comment"
	EntityTypeUser    = "user"
)

// Notification stores a translation key plus arguments rather than
// rendered text, so clients localize at display time. ActorID is nil
// once the acting user has been deleted.
type Notification struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	UserID          uint              `gorm:"index;not null" json:"user_id"`
	Type            NotificationType  `gorm:"not null" json:"type"`
	ActorID         *uint             `gorm:"index" json:"actor_id"`
	EntityID        uint              `gorm:"not null" json:"entity_id"`
	EntityType      string            `gorm:"not null" json:"entity_type"`
	RelatedEntityID *uint             `json:"related_entity_id"`
	ContentKey      string            `gorm:"not null" json:"content_key"`
	ContentArgs     map[string]string `gorm:"serializer:json" json:"content_args"`
	Link            string            `json:"link"`
	IsRead          bool              `gorm:"default:false" json:"is_read"`
	CreatedAt       time.Time         `json:"created_at"`
}
