// Package service implements the domain rules of the forum.
package service

import (
	"context"
	"fmt"

	"forumverse/internal/middleware"
	"forumverse/internal/models"
	"forumverse/internal/observability"
	"forumverse/internal/repository"
)

// Notifier is the notification entry point used by the other services.
type Notifier interface {
	Emit(ctx context.Context, recipientID uint, t models.NotificationType, actorID, entityID uint, entityType string, relatedEntityID *uint) error
}

// NotificationService creates and serves notifications. Notifications
// store a translation key and raw arguments; rendering happens client-side.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	threadRepo       repository.ThreadRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	threadRepo repository.ThreadRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		threadRepo:       threadRepo,
	}
}

// Emit records a notification for recipientID about something actorID did.
// Voting on your own content notifies nobody; that case returns nil
// without touching storage.
func (s *NotificationService) Emit(ctx context.Context, recipientID uint, t models.NotificationType, actorID, entityID uint, entityType string, relatedEntityID *uint) error {
	if recipientID == actorID && t.IsVote() {
		observability.NotificationsSuppressed.WithLabelValues(string(t)).Inc()
		return nil
	}

	actorName := "Someone"
	actorUsername := ""
	if actor, err := s.userRepo.GetByID(ctx, actorID); err == nil && actor != nil {
		actorName = actor.Name()
		actorUsername = actor.Username
	}

	args := map[string]string{"actorName": actorName}

	var link string
	switch entityType {
	case models.EntityTypeThread:
		link = fmt.Sprintf("/t/%d", entityID)
		if thread, err := s.threadRepo.GetByID(ctx, entityID); err == nil {
			args["threadTitle"] = thread.Title
		}
	case models.EntityTypeComment:
		if relatedEntityID != nil {
			link = fmt.Sprintf("/t/%d#comment-%d", *relatedEntityID, entityID)
			if thread, err := s.threadRepo.GetByID(ctx, *relatedEntityID); err == nil {
				args["threadTitle"] = thread.Title
			}
		}
	case models.EntityTypeUser:
		link = fmt.Sprintf("/u/%s", actorUsername)
	}

	actor := actorID
	n := &models.Notification{
		UserID:          recipientID,
		Type:            t,
		ActorID:         &actor,
		EntityID:        entityID,
		EntityType:      entityType,
		RelatedEntityID: relatedEntityID,
		ContentKey:      "notifications." + string(t),
		ContentArgs:     args,
		Link:            link,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	observability.NotificationsEmitted.WithLabelValues(string(t)).Inc()
	middleware.Logger.InfoContext(ctx, "notification emitted",
		"type", string(t), "recipient", recipientID, "actor", actorID)
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one of the user's notifications as read. Notifications
// belonging to other users are untouched.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
