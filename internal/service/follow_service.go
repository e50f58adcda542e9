package service

import (
	"context"

	"forumverse/internal/middleware"
	"forumverse/internal/models"
	"forumverse/internal/repository"
)

// FollowService provides the social graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifier   Notifier
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, notifier Notifier) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// Follow creates a follow edge from followerID to targetID and tells the
// target about it.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	existing, err := s.followRepo.Get(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewConflictError("Already following this user")
	}

	if err := s.followRepo.Create(ctx, &models.Follow{
		FollowerID:  followerID,
		FollowingID: targetID,
	}); err != nil {
		return err
	}

	if emitErr := s.notifier.Emit(ctx, targetID, models.NotificationUserFollowedYou,
		followerID, followerID, models.EntityTypeUser, nil); emitErr != nil {
		middleware.Logger.WarnContext(ctx, "follow notification failed", "target_id", targetID, "error", emitErr)
	}
	return nil
}

// Unfollow removes the follow edge. It is idempotent: unfollowing a user
// who was never followed succeeds quietly.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	return s.followRepo.Delete(ctx, followerID, targetID)
}
