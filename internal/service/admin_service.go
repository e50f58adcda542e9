package service

import (
	"context"

	"forumverse/internal/models"
	"forumverse/internal/observability"
	"forumverse/internal/repository"
)

// AdminService provides moderation operations. The owner outranks
// admins; admins outrank regular users; nobody touches the owner.
type AdminService struct {
	userRepo repository.UserRepository
}

// NewAdminService returns a new AdminService.
func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

// ListUsers returns a page of users for the moderation panel.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SetAdminStatus grants or revokes admin rights. Only the owner may do
// this, and an owner's own status can never change this way.
func (s *AdminService) SetAdminStatus(ctx context.Context, actingID, targetID uint, makeAdmin bool) (*models.User, error) {
	acting, err := s.userRepo.GetByID(ctx, actingID)
	if err != nil {
		return nil, err
	}
	if !acting.IsOwner {
		return nil, models.NewForbiddenError("Only the owner can change admin status")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.IsOwner {
		return nil, models.NewForbiddenError("The owner's admin status cannot be changed")
	}

	target.IsAdmin = makeAdmin
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// DeleteUser removes another user's account with the full cascade.
// The rules, in order: you cannot delete yourself here, you need admin
// or owner rights, the owner is untouchable, and admins can only be
// deleted by the owner.
func (s *AdminService) DeleteUser(ctx context.Context, actingID, targetID uint) error {
	if actingID == targetID {
		return models.NewSelfActionError("Use account deletion to remove your own account")
	}

	acting, err := s.userRepo.GetByID(ctx, actingID)
	if err != nil {
		return err
	}
	if !acting.IsAdmin && !acting.IsOwner {
		return models.NewForbiddenError("Admin rights required")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.IsOwner {
		return models.NewForbiddenError("The owner cannot be deleted")
	}
	if target.IsAdmin && !acting.IsOwner {
		return models.NewForbiddenError("Only the owner can delete an admin")
	}

	if err := s.userRepo.DeleteCascade(ctx, targetID); err != nil {
		return err
	}
	observability.UsersDeleted.WithLabelValues("admin").Inc()
	return nil
}
