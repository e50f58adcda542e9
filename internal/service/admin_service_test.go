package service

import (
	"context"
	"testing"

	"forumverse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// usersByID builds a user repo stub serving a fixed set of users.
func usersByID(users ...*models.User) *stubUserRepo {
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &stubUserRepo{
		getByID: func(_ context.Context, id uint) (*models.User, error) {
			if u, ok := byID[id]; ok {
				return u, nil
			}
			return nil, models.NewNotFoundError("User", id)
		},
	}
}

func TestAdminService_SetAdminStatus(t *testing.T) {
	owner := &models.User{ID: 1, IsOwner: true, IsAdmin: true}
	admin := &models.User{ID: 2, IsAdmin: true}
	regular := &models.User{ID: 3}

	t.Run("only the owner may change admin status", func(t *testing.T) {
		svc := NewAdminService(usersByID(owner, admin, regular))

		_, err := svc.SetAdminStatus(context.Background(), admin.ID, regular.ID, true)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("the owner's own status is untouchable", func(t *testing.T) {
		svc := NewAdminService(usersByID(owner))

		_, err := svc.SetAdminStatus(context.Background(), owner.ID, owner.ID, false)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("owner promotes a regular user", func(t *testing.T) {
		target := &models.User{ID: 3}
		repo := usersByID(owner, target)
		var updated *models.User
		repo.update = func(_ context.Context, u *models.User) error {
			updated = u
			return nil
		}
		svc := NewAdminService(repo)

		user, err := svc.SetAdminStatus(context.Background(), owner.ID, target.ID, true)
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
		require.NotNil(t, updated)
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	owner := &models.User{ID: 1, IsOwner: true, IsAdmin: true}
	admin := &models.User{ID: 2, IsAdmin: true}
	otherAdmin := &models.User{ID: 4, IsAdmin: true}
	regular := &models.User{ID: 3}

	newSvc := func() (*AdminService, *bool) {
		repo := usersByID(owner, admin, otherAdmin, regular)
		deleted := false
		repo.deleteCascade = func(_ context.Context, id uint) error {
			deleted = true
			return nil
		}
		return NewAdminService(repo), &deleted
	}

	t.Run("self-deletion through moderation is blocked", func(t *testing.T) {
		svc, deleted := newSvc()

		err := svc.DeleteUser(context.Background(), admin.ID, admin.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SELF_ACTION_NOT_ALLOWED", appErr.Code)
		assert.False(t, *deleted)
	})

	t.Run("regular users cannot delete anyone", func(t *testing.T) {
		svc, deleted := newSvc()

		err := svc.DeleteUser(context.Background(), regular.ID, admin.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.False(t, *deleted)
	})

	t.Run("the owner cannot be deleted", func(t *testing.T) {
		svc, deleted := newSvc()

		err := svc.DeleteUser(context.Background(), admin.ID, owner.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.False(t, *deleted)
	})

	t.Run("admins cannot delete other admins", func(t *testing.T) {
		svc, deleted := newSvc()

		err := svc.DeleteUser(context.Background(), admin.ID, otherAdmin.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.False(t, *deleted)
	})

	t.Run("the owner can delete an admin", func(t *testing.T) {
		svc, deleted := newSvc()

		require.NoError(t, svc.DeleteUser(context.Background(), owner.ID, admin.ID))
		assert.True(t, *deleted)
	})

	t.Run("an admin can delete a regular user", func(t *testing.T) {
		svc, deleted := newSvc()

		require.NoError(t, svc.DeleteUser(context.Background(), admin.ID, regular.ID))
		assert.True(t, *deleted)
	})
}
