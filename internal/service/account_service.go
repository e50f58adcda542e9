package service

import (
	"context"
	"strings"

	"forumverse/internal/models"
	"forumverse/internal/observability"
	"forumverse/internal/repository"
	"forumverse/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AccountService provides signup, login, and self-service account logic.
type AccountService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewAccountService returns a new AccountService.
func NewAccountService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *AccountService {
	return &AccountService{userRepo: userRepo, followRepo: followRepo}
}

// Signup registers a new user. Passwords are stored only as bcrypt hashes.
func (s *AccountService) Signup(ctx context.Context, email, username, displayName, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
	}
	user.AvatarURL = models.DefaultAvatarURL(user.Name())

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password produce
// the same error so callers cannot probe which emails exist.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}
	return user, nil
}

// GetProfile returns a user by username with derived follow edges.
func (s *AccountService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	if user.FollowerIDs, err = s.followRepo.FollowerIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	if user.FollowingIDs, err = s.followRepo.FollowingIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the user's display name and avatar.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, displayName, avatarURL string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = strings.TrimSpace(displayName)
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	} else {
		user.AvatarURL = models.DefaultAvatarURL(user.Name())
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return models.NewInvalidCredentialsError()
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

// ChangeEmail replaces the email after verifying the password. The new
// email must not belong to another account.
func (s *AccountService) ChangeEmail(ctx context.Context, userID uint, newEmail, password string) error {
	newEmail = strings.TrimSpace(strings.ToLower(newEmail))

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.NewInvalidCredentialsError()
	}
	if err := validation.ValidateEmail(newEmail); err != nil {
		return models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, newEmail); err != nil {
		return err
	} else if existing != nil && existing.ID != userID {
		return models.NewConflictError("Email already registered")
	}

	user.Email = newEmail
	return s.userRepo.Update(ctx, user)
}

// DeleteOwnAccount removes the user's account after verifying the
// password. Owners cannot delete themselves; content survives with a
// detached author per the cascade rules.
func (s *AccountService) DeleteOwnAccount(ctx context.Context, userID uint, password string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.NewInvalidCredentialsError()
	}
	if user.IsOwner {
		return models.NewForbiddenError("Owners cannot delete their own account")
	}

	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		return err
	}
	observability.UsersDeleted.WithLabelValues("self").Inc()
	return nil
}
