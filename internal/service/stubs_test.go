package service

import (
	"context"

	"forumverse/internal/models"
)

// Function-field stubs for the repository interfaces. Tests set only the
// fields they need; unset fields return zero values.

type stubUserRepo struct {
	getByID       func(ctx context.Context, id uint) (*models.User, error)
	getByEmail    func(ctx context.Context, email string) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
	create        func(ctx context.Context, user *models.User) error
	update        func(ctx context.Context, user *models.User) error
	list          func(ctx context.Context, limit, offset int) ([]models.User, error)
	deleteCascade func(ctx context.Context, id uint) error
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail != nil {
		return s.getByEmail(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsername != nil {
		return s.getByUsername(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.create != nil {
		return s.create(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.update != nil {
		return s.update(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if s.list != nil {
		return s.list(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubUserRepo) DeleteCascade(ctx context.Context, id uint) error {
	if s.deleteCascade != nil {
		return s.deleteCascade(ctx, id)
	}
	return nil
}

type stubThreadRepo struct {
	create                func(ctx context.Context, thread *models.Thread) error
	getByID               func(ctx context.Context, id uint) (*models.Thread, error)
	list                  func(ctx context.Context, limit, offset int) ([]models.Thread, error)
	listByAuthor          func(ctx context.Context, authorID uint) ([]models.Thread, error)
	incrementVote         func(ctx context.Context, id uint, direction models.VoteDirection) error
}

func (s *stubThreadRepo) Create(ctx context.Context, thread *models.Thread) error {
	if s.create != nil {
		return s.create(ctx, thread)
	}
	return nil
}

func (s *stubThreadRepo) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Thread", id)
}

func (s *stubThreadRepo) List(ctx context.Context, limit, offset int) ([]models.Thread, error) {
	if s.list != nil {
		return s.list(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubThreadRepo) ListByAuthor(ctx context.Context, authorID uint) ([]models.Thread, error) {
	if s.listByAuthor != nil {
		return s.listByAuthor(ctx, authorID)
	}
	return nil, nil
}

func (s *stubThreadRepo) IncrementVote(ctx context.Context, id uint, direction models.VoteDirection) error {
	if s.incrementVote != nil {
		return s.incrementVote(ctx, id, direction)
	}
	return nil
}

type stubCommentRepo struct {
	createWithCount func(ctx context.Context, comment *models.Comment) error
	getByID         func(ctx context.Context, id uint) (*models.Comment, error)
	listByThread    func(ctx context.Context, threadID uint) ([]models.Comment, error)
	listByThreads   func(ctx context.Context, threadIDs []uint) ([]models.Comment, error)
	countByThread   func(ctx context.Context, threadID uint) (int64, error)
	incrementVote   func(ctx context.Context, id uint, direction models.VoteDirection) error
}

func (s *stubCommentRepo) CreateWithCount(ctx context.Context, comment *models.Comment) error {
	if s.createWithCount != nil {
		return s.createWithCount(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Comment", id)
}

func (s *stubCommentRepo) ListByThread(ctx context.Context, threadID uint) ([]models.Comment, error) {
	if s.listByThread != nil {
		return s.listByThread(ctx, threadID)
	}
	return nil, nil
}

func (s *stubCommentRepo) ListByThreads(ctx context.Context, threadIDs []uint) ([]models.Comment, error) {
	if s.listByThreads != nil {
		return s.listByThreads(ctx, threadIDs)
	}
	return nil, nil
}

func (s *stubCommentRepo) CountByThread(ctx context.Context, threadID uint) (int64, error) {
	if s.countByThread != nil {
		return s.countByThread(ctx, threadID)
	}
	return 0, nil
}

func (s *stubCommentRepo) IncrementVote(ctx context.Context, id uint, direction models.VoteDirection) error {
	if s.incrementVote != nil {
		return s.incrementVote(ctx, id, direction)
	}
	return nil
}

type stubFollowRepo struct {
	get          func(ctx context.Context, followerID, followingID uint) (*models.Follow, error)
	create       func(ctx context.Context, follow *models.Follow) error
	delete       func(ctx context.Context, followerID, followingID uint) error
	followerIDs  func(ctx context.Context, userID uint) ([]uint, error)
	followingIDs func(ctx context.Context, userID uint) ([]uint, error)
}

func (s *stubFollowRepo) Get(ctx context.Context, followerID, followingID uint) (*models.Follow, error) {
	if s.get != nil {
		return s.get(ctx, followerID, followingID)
	}
	return nil, nil
}

func (s *stubFollowRepo) Create(ctx context.Context, follow *models.Follow) error {
	if s.create != nil {
		return s.create(ctx, follow)
	}
	return nil
}

func (s *stubFollowRepo) Delete(ctx context.Context, followerID, followingID uint) error {
	if s.delete != nil {
		return s.delete(ctx, followerID, followingID)
	}
	return nil
}

func (s *stubFollowRepo) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.followerIDs != nil {
		return s.followerIDs(ctx, userID)
	}
	return nil, nil
}

func (s *stubFollowRepo) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.followingIDs != nil {
		return s.followingIDs(ctx, userID)
	}
	return nil, nil
}

type stubNotificationRepo struct {
	create      func(ctx context.Context, n *models.Notification) error
	listByUser  func(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error)
	unreadCount func(ctx context.Context, userID uint) (int64, error)
	markRead    func(ctx context.Context, id, userID uint) error
	markAllRead func(ctx context.Context, userID uint) error
}

func (s *stubNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if s.create != nil {
		return s.create(ctx, n)
	}
	return nil
}

func (s *stubNotificationRepo) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	if s.listByUser != nil {
		return s.listByUser(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (s *stubNotificationRepo) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if s.unreadCount != nil {
		return s.unreadCount(ctx, userID)
	}
	return 0, nil
}

func (s *stubNotificationRepo) MarkRead(ctx context.Context, id, userID uint) error {
	if s.markRead != nil {
		return s.markRead(ctx, id, userID)
	}
	return nil
}

func (s *stubNotificationRepo) MarkAllRead(ctx context.Context, userID uint) error {
	if s.markAllRead != nil {
		return s.markAllRead(ctx, userID)
	}
	return nil
}

// stubNotifier records emitted notifications for assertions.
type stubNotifier struct {
	emitted []emittedNotification
	err     error
}

type emittedNotification struct {
	recipientID     uint
	notifType       models.NotificationType
	actorID         uint
	entityID        uint
	entityType      string
	relatedEntityID *uint
}

func (s *stubNotifier) Emit(ctx context.Context, recipientID uint, t models.NotificationType, actorID, entityID uint, entityType string, relatedEntityID *uint) error {
	if s.err != nil {
		return s.err
	}
	s.emitted = append(s.emitted, emittedNotification{
		recipientID:     recipientID,
		notifType:       t,
		actorID:         actorID,
		entityID:        entityID,
		entityType:      entityType,
		relatedEntityID: relatedEntityID,
	})
	return nil
}
