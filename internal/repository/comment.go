package repository

import (
	"context"
	"errors"

	"forumverse/internal/cache"
	"forumverse/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	CreateWithCount(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByThread(ctx context.Context, threadID uint) ([]models.Comment, error)
	ListByThreads(ctx context.Context, threadIDs []uint) ([]models.Comment, error)
	CountByThread(ctx context.Context, threadID uint) (int64, error)
	IncrementVote(ctx context.Context, id uint, direction models.VoteDirection) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// CreateWithCount inserts the comment and bumps the thread's denormalized
// comment_count in the same transaction, so the counter can never drift
// from the live tree.
func (r *commentRepository) CreateWithCount(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Thread{}).
			Where("id = ?", comment.ThreadID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Thread", comment.ThreadID)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateThread(ctx, comment.ThreadID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByThread(ctx context.Context, threadID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListByThreads(ctx context.Context, threadIDs []uint) ([]models.Comment, error) {
	if len(threadIDs) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("thread_id IN ?", threadIDs).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) CountByThread(ctx context.Context, threadID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("thread_id = ?", threadID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// IncrementVote bumps the relevant counter with a single UPDATE, same as
// the thread variant.
func (r *commentRepository) IncrementVote(ctx context.Context, id uint, direction models.VoteDirection) error {
	column := "upvotes"
	if direction == models.VoteDown {
		column = "downvotes"
	}
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
