package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"forumverse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func newContentService(
	threadRepo *stubThreadRepo,
	commentRepo *stubCommentRepo,
	followRepo *stubFollowRepo,
	userRepo *stubUserRepo,
	notifier *stubNotifier,
) *ContentService {
	return NewContentService(threadRepo, commentRepo, followRepo, userRepo, notifier)
}

func TestCreateThread(t *testing.T) {
	t.Run("starts with author's implicit upvote", func(t *testing.T) {
		var created *models.Thread
		threadRepo := &stubThreadRepo{
			create: func(_ context.Context, th *models.Thread) error {
				th.ID = 42
				created = th
				return nil
			},
		}
		svc := newContentService(threadRepo, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

		thread, err := svc.CreateThread(context.Background(), 7, "First post", "hello world")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 1, thread.Upvotes)
		assert.Equal(t, 0, thread.Downvotes)
		assert.Equal(t, 0, thread.CommentCount)
		require.NotNil(t, thread.AuthorID)
		assert.Equal(t, uint(7), *thread.AuthorID)
	})

	t.Run("rejects blank title and content", func(t *testing.T) {
		svc := newContentService(&stubThreadRepo{}, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

		_, err := svc.CreateThread(context.Background(), 7, "   ", "content")
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

		_, err = svc.CreateThread(context.Background(), 7, "title", "  \n ")
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("notifies each follower exactly once", func(t *testing.T) {
		threadRepo := &stubThreadRepo{
			create: func(_ context.Context, th *models.Thread) error {
				th.ID = 5
				return nil
			},
		}
		followRepo := &stubFollowRepo{
			followerIDs: func(_ context.Context, userID uint) ([]uint, error) {
				return []uint{2, 3, 9}, nil
			},
		}
		notifier := &stubNotifier{}
		svc := newContentService(threadRepo, &stubCommentRepo{}, followRepo, &stubUserRepo{}, notifier)

		_, err := svc.CreateThread(context.Background(), 1, "title", "content")
		require.NoError(t, err)
		require.Len(t, notifier.emitted, 3)

		seen := map[uint]int{}
		for _, n := range notifier.emitted {
			assert.Equal(t, models.NotificationNewThreadFromFollowedUser, n.notifType)
			assert.Equal(t, uint(1), n.actorID)
			assert.Equal(t, uint(5), n.entityID)
			assert.Equal(t, models.EntityTypeThread, n.entityType)
			seen[n.recipientID]++
		}
		assert.Equal(t, map[uint]int{2: 1, 3: 1, 9: 1}, seen)
	})

	t.Run("thread survives follower fan-out failure", func(t *testing.T) {
		threadRepo := &stubThreadRepo{
			create: func(_ context.Context, th *models.Thread) error {
				th.ID = 5
				return nil
			},
		}
		followRepo := &stubFollowRepo{
			followerIDs: func(_ context.Context, userID uint) ([]uint, error) {
				return nil, errors.New("redis down")
			},
		}
		svc := newContentService(threadRepo, &stubCommentRepo{}, followRepo, &stubUserRepo{}, &stubNotifier{})

		thread, err := svc.CreateThread(context.Background(), 1, "title", "content")
		require.NoError(t, err)
		assert.Equal(t, uint(5), thread.ID)
	})
}

func TestAddComment(t *testing.T) {
	existingThread := func() *stubThreadRepo {
		return &stubThreadRepo{
			getByID: func(_ context.Context, id uint) (*models.Thread, error) {
				return &models.Thread{ID: id, Title: "t", AuthorID: uintPtr(1)}, nil
			},
		}
	}

	t.Run("missing thread", func(t *testing.T) {
		threadRepo := &stubThreadRepo{
			getByID: func(_ context.Context, id uint) (*models.Thread, error) {
				return nil, models.NewNotFoundError("Thread", id)
			},
		}
		svc := newContentService(threadRepo, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

		_, err := svc.AddComment(context.Background(), 99, 2, "hi", nil)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("top-level comment notifies thread author", func(t *testing.T) {
		commentRepo := &stubCommentRepo{
			createWithCount: func(_ context.Context, c *models.Comment) error {
				c.ID = 10
				return nil
			},
		}
		notifier := &stubNotifier{}
		svc := newContentService(existingThread(), commentRepo, &stubFollowRepo{}, &stubUserRepo{}, notifier)

		comment, err := svc.AddComment(context.Background(), 3, 2, "nice thread", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, comment.Upvotes)

		require.Len(t, notifier.emitted, 1)
		n := notifier.emitted[0]
		assert.Equal(t, uint(1), n.recipientID)
		assert.Equal(t, models.NotificationNewCommentOnThread, n.notifType)
		assert.Equal(t, models.EntityTypeComment, n.entityType)
		require.NotNil(t, n.relatedEntityID)
		assert.Equal(t, uint(3), *n.relatedEntityID)
	})

	t.Run("commenting on own thread notifies nobody", func(t *testing.T) {
		commentRepo := &stubCommentRepo{
			createWithCount: func(_ context.Context, c *models.Comment) error {
				c.ID = 10
				return nil
			},
		}
		notifier := &stubNotifier{}
		svc := newContentService(existingThread(), commentRepo, &stubFollowRepo{}, &stubUserRepo{}, notifier)

		_, err := svc.AddComment(context.Background(), 3, 1, "my own thread", nil)
		require.NoError(t, err)
		assert.Empty(t, notifier.emitted)
	})

	t.Run("reply notifies thread author and parent author", func(t *testing.T) {
		commentRepo := &stubCommentRepo{
			getByID: func(_ context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, ThreadID: 3, AuthorID: uintPtr(4)}, nil
			},
			createWithCount: func(_ context.Context, c *models.Comment) error {
				c.ID = 11
				return nil
			},
		}
		notifier := &stubNotifier{}
		svc := newContentService(existingThread(), commentRepo, &stubFollowRepo{}, &stubUserRepo{}, notifier)

		_, err := svc.AddComment(context.Background(), 3, 2, "replying", uintPtr(7))
		require.NoError(t, err)
		require.Len(t, notifier.emitted, 2)
		assert.Equal(t, models.NotificationNewCommentOnThread, notifier.emitted[0].notifType)
		assert.Equal(t, uint(1), notifier.emitted[0].recipientID)
		assert.Equal(t, models.NotificationNewReplyToComment, notifier.emitted[1].notifType)
		assert.Equal(t, uint(4), notifier.emitted[1].recipientID)
	})

	t.Run("parent from a different thread is rejected", func(t *testing.T) {
		commentRepo := &stubCommentRepo{
			getByID: func(_ context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, ThreadID: 999}, nil
			},
		}
		svc := newContentService(existingThread(), commentRepo, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

		_, err := svc.AddComment(context.Background(), 3, 2, "orphan reply", uintPtr(7))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("blank content is rejected", func(t *testing.T) {
		svc := newContentService(existingThread(), &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

		_, err := svc.AddComment(context.Background(), 3, 2, "   ", nil)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestVoteThread(t *testing.T) {
	t.Run("invalid direction", func(t *testing.T) {
		svc := newContentService(&stubThreadRepo{}, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

		err := svc.VoteThread(context.Background(), 1, 2, "sideways")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("downvote notifies author with downvote type", func(t *testing.T) {
		threadRepo := &stubThreadRepo{
			getByID: func(_ context.Context, id uint) (*models.Thread, error) {
				return &models.Thread{ID: id, AuthorID: uintPtr(9)}, nil
			},
		}
		notifier := &stubNotifier{}
		svc := newContentService(threadRepo, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, notifier)

		require.NoError(t, svc.VoteThread(context.Background(), 1, 2, models.VoteDown))
		require.Len(t, notifier.emitted, 1)
		assert.Equal(t, models.NotificationThreadDownvote, notifier.emitted[0].notifType)
		assert.Equal(t, uint(9), notifier.emitted[0].recipientID)
	})

	t.Run("deleted author gets no notification", func(t *testing.T) {
		threadRepo := &stubThreadRepo{
			getByID: func(_ context.Context, id uint) (*models.Thread, error) {
				return &models.Thread{ID: id, AuthorID: nil}, nil
			},
		}
		notifier := &stubNotifier{}
		svc := newContentService(threadRepo, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, notifier)

		require.NoError(t, svc.VoteThread(context.Background(), 1, 2, models.VoteUp))
		assert.Empty(t, notifier.emitted)
	})

	t.Run("concurrent votes all reach the repository", func(t *testing.T) {
		var mu sync.Mutex
		votes := 0
		threadRepo := &stubThreadRepo{
			getByID: func(_ context.Context, id uint) (*models.Thread, error) {
				return &models.Thread{ID: id}, nil
			},
			incrementVote: func(_ context.Context, id uint, direction models.VoteDirection) error {
				mu.Lock()
				votes++
				mu.Unlock()
				return nil
			},
		}
		svc := newContentService(threadRepo, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

		const n = 100
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func(voter uint) {
				defer wg.Done()
				_ = svc.VoteThread(context.Background(), 1, voter, models.VoteUp)
			}(uint(i + 1))
		}
		wg.Wait()
		assert.Equal(t, n, votes)
	})
}

func TestVoteComment(t *testing.T) {
	t.Run("upvote notifies comment author with thread link context", func(t *testing.T) {
		commentRepo := &stubCommentRepo{
			getByID: func(_ context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, ThreadID: 3, AuthorID: uintPtr(4)}, nil
			},
		}
		notifier := &stubNotifier{}
		svc := newContentService(&stubThreadRepo{}, commentRepo, &stubFollowRepo{}, &stubUserRepo{}, notifier)

		require.NoError(t, svc.VoteComment(context.Background(), 8, 2, models.VoteUp))
		require.Len(t, notifier.emitted, 1)
		n := notifier.emitted[0]
		assert.Equal(t, models.NotificationCommentUpvote, n.notifType)
		assert.Equal(t, uint(4), n.recipientID)
		require.NotNil(t, n.relatedEntityID)
		assert.Equal(t, uint(3), *n.relatedEntityID)
	})

	t.Run("missing comment", func(t *testing.T) {
		svc := newContentService(&stubThreadRepo{}, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

		err := svc.VoteComment(context.Background(), 8, 2, models.VoteUp)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestGetThread_RendersMarkdownAndTree(t *testing.T) {
	threadRepo := &stubThreadRepo{
		getByID: func(_ context.Context, id uint) (*models.Thread, error) {
			return &models.Thread{ID: id, Title: "t", Content: "**bold** text"}, nil
		},
	}
	commentRepo := &stubCommentRepo{
		listByThread: func(_ context.Context, threadID uint) ([]models.Comment, error) {
			return []models.Comment{
				{ID: 1, ThreadID: threadID, Content: "root"},
				{ID: 2, ThreadID: threadID, ParentID: uintPtr(1), Content: "child"},
			}, nil
		},
	}
	svc := newContentService(threadRepo, commentRepo, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

	thread, err := svc.GetThread(context.Background(), 3)
	require.NoError(t, err)
	assert.Contains(t, thread.ContentHTML, "<strong>bold</strong>")
	require.Len(t, thread.Comments, 1)
	require.Len(t, thread.Comments[0].Replies, 1)
	assert.Equal(t, uint(2), thread.Comments[0].Replies[0].ID)
}

func TestListThreadsByAuthor_UnknownUser(t *testing.T) {
	svc := newContentService(&stubThreadRepo{}, &stubCommentRepo{}, &stubFollowRepo{}, &stubUserRepo{}, &stubNotifier{})

	_, err := svc.ListThreadsByAuthor(context.Background(), "ghost")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestBuildCommentTree(t *testing.T) {
	t.Run("nests replies under parents", func(t *testing.T) {
		comments := []models.Comment{
			{ID: 1, Content: "a"},
			{ID: 2, ParentID: uintPtr(1), Content: "b"},
			{ID: 3, ParentID: uintPtr(2), Content: "c"},
			{ID: 4, Content: "d"},
		}
		roots := BuildCommentTree(comments)
		require.Len(t, roots, 2)
		require.Len(t, roots[0].Replies, 1)
		require.Len(t, roots[0].Replies[0].Replies, 1)
		assert.Equal(t, uint(3), roots[0].Replies[0].Replies[0].ID)
		assert.Empty(t, roots[1].Replies)
	})

	t.Run("orphaned replies degrade to top level", func(t *testing.T) {
		comments := []models.Comment{
			{ID: 2, ParentID: uintPtr(999), Content: "orphan"},
		}
		roots := BuildCommentTree(comments)
		require.Len(t, roots, 1)
		assert.Equal(t, uint(2), roots[0].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildCommentTree(nil))
	})
}
