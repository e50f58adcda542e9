package service

import (
	"context"
	"strings"

	"forumverse/internal/markdown"
	"forumverse/internal/middleware"
	"forumverse/internal/models"
	"forumverse/internal/observability"
	"forumverse/internal/repository"
)

// ContentService provides thread, comment, and voting business logic.
type ContentService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

// NewContentService returns a new ContentService.
func NewContentService(
	threadRepo repository.ThreadRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *ContentService {
	return &ContentService{
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CreateThread creates a thread with the author's implicit upvote already
// counted, then notifies every follower of the author.
func (s *ContentService) CreateThread(ctx context.Context, authorID uint, title, content string) (*models.Thread, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	author := authorID
	thread := &models.Thread{
		Title:        title,
		Content:      content,
		AuthorID:     &author,
		Upvotes:      1,
		Downvotes:    0,
		CommentCount: 0,
	}
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return nil, err
	}
	observability.ThreadsCreated.Inc()

	followerIDs, err := s.followRepo.FollowerIDs(ctx, authorID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "thread created but follower fan-out failed", "thread_id", thread.ID, "error", err)
		return thread, nil
	}
	for _, followerID := range followerIDs {
		if emitErr := s.notifier.Emit(ctx, followerID, models.NotificationNewThreadFromFollowedUser,
			authorID, thread.ID, models.EntityTypeThread, nil); emitErr != nil {
			middleware.Logger.WarnContext(ctx, "follower notification failed", "thread_id", thread.ID, "follower_id", followerID, "error", emitErr)
		}
	}

	return thread, nil
}

// AddComment adds a comment or reply to a thread. The reply parent must
// live in the same thread. The comment carries the author's implicit
// upvote, and the thread's comment counter moves in the same transaction
// as the insert.
func (s *ContentService) AddComment(ctx context.Context, threadID, authorID uint, content string, parentID *uint) (*models.Comment, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	var parent *models.Comment
	if parentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ThreadID != threadID {
			return nil, models.NewNotFoundError("Comment", *parentID)
		}
	}

	author := authorID
	comment := &models.Comment{
		ThreadID: threadID,
		ParentID: parentID,
		AuthorID: &author,
		Content:  content,
		Upvotes:  1,
	}
	if err := s.commentRepo.CreateWithCount(ctx, comment); err != nil {
		return nil, err
	}

	kind := "top_level"
	if parentID != nil {
		kind = "reply"
	}
	observability.CommentsCreated.WithLabelValues(kind).Inc()

	if thread.AuthorID != nil && *thread.AuthorID != authorID {
		if emitErr := s.notifier.Emit(ctx, *thread.AuthorID, models.NotificationNewCommentOnThread,
			authorID, comment.ID, models.EntityTypeComment, &threadID); emitErr != nil {
			middleware.Logger.WarnContext(ctx, "comment notification failed", "comment_id", comment.ID, "error", emitErr)
		}
	}
	if parent != nil && parent.AuthorID != nil && *parent.AuthorID != authorID {
		if emitErr := s.notifier.Emit(ctx, *parent.AuthorID, models.NotificationNewReplyToComment,
			authorID, comment.ID, models.EntityTypeComment, &threadID); emitErr != nil {
			middleware.Logger.WarnContext(ctx, "reply notification failed", "comment_id", comment.ID, "error", emitErr)
		}
	}

	return comment, nil
}

// VoteThread applies one vote to a thread and notifies its author. The
// notification is skipped for self-votes and deleted authors.
func (s *ContentService) VoteThread(ctx context.Context, threadID, voterID uint, direction models.VoteDirection) error {
	if !direction.Valid() {
		return models.NewValidationError("Vote direction must be 'up' or 'down'")
	}

	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return err
	}
	if err := s.threadRepo.IncrementVote(ctx, threadID, direction); err != nil {
		return err
	}
	observability.VotesCast.WithLabelValues("thread", string(direction)).Inc()

	if thread.AuthorID == nil {
		return nil
	}
	notifType := models.NotificationThreadUpvote
	if direction == models.VoteDown {
		notifType = models.NotificationThreadDownvote
	}
	if emitErr := s.notifier.Emit(ctx, *thread.AuthorID, notifType,
		voterID, threadID, models.EntityTypeThread, nil); emitErr != nil {
		middleware.Logger.WarnContext(ctx, "vote notification failed", "thread_id", threadID, "error", emitErr)
	}
	return nil
}

// VoteComment applies one vote to a comment, mirroring VoteThread.
func (s *ContentService) VoteComment(ctx context.Context, commentID, voterID uint, direction models.VoteDirection) error {
	if !direction.Valid() {
		return models.NewValidationError("Vote direction must be 'up' or 'down'")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.commentRepo.IncrementVote(ctx, commentID, direction); err != nil {
		return err
	}
	observability.VotesCast.WithLabelValues("comment", string(direction)).Inc()

	if comment.AuthorID == nil {
		return nil
	}
	notifType := models.NotificationCommentUpvote
	if direction == models.VoteDown {
		notifType = models.NotificationCommentDownvote
	}
	if emitErr := s.notifier.Emit(ctx, *comment.AuthorID, notifType,
		voterID, commentID, models.EntityTypeComment, &comment.ThreadID); emitErr != nil {
		middleware.Logger.WarnContext(ctx, "vote notification failed", "comment_id", commentID, "error", emitErr)
	}
	return nil
}

// GetThread returns one thread with rendered content and its full
// comment tree.
func (s *ContentService) GetThread(ctx context.Context, id uint) (*models.Thread, error) {
	thread, err := s.threadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByThread(ctx, id)
	if err != nil {
		return nil, err
	}
	decorate(thread, comments)
	return thread, nil
}

// ListThreads returns the newest threads with their comment trees.
func (s *ContentService) ListThreads(ctx context.Context, limit, offset int) ([]models.Thread, error) {
	threads, err := s.threadRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.attachTrees(ctx, threads)
}

// ListThreadsByAuthor returns a user's threads, newest first.
func (s *ContentService) ListThreadsByAuthor(ctx context.Context, username string) ([]models.Thread, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	threads, err := s.threadRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.attachTrees(ctx, threads)
}

func (s *ContentService) attachTrees(ctx context.Context, threads []models.Thread) ([]models.Thread, error) {
	ids := make([]uint, 0, len(threads))
	for i := range threads {
		ids = append(ids, threads[i].ID)
	}
	comments, err := s.commentRepo.ListByThreads(ctx, ids)
	if err != nil {
		return nil, err
	}

	byThread := make(map[uint][]models.Comment)
	for _, c := range comments {
		byThread[c.ThreadID] = append(byThread[c.ThreadID], c)
	}
	for i := range threads {
		decorate(&threads[i], byThread[threads[i].ID])
	}
	return threads, nil
}

func decorate(thread *models.Thread, comments []models.Comment) {
	thread.ContentHTML = markdown.Render(thread.Content)
	thread.Comments = BuildCommentTree(comments)
}

// BuildCommentTree assembles the nested reply structure from the flat
// comment list in a single pass over an id-indexed map. Comments whose
// parent is missing degrade to top level instead of vanishing.
func BuildCommentTree(comments []models.Comment) []*models.Comment {
	nodes := make(map[uint]*models.Comment, len(comments))
	ordered := make([]*models.Comment, 0, len(comments))
	for i := range comments {
		c := comments[i]
		c.ContentHTML = markdown.Render(c.Content)
		c.Replies = []*models.Comment{}
		nodes[c.ID] = &c
		ordered = append(ordered, &c)
	}

	roots := make([]*models.Comment, 0, len(ordered))
	for _, c := range ordered {
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}
