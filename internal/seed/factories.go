// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"forumverse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999))
	user := &models.User{
		Username:    username,
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
	}
	user.AvatarURL = models.DefaultAvatarURL(user.Name())

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.PasswordHash = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.PasswordHash = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildThread constructs a thread struct but does not persist it.
// Useful for batching.
func (f *Factory) BuildThread(author *models.User, overrides ...func(*models.Thread)) *models.Thread {
	thread := &models.Thread{
		Title:    gofakeit.Sentence(6),
		Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
		AuthorID: &author.ID,
		Upvotes:  1,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	thread.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(thread)
	}
	return thread
}

// CreateThreadsBatch persists multiple threads in a single DB call when possible.
func (f *Factory) CreateThreadsBatch(threads []*models.Thread) error {
	if f.opts.DryRun {
		for _, t := range threads {
			f.nextID++
			t.ID = f.nextID
		}
		log.Printf("[dry-run] CreateThreadsBatch: %d threads (no DB write)", len(threads))
		return nil
	}
	return f.db.Create(&threads).Error
}

// CreateComment persists a comment on the given thread, optionally as a
// reply, and keeps the thread's comment count in step.
func (f *Factory) CreateComment(thread *models.Thread, author *models.User, parentID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		ThreadID: thread.ID,
		ParentID: parentID,
		AuthorID: &author.ID,
		Content:  gofakeit.Paragraph(1, 2, 6, " "),
		Upvotes:  1,
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Thread{}).Where("id = ?", thread.ID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFollow persists a follow edge; duplicate edges are skipped quietly.
func (f *Factory) CreateFollow(followerID, followingID uint) error {
	if followerID == followingID {
		return nil
	}
	if f.opts.DryRun {
		return nil
	}
	err := f.db.Create(&models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// ApplyRandomVotes sprinkles vote counts over a thread so seeded data has
// believable scores.
func (f *Factory) ApplyRandomVotes(thread *models.Thread, maxVotes int) error {
	if f.opts.DryRun || maxVotes <= 0 {
		return nil
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(thread.ID)))
	up := r.Intn(maxVotes)
	downCap := maxVotes / 4
	if downCap < 1 {
		downCap = 1
	}
	down := r.Intn(downCap)
	return f.db.Model(&models.Thread{}).Where("id = ?", thread.ID).
		Updates(map[string]any{
			"upvotes":   gorm.Expr("upvotes + ?", up),
			"downvotes": gorm.Expr("downvotes + ?", down),
		}).Error
}
