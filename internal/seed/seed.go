package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"forumverse/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumThreads  int
	ShouldClean bool
	DryRun      bool
	SkipBcrypt  bool
	MaxDays     int
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d threads...", opts.NumUsers, opts.NumThreads)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))

	if len(users) == 0 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	threads := make([]*models.Thread, 0, opts.NumThreads)
	for i := 0; i < opts.NumThreads; i++ {
		author := users[r.Intn(len(users))]
		threads = append(threads, f.BuildThread(author))
	}
	if len(threads) > 0 {
		if err := f.CreateThreadsBatch(threads); err != nil {
			return fmt.Errorf("failed to create threads: %w", err)
		}
	}
	log.Printf("✓ %d threads created", len(threads))

	commentCount, err := seedComments(f, r, threads, users)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", commentCount)

	followCount, err := seedFollows(f, r, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow edges created", followCount)

	for _, t := range threads {
		if err := f.ApplyRandomVotes(t, 40); err != nil {
			return fmt.Errorf("failed to apply votes: %w", err)
		}
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// seedComments creates a few top-level comments per thread and a reply to
// some of them so the tree shape shows up in the UI.
func seedComments(f *Factory, r *rand.Rand, threads []*models.Thread, users []*models.User) (int, error) {
	count := 0
	for _, t := range threads {
		numComments := r.Intn(6)
		for i := 0; i < numComments; i++ {
			author := users[r.Intn(len(users))]
			comment, err := f.CreateComment(t, author, nil)
			if err != nil {
				return count, err
			}
			count++

			if r.Intn(3) == 0 {
				replier := users[r.Intn(len(users))]
				if _, err := f.CreateComment(t, replier, &comment.ID); err != nil {
					return count, err
				}
				count++
			}
		}
	}
	return count, nil
}

// seedFollows gives each user a handful of random follows.
func seedFollows(f *Factory, r *rand.Rand, users []*models.User) (int, error) {
	count := 0
	for _, u := range users {
		numFollows := r.Intn(5)
		for i := 0; i < numFollows; i++ {
			target := users[r.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			if err := f.CreateFollow(u.ID, target.ID); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, followers, comments, threads, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
