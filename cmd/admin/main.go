// Package main provides admin management utilities for ForumVerse.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"forumverse/internal/config"
	"forumverse/internal/database"
	"forumverse/internal/models"

	"gorm.io/gorm"
)

// main provides a utility to manage admin and owner accounts from the shell.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <user_id>      - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <user_id>       - Demote user from admin")
		fmt.Println("  go run ./cmd/admin set-owner <user_id>    - Mark a user as the owner")
		fmt.Println("  go run ./cmd/admin list-admins            - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		requireArg("promote")
		setAdmin(db, os.Args[2], true)

	case "demote":
		requireArg("demote")
		setAdmin(db, os.Args[2], false)

	case "set-owner":
		requireArg("set-owner")
		setOwner(db, os.Args[2])

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func requireArg(cmd string) {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: go run ./cmd/admin %s <user_id>\n", cmd)
		os.Exit(1)
	}
}

func setAdmin(db *gorm.DB, userID string, makeAdmin bool) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsOwner {
		fmt.Printf("User %s (ID: %d) is the owner; admin status is fixed\n", user.Username, user.ID)
		os.Exit(1)
	}
	if user.IsAdmin == makeAdmin {
		fmt.Printf("User %s (ID: %d) already has is_admin=%v\n", user.Username, user.ID, makeAdmin)
		return
	}

	user.IsAdmin = makeAdmin
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	fmt.Printf("User %s (ID: %d) is_admin set to %v\n", user.Username, user.ID, makeAdmin)
}

func setOwner(db *gorm.DB, userID string) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	var existing models.User
	err := db.Where("is_owner = ?", true).First(&existing).Error
	if err == nil && existing.ID != user.ID {
		fmt.Printf("User %s (ID: %d) is already the owner; demote them first\n", existing.Username, existing.ID)
		os.Exit(1)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Database error: %v", err)
	}

	user.IsOwner = true
	user.IsAdmin = true
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	fmt.Printf("User %s (ID: %d) is now the owner\n", user.Username, user.ID)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ? OR is_owner = ?", true, true).
		Order("id ASC").Find(&admins).Error; err != nil {
		log.Fatalf("Failed to list admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found")
		return
	}
	for _, a := range admins {
		role := "admin"
		if a.IsOwner {
			role = "owner"
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", a.ID, a.Username, a.Email, role)
	}
}
