package database

import "forumverse/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Thread{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	}
}
