package database

import "inkwell/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.FollowingEntry{},
		&models.FollowerEntry{},
		&models.InteractionEntry{},
		&models.Post{},
		&models.Section{},
		&models.Comment{},
		&models.CommentLike{},
	}
}
