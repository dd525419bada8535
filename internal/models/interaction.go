package models

import "time"

// InteractionKind distinguishes the two per-user post reference sets.
type InteractionKind string

const (
	// InteractionLiked marks membership in the user's likedPosts set.
	InteractionLiked InteractionKind = "liked"
	// InteractionSaved marks membership in the user's savedPosts set.
	InteractionSaved InteractionKind = "saved"
)

// InteractionEntry is one member of a user's likedPosts or savedPosts set.
// PostID is an opaque reference and deliberately carries no foreign key:
// an interaction may be recorded against a post id that does not resolve.
type InteractionEntry struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_interaction_member" json:"user_id"`
	PostID    string          `gorm:"not null;uniqueIndex:idx_interaction_member" json:"post_id"`
	Kind      InteractionKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_interaction_member" json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name for GORM
func (InteractionEntry) TableName() string {
	return "interaction_entries"
}
