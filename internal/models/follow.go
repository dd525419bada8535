package models

import "time"

// FollowingEntry is one member of a user's "following" set. Its mirror on
// the other side of the edge is a FollowerEntry owned by the target user.
// The two sides are written independently, without a transaction, so the
// edge can be observed half-written if the second write fails.
type FollowingEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_following_member" json:"user_id"`
	TargetID  uint      `gorm:"not null;uniqueIndex:idx_following_member" json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FollowingEntry) TableName() string {
	return "following_entries"
}

// FollowerEntry is one member of a user's "followers" set.
type FollowerEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_follower_member" json:"user_id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_member" json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FollowerEntry) TableName() string {
	return "follower_entries"
}
