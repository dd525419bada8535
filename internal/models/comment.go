// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeletedContentSentinel replaces the content of a soft-deleted comment.
const DeletedContentSentinel = "[deleted]"

// Comment represents a remark on a post, optionally a single-level reply
// to another comment. PostID and ParentID are opaque references without
// existence checks. LikedBy (CommentLike rows) is the authoritative
// per-user like ledger; the Likes counter is best-effort and unfloored.
type Comment struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	PostID    string         `gorm:"not null;index:idx_comments_post" json:"postId"`
	ParentID  *string        `gorm:"index" json:"parentId"`
	Author    AuthorSnapshot `gorm:"embedded;embeddedPrefix:author_" json:"author"`
	Content   string         `gorm:"not null" json:"content"`
	Likes     int            `gorm:"default:0" json:"likes"`
	LikedBy   []CommentLike  `gorm:"foreignKey:CommentID;references:ID" json:"likedBy"`
	IsEdited  bool           `gorm:"default:false" json:"isEdited"`
	IsDeleted bool           `gorm:"default:false" json:"isDeleted"`
	CreatedAt time.Time      `gorm:"index:idx_comments_post" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// BeforeCreate assigns the opaque public id.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil && *c.ParentID != ""
}

// CommentLike is one member of a comment's likedBy set.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CommentID string    `gorm:"not null;uniqueIndex:idx_comment_like_member" json:"-"`
	UID       string    `gorm:"not null;uniqueIndex:idx_comment_like_member" json:"uid"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM
func (CommentLike) TableName() string {
	return "comment_likes"
}

// Thread is a parent comment with its replies attached, as returned by
// the comment listing. Parents are ordered newest-first across the post;
// replies are ordered oldest-first within their thread.
type Thread struct {
	Comment
	Replies []Comment `json:"replies"`
}
