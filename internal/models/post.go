// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthorSnapshot is a point-in-time copy of the authoring user, embedded
// into posts and comments. It is a snapshot, not a live reference: profile
// edits after publish do not propagate here.
type AuthorSnapshot struct {
	UID    string `gorm:"not null;index" json:"uid"`
	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"not null" json:"email"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// Section is one ordered content block of a post.
type Section struct {
	PostID     string `gorm:"primaryKey" json:"-"`
	Position   int    `gorm:"primaryKey" json:"-"`
	SubHeading string `gorm:"not null" json:"subHeading"`
	Content    string `gorm:"type:text;not null" json:"content"`
}

// TableName specifies the table name for GORM
func (Section) TableName() string {
	return "post_sections"
}

// Post represents a published unit of content in the Inkwell application.
// Likes and Views are denormalized engagement counters maintained by
// best-effort increments; the authoritative "did user X like this" ledger
// lives in the user's InteractionEntry set, and the two may drift.
type Post struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Category        string         `gorm:"not null;default:'Uncategorized';index" json:"category"`
	Summary         string         `json:"summary"`
	Sections        []Section      `gorm:"foreignKey:PostID;references:ID" json:"sections"`
	Author          AuthorSnapshot `gorm:"embedded;embeddedPrefix:author_" json:"author"`
	AuthorUID       string         `gorm:"not null;index" json:"authorUid"`
	TableOfContents []string       `gorm:"serializer:json" json:"tableOfContents"`
	Tags            []string       `gorm:"serializer:json" json:"tags"`
	ReadTime        string         `gorm:"default:'5 min read'" json:"readTime"`
	Published       bool           `gorm:"default:true" json:"published"`
	Featured        bool           `gorm:"default:false" json:"featured"`
	Likes           int            `gorm:"default:0" json:"likes"`
	Views           int            `gorm:"default:0" json:"views"`
	CreatedAt       time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// BeforeCreate assigns the opaque public id.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostSummary is the projection returned by saved/liked listings.
type PostSummary struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Summary   string         `json:"summary"`
	Category  string         `json:"category"`
	CreatedAt time.Time      `json:"createdAt"`
	Author    AuthorSnapshot `json:"author"`
}

// AsSummary returns the listing projection of the post.
func (p *Post) AsSummary() PostSummary {
	return PostSummary{
		ID:        p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		Author:    p.Author,
	}
}
