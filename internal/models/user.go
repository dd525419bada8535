// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an author account in the Inkwell application.
// The external identity string UID is the only key external callers look
// users up by; the numeric primary key stays internal.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"-"`
	UID          string         `gorm:"unique;not null;index" json:"uid"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"unique;not null" json:"email"`
	PasswordHash string         `json:"-"`
	Bio          string         `json:"bio"`
	Location     string         `json:"location"`
	Avatar       string         `json:"avatar"`
	Website      string         `json:"website"`
	IsVerified   bool           `gorm:"default:false" json:"isVerified"`
	LastLoginAt  *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Profile is the projection of a User returned by follower/following
// listings.
type Profile struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Location string `json:"location"`
}

// AsProfile returns the listing projection of the user.
func (u *User) AsProfile() Profile {
	return Profile{
		UID:      u.UID,
		Name:     u.Name,
		Email:    u.Email,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
		Location: u.Location,
	}
}

// AsAuthorSnapshot captures the point-in-time author copy embedded into
// posts and comments at creation. Snapshots are never refreshed when the
// profile changes later.
func (u *User) AsAuthorSnapshot() AuthorSnapshot {
	return AuthorSnapshot{
		UID:    u.UID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Bio:    u.Bio,
	}
}
