package core

import (
	"strings"
	"time"
)

// User is a registered author. Authentication state lives in the web layer,
// only the identity and the credentials hash are stored here.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Group is a topic posts can be filed under. Groups are never deleted.
type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
}

func (Group) TableName() string {
	return "groups"
}

// Post has exactly one author and the author never changes after creation.
// CreatedAt defaults to now but may be set explicitly, fixtures rely on that
// to build historical ordering.
type Post struct {
	ID        uint `gorm:"primaryKey"`
	AuthorID  uint `gorm:"index;not null"`
	Author    User
	GroupID   *uint `gorm:"index"`
	Group     *Group
	Text      string `gorm:"not null"`
	Image     string
	CreatedAt time.Time `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}

// Comment is create-only, there is no edit operation.
type Comment struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"index;not null"`
	AuthorID  uint `gorm:"not null"`
	Author    User
	Text      string `gorm:"not null"`
	CreatedAt time.Time
}

func (Comment) TableName() string {
	return "comments"
}

// Follow is a directed subscription edge from UserID to AuthorID. The
// (user, author) pair is unique and self-edges are rejected both by the
// follow service and by a CHECK constraint in the migration.
type Follow struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_follows_user_author"`
	AuthorID  uint `gorm:"not null;uniqueIndex:idx_follows_user_author"`
	CreatedAt time.Time
}

func (Follow) TableName() string {
	return "follows"
}
