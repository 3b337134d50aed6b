package core

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type DB interface {
	Model(a any) *gorm.DB
	EstimatedCount(tableName string) (int64, error)
	DB() (*sql.DB, error)
}

type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}

type UserRepository interface {
	Insert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

type GroupRepository interface {
	Insert(ctx context.Context, group *Group) error
	GetBySlug(ctx context.Context, slug string) (Group, error)
	List(ctx context.Context) ([]Group, error)
}

// PostFilter scopes feed queries. Zero value selects all posts; at most one
// of the fields is set by the feed composer.
type PostFilter struct {
	GroupID   *uint
	AuthorID  *uint
	AuthorIDs []uint
}

type PostRepository interface {
	Insert(ctx context.Context, post *Post) error
	Get(ctx context.Context, id uint) (Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id uint) error
	// Page returns posts matching filter ordered by created_at desc,
	// id desc.
	Page(ctx context.Context, filter PostFilter, offset, limit int) ([]Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
}

type CommentRepository interface {
	Insert(ctx context.Context, comment *Comment) error
	ForPost(ctx context.Context, postID uint) ([]Comment, error)
}

type FollowRepository interface {
	// Insert creates the edge, silently doing nothing when it already
	// exists.
	Insert(ctx context.Context, edge *Follow) error
	Delete(ctx context.Context, userID, authorID uint) error
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	AuthorIDs(ctx context.Context, userID uint) ([]uint, error)
	CountFollowers(ctx context.Context, authorID uint) (int64, error)
}
