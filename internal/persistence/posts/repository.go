package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"plume/internal/core"
)

type Repository struct {
	Logger *slog.Logger
	DB     core.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "posts.Repository")
	return nil
}

func (r *Repository) Insert(ctx context.Context, post *core.Post) error {
	return r.DB.Model(&core.Post{}).WithContext(ctx).Create(post).Error
}

func (r *Repository) Get(ctx context.Context, id uint) (core.Post, error) {
	var post core.Post
	err := r.DB.Model(&core.Post{}).WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Post{}, fmt.Errorf("%w: post %d", core.ErrNotFound, id)
	}
	return post, err
}

func (r *Repository) Update(ctx context.Context, post *core.Post) error {
	return r.DB.Model(&core.Post{}).WithContext(ctx).
		Where("id = ?", post.ID).
		Select("text", "group_id", "image").
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.DB.Model(&core.Post{}).WithContext(ctx).Delete(&core.Post{}, id).Error
}

// Page returns posts matching filter ordered newest first. Equal timestamps
// fall back to id desc so the order stays stable.
func (r *Repository) Page(ctx context.Context, filter core.PostFilter, offset, limit int) ([]core.Post, error) {
	var posts []core.Post
	err := r.scoped(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *Repository) Count(ctx context.Context, filter core.PostFilter) (int64, error) {
	var count int64
	err := r.scoped(ctx, filter).Count(&count).Error
	return count, err
}

func (r *Repository) scoped(ctx context.Context, filter core.PostFilter) *gorm.DB {
	query := r.DB.Model(&core.Post{}).WithContext(ctx)

	switch {
	case filter.GroupID != nil:
		query = query.Where("group_id = ?", *filter.GroupID)
	case filter.AuthorID != nil:
		query = query.Where("author_id = ?", *filter.AuthorID)
	case filter.AuthorIDs != nil:
		query = query.Where("author_id IN (?)", filter.AuthorIDs)
	}

	return query
}
