package comments

import (
	"context"

	"plume/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Insert(ctx context.Context, comment *core.Comment) error {
	return r.DB.Model(&core.Comment{}).WithContext(ctx).Create(comment).Error
}

func (r *Repository) ForPost(ctx context.Context, postID uint) ([]core.Comment, error) {
	var comments []core.Comment
	err := r.DB.Model(&core.Comment{}).WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}
