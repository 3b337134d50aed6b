package follows

import (
	"context"

	"gorm.io/gorm/clause"

	"plume/internal/core"
)

type Repository struct {
	DB core.DB
}

// Insert creates the edge. The unique index on (user_id, author_id) turns a
// duplicate into a no-op instead of an error, so concurrent follows of the
// same author collapse to a single edge.
func (r *Repository) Insert(ctx context.Context, edge *core.Follow) error {
	return r.DB.Model(&core.Follow{}).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error
}

func (r *Repository) Delete(ctx context.Context, userID, authorID uint) error {
	return r.DB.Model(&core.Follow{}).WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&core.Follow{}).Error
}

func (r *Repository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&core.Follow{}).WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) AuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&core.Follow{}).WithContext(ctx).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	return ids, err
}

func (r *Repository) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&core.Follow{}).WithContext(ctx).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
