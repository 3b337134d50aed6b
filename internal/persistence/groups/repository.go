package groups

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"plume/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Insert(ctx context.Context, group *core.Group) error {
	return r.DB.Model(&core.Group{}).WithContext(ctx).Create(group).Error
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (core.Group, error) {
	var group core.Group
	err := r.DB.Model(&core.Group{}).WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Group{}, fmt.Errorf("%w: group %q", core.ErrNotFound, slug)
	}
	return group, err
}

func (r *Repository) List(ctx context.Context) ([]core.Group, error) {
	var groups []core.Group
	err := r.DB.Model(&core.Group{}).WithContext(ctx).Order("title").Find(&groups).Error
	return groups, err
}
