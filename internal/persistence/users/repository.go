package users

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

func (r *Repository) Insert(ctx context.Context, user *core.User) error {
	return r.DB.Model(&core.User{}).WithContext(ctx).Create(user).Error
}

func (r *Repository) GetByID(ctx context.Context, id uint) (core.User, error) {
	var user core.User
	err := r.DB.Model(&core.User{}).WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.User{}, fmt.Errorf("%w: user %d", core.ErrNotFound, id)
	}
	return user, err
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (core.User, error) {
	var user core.User
	err := r.DB.Model(&core.User{}).WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.User{}, fmt.Errorf("%w: user %q", core.ErrNotFound, username)
	}
	return user, err
}
