package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"brewbuy/internal/domain"
)

type AdminUserRepo struct{ db *gorm.DB }

func NewAdminUserRepo(db *gorm.DB) *AdminUserRepo { return &AdminUserRepo{db: db} }

func (r *AdminUserRepo) Create(ctx context.Context, a *domain.AdminUser) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if isDupKey(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *AdminUserRepo) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	var a domain.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminUserRepo) List(ctx context.Context) ([]domain.AdminUser, error) {
	var out []domain.AdminUser
	err := r.db.WithContext(ctx).Order("username asc").Find(&out).Error
	return out, err
}

// UpdatePassword 单行 UPDATE，并发修改以最后一次提交为准
func (r *AdminUserRepo) UpdatePassword(ctx context.Context, username, hash string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.AdminUser{}).
		Where("username = ?", username).
		Update("password_hash", hash)
	return res.RowsAffected > 0, res.Error
}

func (r *AdminUserRepo) Delete(ctx context.Context, username string) (bool, error) {
	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&domain.AdminUser{})
	return res.RowsAffected > 0, res.Error
}
