package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"brewbuy/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateWithItems 订单与明细同一事务写入
func (r *OrderRepo) CreateWithItems(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := o.Items
		o.Items = nil
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = o.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		o.Items = items
		return nil
	})
}

// FindByIDAndUser 不存在与不属于该用户返回同一结果 (nil, nil)
func (r *OrderRepo) FindByIDAndUser(ctx context.Context, id, userID uint) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var os []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&os).Error
	return os, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Model(o).Update("status", o.Status).Error
}

// DeleteWithItems 先删明细再删订单；FK 上的 ON DELETE CASCADE 只是兜底
func (r *OrderRepo) DeleteWithItems(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, id).Error
	})
}
