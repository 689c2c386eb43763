package mysql

import (
	"context"
	"errors"

	addonDomain "resto-pos-backend/internal/domain/addon"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddOnRepository struct{ db *gorm.DB }

func NewAddOnRepository(db *gorm.DB) *AddOnRepository { return &AddOnRepository{db: db} }

func (r *AddOnRepository) GetByID(ctx context.Context, id uint) (*addonDomain.Item, error) {
	var out addonDomain.Item
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, addonDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AddOnRepository) Search(ctx context.Context, text string) ([]addonDomain.Item, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		q = q.Where("name LIKE ?", "%"+text+"%")
	}
	var out []addonDomain.Item
	return out, q.Find(&out).Error
}

func (r *AddOnRepository) Upsert(ctx context.Context, it *addonDomain.Item) error {
	if it.ID == 0 {
		return r.db.WithContext(ctx).Create(it).Error
	}
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *AddOnRepository) BulkUpsert(ctx context.Context, items []addonDomain.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&items).Error
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
