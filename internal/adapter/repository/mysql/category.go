package mysql

import (
	"context"
	"errors"

	catDomain "resto-pos-backend/internal/domain/category"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) *CategoryRepository { return &CategoryRepository{db: db} }

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*catDomain.Category, error) {
	var out catDomain.Category
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CategoryRepository) Search(ctx context.Context, text string) ([]catDomain.Category, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		q = q.Where("name LIKE ?", "%"+text+"%")
	}
	var out []catDomain.Category
	return out, q.Find(&out).Error
}

func (r *CategoryRepository) Upsert(ctx context.Context, c *catDomain.Category) error {
	if c.ID == 0 {
		return r.db.WithContext(ctx).Create(c).Error
	}
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CategoryRepository) BulkUpsert(ctx context.Context, items []catDomain.Category) (int, error) {
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

func (r *CategoryRepository) CountByName(ctx context.Context, name string, excludeID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catDomain.Category{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&n).Error
	return n, err
}
