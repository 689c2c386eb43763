package mysql

import (
	"context"
	"errors"

	prodDomain "resto-pos-backend/internal/domain/product"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*prodDomain.Product, error) {
	var out prodDomain.Product
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, prodDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepository) Search(ctx context.Context, text string) ([]prodDomain.Product, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		like := "%" + text + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	var out []prodDomain.Product
	return out, q.Find(&out).Error
}

func (r *ProductRepository) Upsert(ctx context.Context, p *prodDomain.Product) error {
	if p.ID == 0 {
		return r.db.WithContext(ctx).Create(p).Error
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) BulkUpsert(ctx context.Context, items []prodDomain.Product) (int, error) {
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
