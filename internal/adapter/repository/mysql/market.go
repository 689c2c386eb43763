package mysql

import (
	"context"
	"errors"

	marketDomain "resto-pos-backend/internal/domain/market"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MarketListRepository struct{ db *gorm.DB }

func NewMarketListRepository(db *gorm.DB) *MarketListRepository {
	return &MarketListRepository{db: db}
}

func (r *MarketListRepository) GetByID(ctx context.Context, id uint) (*marketDomain.List, error) {
	var out marketDomain.List
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, marketDomain.ErrListNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MarketListRepository) Search(ctx context.Context, text string) ([]marketDomain.List, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		q = q.Where("title LIKE ?", "%"+text+"%")
	}
	var out []marketDomain.List
	return out, q.Find(&out).Error
}

func (r *MarketListRepository) Upsert(ctx context.Context, l *marketDomain.List) error {
	if l.ID == 0 {
		return r.db.WithContext(ctx).Create(l).Error
	}
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *MarketListRepository) BulkUpsert(ctx context.Context, lists []marketDomain.List) (int, error) {
	if len(lists) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&lists).Error
	})
	if err != nil {
		return 0, err
	}
	return len(lists), nil
}

type MarketItemRepository struct{ db *gorm.DB }

func NewMarketItemRepository(db *gorm.DB) *MarketItemRepository {
	return &MarketItemRepository{db: db}
}

func (r *MarketItemRepository) GetByID(ctx context.Context, id uint) (*marketDomain.Item, error) {
	var out marketDomain.Item
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, marketDomain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MarketItemRepository) Search(ctx context.Context, text string) ([]marketDomain.Item, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		like := "%" + text + "%"
		q = q.Where("name LIKE ? OR unit LIKE ?", like, like)
	}
	var out []marketDomain.Item
	return out, q.Find(&out).Error
}

func (r *MarketItemRepository) Upsert(ctx context.Context, it *marketDomain.Item) error {
	if it.ID == 0 {
		return r.db.WithContext(ctx).Create(it).Error
	}
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *MarketItemRepository) BulkUpsert(ctx context.Context, items []marketDomain.Item) (int, error) {
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

func (r *MarketItemRepository) SetPurchased(ctx context.Context, id uint, purchased bool) error {
	res := r.db.WithContext(ctx).Model(&marketDomain.Item{}).
		Where("id = ?", id).
		Update("purchased", purchased)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return marketDomain.ErrItemNotFound
	}
	return nil
}
