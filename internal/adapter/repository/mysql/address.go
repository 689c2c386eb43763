package mysql

import (
	"context"
	"errors"

	addrDomain "resto-pos-backend/internal/domain/address"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddressRepository struct{ db *gorm.DB }

func NewAddressRepository(db *gorm.DB) *AddressRepository { return &AddressRepository{db: db} }

func (r *AddressRepository) GetByID(ctx context.Context, id uint) (*addrDomain.Address, error) {
	var out addrDomain.Address
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, addrDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AddressRepository) Search(ctx context.Context, text string) ([]addrDomain.Address, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		like := "%" + text + "%"
		q = q.Where("label LIKE ? OR street LIKE ? OR city LIKE ?", like, like, like)
	}
	var out []addrDomain.Address
	return out, q.Find(&out).Error
}

func (r *AddressRepository) Upsert(ctx context.Context, a *addrDomain.Address) error {
	if a.ID == 0 {
		return r.db.WithContext(ctx).Create(a).Error
	}
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AddressRepository) BulkUpsert(ctx context.Context, items []addrDomain.Address) (int, error) {
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
