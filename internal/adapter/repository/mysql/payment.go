package mysql

import (
	"context"
	"errors"

	payDomain "resto-pos-backend/internal/domain/payment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*payDomain.Payment, error) {
	var out payDomain.Payment
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PaymentRepository) Search(ctx context.Context, text string) ([]payDomain.Payment, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		like := "%" + text + "%"
		q = q.Where("employee_name LIKE ? OR note LIKE ? OR type LIKE ?", like, like, like)
	}
	var out []payDomain.Payment
	return out, q.Find(&out).Error
}

func (r *PaymentRepository) Upsert(ctx context.Context, p *payDomain.Payment) error {
	if p.ID == 0 {
		return r.db.WithContext(ctx).Create(p).Error
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) BulkUpsert(ctx context.Context, items []payDomain.Payment) (int, error) {
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
