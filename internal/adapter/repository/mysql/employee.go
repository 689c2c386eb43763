package mysql

import (
	"context"
	"errors"

	empDomain "resto-pos-backend/internal/domain/employee"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository { return &EmployeeRepository{db: db} }

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (*empDomain.Employee, error) {
	var out empDomain.Employee
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, empDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *EmployeeRepository) Search(ctx context.Context, text string) ([]empDomain.Employee, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		like := "%" + text + "%"
		q = q.Where("name LIKE ? OR phone LIKE ? OR position LIKE ?", like, like, like)
	}
	var out []empDomain.Employee
	return out, q.Find(&out).Error
}

func (r *EmployeeRepository) Upsert(ctx context.Context, e *empDomain.Employee) error {
	if e.ID == 0 {
		return r.db.WithContext(ctx).Create(e).Error
	}
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EmployeeRepository) BulkUpsert(ctx context.Context, items []empDomain.Employee) (int, error) {
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

func (r *EmployeeRepository) CountByPhone(ctx context.Context, phone string, excludeID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&empDomain.Employee{}).
		Where("phone = ? AND id <> ?", phone, excludeID).
		Count(&n).Error
	return n, err
}
