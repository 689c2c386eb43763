package mysql

import (
	"context"
	"errors"

	absDomain "resto-pos-backend/internal/domain/absence"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AbsenceRepository struct{ db *gorm.DB }

func NewAbsenceRepository(db *gorm.DB) *AbsenceRepository { return &AbsenceRepository{db: db} }

func (r *AbsenceRepository) GetByID(ctx context.Context, id uint) (*absDomain.Absence, error) {
	var out absDomain.Absence
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, absDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AbsenceRepository) Search(ctx context.Context, text string) ([]absDomain.Absence, error) {
	q := r.db.WithContext(ctx).Order("id")
	if text != "" {
		like := "%" + text + "%"
		q = q.Where("employee_name LIKE ? OR reason LIKE ?", like, like)
	}
	var out []absDomain.Absence
	return out, q.Find(&out).Error
}

func (r *AbsenceRepository) Upsert(ctx context.Context, a *absDomain.Absence) error {
	if a.ID == 0 {
		return r.db.WithContext(ctx).Create(a).Error
	}
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AbsenceRepository) BulkUpsert(ctx context.Context, items []absDomain.Absence) (int, error) {
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
