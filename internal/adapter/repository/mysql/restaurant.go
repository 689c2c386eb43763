package mysql

import (
	"context"
	"errors"

	restoDomain "resto-pos-backend/internal/domain/restaurant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRowID pins the singleton settings row.
const profileRowID uint = 1

type RestaurantRepository struct{ db *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Get(ctx context.Context) (*restoDomain.Profile, error) {
	var out restoDomain.Profile
	err := r.db.WithContext(ctx).First(&out, profileRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, restoDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RestaurantRepository) Save(ctx context.Context, p *restoDomain.Profile) error {
	p.ID = profileRowID
	// first save inserts the row, later saves overwrite it
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(p).Error
}
