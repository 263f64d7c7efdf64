package repository

import (
	"errors"

	"taxmaster_backend/internal/model"

	"gorm.io/gorm"
)

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) WithTx(tx *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: tx}
}

// GetOrCreate returns the user's stats row, creating the zeroed row on
// first access.
func (r *StatsRepository) GetOrCreate(userID uint) (*model.Stats, error) {
	var stats model.Stats
	err := r.DB.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = model.Stats{UserID: userID}
		if err := r.DB.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepository) Update(stats *model.Stats) error {
	return r.DB.Save(stats).Error
}
