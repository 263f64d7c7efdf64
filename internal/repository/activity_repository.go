package repository

import (
	"taxmaster_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) WithTx(tx *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: tx}
}

func (r *ActivityRepository) Create(a *model.Activity) error {
	return r.DB.Create(a).Error
}

// FindRecent returns the newest entries first.
func (r *ActivityRepository) FindRecent(userID uint, limit int) ([]model.Activity, error) {
	var list []model.Activity
	err := r.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// TrimToCap drops everything older than the newest cap entries for the
// user. Called after every insert so the log stays bounded.
func (r *ActivityRepository) TrimToCap(userID uint, cap int) error {
	var keep []string
	err := r.DB.Model(&model.Activity{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(cap).
		Pluck("id", &keep).Error
	if err != nil {
		return err
	}
	if len(keep) < cap {
		return nil
	}
	return r.DB.Unscoped().
		Where("user_id = ? AND id NOT IN ?", userID, keep).
		Delete(&model.Activity{}).Error
}

// CompletionDates returns the timestamps of lesson completions, newest
// first, for streak computation.
func (r *ActivityRepository) CompletionDates(userID uint) ([]model.Activity, error) {
	var list []model.Activity
	err := r.DB.Select("date").
		Where("user_id = ? AND type = ?", userID, model.ActivityLessonCompleted).
		Order("date DESC").
		Find(&list).Error
	return list, err
}
