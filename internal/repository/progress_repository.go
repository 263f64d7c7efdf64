package repository

import (
	"taxmaster_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) WithTx(tx *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: tx}
}

func (r *ProgressRepository) Create(cp *model.CourseProgress) error {
	return r.DB.Create(cp).Error
}

// Update persists the enrollment's own columns; lesson records are
// written separately.
func (r *ProgressRepository) Update(cp *model.CourseProgress) error {
	return r.DB.Omit(clause.Associations).Save(cp).Error
}

func (r *ProgressRepository) FindByUserAndCourse(userID uint, courseID string) (*model.CourseProgress, error) {
	var cp model.CourseProgress
	err := r.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("lesson_records.lesson_id ASC")
	}).Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error
	return &cp, err
}

func (r *ProgressRepository) FindAllByUser(userID uint) ([]model.CourseProgress, error) {
	var list []model.CourseProgress
	err := r.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("lesson_records.lesson_id ASC")
	}).Where("user_id = ?", userID).Order("enrolled_date ASC").Find(&list).Error
	return list, err
}

func (r *ProgressRepository) CreateLesson(l *model.LessonRecord) error {
	return r.DB.Create(l).Error
}

func (r *ProgressRepository) UpdateLesson(l *model.LessonRecord) error {
	return r.DB.Save(l).Error
}
