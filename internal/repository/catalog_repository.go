package repository

import (
	"taxmaster_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) FindAll() ([]model.CatalogCourse, error) {
	var list []model.CatalogCourse
	err := r.DB.Order("position ASC").Find(&list).Error
	return list, err
}

func (r *CatalogRepository) FindByCourseID(courseID string) (*model.CatalogCourse, error) {
	var c model.CatalogCourse
	err := r.DB.Where("course_id = ?", courseID).First(&c).Error
	return &c, err
}
