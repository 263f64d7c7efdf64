package service

import (
	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"
)

type CatalogService struct {
	CatalogRepo *repository.CatalogRepository
}

func NewCatalogService(catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{CatalogRepo: catalogRepo}
}

func (s *CatalogService) List() ([]model.CatalogCourse, error) {
	return s.CatalogRepo.FindAll()
}
