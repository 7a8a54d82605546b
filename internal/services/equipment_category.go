package services

import (
	"context"

	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
)

type EquipmentCategoryServiceInterface interface {
	GetCategories(ctx context.Context, limit, offset uint64) ([]entities.EquipmentCategory, uint64, error)
	FindCategory(ctx context.Context, id uint64) (*entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (*entities.EquipmentCategory, error)
	UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateEquipmentCategoryDTO) (*entities.EquipmentCategory, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type EquipmentCategoryService struct {
	categoryRepo repositories.EquipmentCategoryRepositoryInterface
	logger       *zap.Logger
}

func NewEquipmentCategoryService(
	categoryRepo repositories.EquipmentCategoryRepositoryInterface,
	logger *zap.Logger,
) EquipmentCategoryServiceInterface {
	return &EquipmentCategoryService{categoryRepo: categoryRepo, logger: logger}
}

func (s *EquipmentCategoryService) GetCategories(ctx context.Context, limit, offset uint64) ([]entities.EquipmentCategory, uint64, error) {
	return s.categoryRepo.GetCategories(ctx, limit, offset)
}

func (s *EquipmentCategoryService) FindCategory(ctx context.Context, id uint64) (*entities.EquipmentCategory, error) {
	return s.categoryRepo.FindCategory(ctx, id)
}

func (s *EquipmentCategoryService) CreateCategory(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (*entities.EquipmentCategory, error) {
	id, err := s.categoryRepo.CreateCategory(ctx, payload)
	if err != nil {
		s.logger.Error("Ошибка при создании категории", zap.Error(err))
		return nil, err
	}
	return s.categoryRepo.FindCategory(ctx, id)
}

func (s *EquipmentCategoryService) UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateEquipmentCategoryDTO) (*entities.EquipmentCategory, error) {
	category, err := s.categoryRepo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	name := category.Name
	description := category.Description
	if payload.Name != nil {
		name = *payload.Name
	}
	if payload.Description != nil {
		description = *payload.Description
	}

	if err := s.categoryRepo.UpdateCategory(ctx, id, name, description); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindCategory(ctx, id)
}

func (s *EquipmentCategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	return s.categoryRepo.DeleteCategory(ctx, id)
}
