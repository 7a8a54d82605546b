package services

import (
	"context"

	"go.uber.org/zap"

	"lending-system/internal/entities"
	"lending-system/internal/repositories"
)

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context) ([]entities.Department, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, name string) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uint64, name string) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewDepartmentService(departmentRepo repositories.DepartmentRepositoryInterface, logger *zap.Logger) DepartmentServiceInterface {
	return &DepartmentService{departmentRepo: departmentRepo, logger: logger}
}

func (s *DepartmentService) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	return s.departmentRepo.GetDepartments(ctx)
}

func (s *DepartmentService) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	return s.departmentRepo.FindDepartment(ctx, id)
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, name string) (*entities.Department, error) {
	id, err := s.departmentRepo.CreateDepartment(ctx, name)
	if err != nil {
		s.logger.Error("Ошибка при создании кафедры", zap.Error(err))
		return nil, err
	}
	return s.departmentRepo.FindDepartment(ctx, id)
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint64, name string) (*entities.Department, error) {
	if err := s.departmentRepo.UpdateDepartment(ctx, id, name); err != nil {
		return nil, err
	}
	return s.departmentRepo.FindDepartment(ctx, id)
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint64) error {
	return s.departmentRepo.DeleteDepartment(ctx, id)
}
