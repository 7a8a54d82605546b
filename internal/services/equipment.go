package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	AttachImages(ctx context.Context, id uint64, imagePath, thumbnailPath string) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	loanRepo      repositories.LoanRepositoryInterface
	categoryRepo  repositories.EquipmentCategoryRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	loanRepo repositories.LoanRepositoryInterface,
	categoryRepo repositories.EquipmentCategoryRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		loanRepo:      loanRepo,
		categoryRepo:  categoryRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return s.equipmentRepo.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	if _, err := s.categoryRepo.FindCategory(ctx, payload.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("Указанная категория не существует")
		}
		return nil, err
	}

	// Проверка до INSERT дает понятную ошибку; уникальный индекс в БД закрывает гонку
	existing, err := s.equipmentRepo.FindByInventoryNumber(ctx, payload.InventoryNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateInventoryNo
	}

	status := payload.Status
	if status == "" {
		status = entities.EquipmentStatusAvailable
	}

	eq := entities.Equipment{
		InventoryNumber: payload.InventoryNumber,
		Name:            payload.Name,
		CategoryID:      payload.CategoryID,
		Status:          status,
		Location:        payload.Location,
		Description:     payload.Description,
	}

	id, err := s.equipmentRepo.CreateEquipment(ctx, eq)
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Оборудование создано", zap.Uint64("id", id), zap.String("inventoryNumber", payload.InventoryNumber))
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	eq, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.InventoryNumber != nil && *payload.InventoryNumber != eq.InventoryNumber {
		existing, err := s.equipmentRepo.FindByInventoryNumber(ctx, *payload.InventoryNumber)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.ErrDuplicateInventoryNo
		}
		eq.InventoryNumber = *payload.InventoryNumber
	}
	if payload.Name != nil {
		eq.Name = *payload.Name
	}
	if payload.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategory(ctx, *payload.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewInvalidInputError("Указанная категория не существует")
			}
			return nil, err
		}
		eq.CategoryID = *payload.CategoryID
	}
	if payload.Status != nil {
		if err := s.validateStatusChange(ctx, eq, *payload.Status); err != nil {
			return nil, err
		}
		eq.Status = *payload.Status
	}
	if payload.Location != nil {
		eq.Location = payload.Location
	}
	if payload.Description != nil {
		eq.Description = payload.Description
	}

	if err := s.equipmentRepo.UpdateEquipment(ctx, *eq); err != nil {
		s.logger.Error("Ошибка при обновлении оборудования", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return s.equipmentRepo.FindEquipment(ctx, id)
}

// validateStatusChange не дает руками увести оборудование из-под живой выдачи.
func (s *EquipmentService) validateStatusChange(ctx context.Context, eq *entities.Equipment, newStatus string) error {
	if eq.Status == newStatus {
		return nil
	}
	if newStatus == entities.EquipmentStatusRetired || newStatus == entities.EquipmentStatusMaintenance {
		busy, err := s.loanRepo.HasActiveLoanForEquipment(ctx, eq.ID)
		if err != nil {
			return err
		}
		if busy {
			return apperrors.NewInvalidInputError("Нельзя вывести оборудование из оборота: по нему есть активная заявка")
		}
	}
	return nil
}

func (s *EquipmentService) AttachImages(ctx context.Context, id uint64, imagePath, thumbnailPath string) error {
	if _, err := s.equipmentRepo.FindEquipment(ctx, id); err != nil {
		return err
	}
	return s.equipmentRepo.UpdateEquipmentImages(ctx, id, imagePath, thumbnailPath)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	busy, err := s.loanRepo.HasActiveLoanForEquipment(ctx, id)
	if err != nil {
		return err
	}
	if busy {
		return apperrors.NewInvalidInputError("Нельзя удалить оборудование: по нему есть активная заявка")
	}
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}
