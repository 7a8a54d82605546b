package services

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"lending-system/internal/authz"
	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/utils"
)

type ReportServiceInterface interface {
	GetReportForExcel(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error)
	GetReportDTOs(ctx context.Context, filter entities.ReportFilter) ([]dto.ReportItemDTO, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	userRepo   repositories.UserRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// getAndAuthorizeReport проверяет право на отчет и режет выборку по скоупам актора.
func (s *reportService) getAndAuthorizeReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	permissionsMap, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	authContext := authz.Context{Actor: actor, Permissions: permissionsMap}
	if !authz.CanDo(authz.ReportsView, authContext) {
		s.logger.Warn("Попытка доступа к отчету без права reports:view", zap.Uint64("userID", userID))
		return nil, apperrors.ErrForbidden
	}

	filter.Actor = actor
	filter.PermissionsMap = permissionsMap

	return s.reportRepo.GetLoanReport(ctx, filter)
}

func (s *reportService) GetReportForExcel(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error) {
	return s.getAndAuthorizeReport(ctx, filter)
}

func (s *reportService) GetReportDTOs(ctx context.Context, filter entities.ReportFilter) ([]dto.ReportItemDTO, error) {
	items, err := s.getAndAuthorizeReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	formatNullTime := func(t sql.NullTime) string {
		if t.Valid {
			return t.Time.Format(time.RFC3339)
		}
		return ""
	}

	dtos := make([]dto.ReportItemDTO, len(items))
	for i, item := range items {
		dtos[i] = dto.ReportItemDTO{
			LoanID:          item.LoanID,
			BorrowerFio:     item.BorrowerFio,
			BorrowerEmail:   item.BorrowerEmail,
			EquipmentName:   item.EquipmentName,
			InventoryNumber: item.InventoryNumber,
			CategoryName:    item.CategoryName.String,
			Status:          item.Status,
			StartDate:       item.StartDate.Format(time.RFC3339),
			DueDate:         item.DueDate.Format(time.RFC3339),
			CheckedOutAt:    formatNullTime(item.CheckedOutAt),
			ReturnedAt:      formatNullTime(item.ReturnedAt),
			IsLate:          item.IsLate,
		}
	}
	return dtos, nil
}
