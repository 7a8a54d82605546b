package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-system/config"
	"lending-system/internal/services"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/filestorage"
	"lending-system/pkg/utils"
)

// UploadController принимает фото оборудования: оригинал и миниатюру.
type UploadController struct {
	fileStorage      filestorage.FileStorageInterface
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewUploadController(
	fileStorage filestorage.FileStorageInterface,
	equipmentService services.EquipmentServiceInterface,
	logger *zap.Logger,
) *UploadController {
	return &UploadController{
		fileStorage:      fileStorage,
		equipmentService: equipmentService,
		logger:           logger,
	}
}

func (ctrl *UploadController) saveFormFile(ctx echo.Context, field, uploadContext string) (string, error) {
	rules, ok := config.UploadContexts[uploadContext]
	if !ok {
		return "", apperrors.NewHttpError(http.StatusInternalServerError, "Неизвестный контекст загрузки", apperrors.ErrInternalServer,
			map[string]interface{}{"context": uploadContext})
	}

	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return "", apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest,
			map[string]interface{}{"field": field})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil)
	}
	defer src.Close()

	if err := utils.ValidateFile(fileHeader, src, uploadContext); err != nil {
		return "", apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrBadRequest, nil)
	}

	savedPath, err := ctrl.fileStorage.Save(src, fileHeader.Filename, rules.PathPrefix)
	if err != nil {
		ctrl.logger.Error("Ошибка сохранения файла", zap.String("field", field), zap.Error(err))
		return "", apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка сохранения файла", err, nil)
	}
	return savedPath, nil
}

// UploadEquipmentImages сохраняет оригинал (поле image) и опциональную
// миниатюру (поле thumbnail), затем привязывает пути к оборудованию.
func (ctrl *UploadController) UploadEquipmentImages(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID оборудования", err, nil),
			ctrl.logger)
	}

	imagePath, err := ctrl.saveFormFile(ctx, "image", "equipment_image")
	if err != nil {
		return utils.ErrorResponse(ctx, err, ctrl.logger)
	}

	thumbnailPath := imagePath
	if _, errThumb := ctx.FormFile("thumbnail"); errThumb == nil {
		thumbnailPath, err = ctrl.saveFormFile(ctx, "thumbnail", "equipment_thumbnail")
		if err != nil {
			return utils.ErrorResponse(ctx, err, ctrl.logger)
		}
	}

	if err := ctrl.equipmentService.AttachImages(ctx.Request().Context(), id, imagePath, thumbnailPath); err != nil {
		ctrl.logger.Error("Не удалось привязать изображения к оборудованию", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, ctrl.logger)
	}

	response := map[string]interface{}{
		"image_path":     imagePath,
		"thumbnail_path": thumbnailPath,
		"image_url":      "/uploads/" + imagePath,
	}
	return utils.SuccessResponse(ctx, response, "Файлы успешно загружены", http.StatusOK)
}
