package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 100 * 1024 * 1024 // 100MB

var allowedUploadTypes = map[string]bool{
	"application/pdf":  true,
	"application/zip":  true,
	"application/json": true,
	"image/png":        true,
	"image/jpeg":       true,
	"image/gif":        true,
	"image/webp":       true,
	"video/mp4":        true,
	"text/plain":       true,
}

type UploadsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUploadsController(db *gorm.DB, cfg *config.Config) *UploadsController {
	return &UploadsController{DB: db, Cfg: cfg}
}

type GenerateUploadInput struct {
	FileName string `json:"file_name" validate:"required"`
	FileType string `json:"file_type" validate:"required"`
	FileSize int64  `json:"file_size" validate:"required,gt=0"`
}

// GenerateUploadUrl validates the request, records a pending upload and hands
// back the upload URL plus the file handle.
func (uc *UploadsController) GenerateUploadUrl(c *fiber.Ctx) error {
	var input GenerateUploadInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	if input.FileSize > maxUploadSize {
		return utils.BadRequest(c, "File size exceeds the 100MB limit")
	}

	if !allowedUploadTypes[input.FileType] {
		return utils.BadRequest(c, "File type is not allowed")
	}

	sanitized := utils.SanitizeFileName(input.FileName)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	fileID := fmt.Sprintf("file_%d_%s", time.Now().UnixNano(), suffix)
	uploadURL := fmt.Sprintf("%s/%s/%s", uc.Cfg.UploadBaseURL, fileID, sanitized)

	upload := models.UploadedFile{
		FileID:   fileID,
		FileName: sanitized,
		FileType: input.FileType,
		FileSize: input.FileSize,
		FileURL:  uploadURL,
		Status:   models.UploadPending,
	}

	if err := uc.DB.Create(&upload).Error; err != nil {
		return utils.InternalServerError(c, "Could not register upload")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"upload_url": uploadURL,
		"file_id":    fileID,
	})
}

func (uc *UploadsController) findUpload(c *fiber.Ctx) (*models.UploadedFile, error) {
	fileID := c.Params("fileId")
	if !strings.HasPrefix(fileID, "file_") {
		return nil, utils.BadRequest(c, "Invalid file ID")
	}

	var upload models.UploadedFile
	if err := uc.DB.Where("file_id = ?", fileID).First(&upload).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "File not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}
	return &upload, nil
}

func (uc *UploadsController) ConfirmFileUpload(c *fiber.Ctx) error {
	upload, errResp := uc.findUpload(c)
	if upload == nil {
		return errResp
	}

	if err := uc.DB.Model(upload).UpdateColumn("status", models.UploadConfirmed).Error; err != nil {
		return utils.InternalServerError(c, "Could not confirm upload")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"success":  true,
		"file_url": upload.FileURL,
	})
}

func (uc *UploadsController) DeleteFile(c *fiber.Ctx) error {
	upload, errResp := uc.findUpload(c)
	if upload == nil {
		return errResp
	}

	if err := uc.DB.Model(upload).UpdateColumn("status", models.UploadDeleted).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete file")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"success": true,
	})
}
