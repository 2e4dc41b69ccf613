package controllers

import (
	"errors"
	"strconv"
	"strings"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ResourcesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewResourcesController(db *gorm.DB, cfg *config.Config) *ResourcesController {
	return &ResourcesController{DB: db, Cfg: cfg}
}

type CreateResourceInput struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	FileURL     string `json:"file_url" validate:"required,url"`
	FileSize    int64  `json:"file_size" validate:"required,gt=0"`
	FileType    string `json:"file_type" validate:"required"`
	IsPro       bool   `json:"is_pro"`
}

func (rc *ResourcesController) CreateResource(c *fiber.Ctx) error {
	var input CreateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	resource := models.Resource{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		FileURL:     input.FileURL,
		FileSize:    input.FileSize,
		FileType:    input.FileType,
		IsPro:       input.IsPro,
	}

	if err := rc.DB.Create(&resource).Error; err != nil {
		return utils.InternalServerError(c, "Could not create resource")
	}

	return utils.Created(c, resource)
}

func (rc *ResourcesController) GetResources(c *fiber.Ctx) error {
	var resources []models.Resource
	if err := rc.DB.Order("created_at DESC").Find(&resources).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, resources)
}

func (rc *ResourcesController) GetResourcesByCategory(c *fiber.Ctx) error {
	category := c.Params("category")

	var resources []models.Resource
	if err := rc.DB.Where("category = ?", category).
		Order("created_at DESC").
		Find(&resources).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, resources)
}

// DownloadResource logs the download, bumps the counter in the same
// transaction and returns the stored file URL.
func (rc *ResourcesController) DownloadResource(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	resourceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid resource ID")
	}

	var resource models.Resource
	if err := rc.DB.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Resource not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		download := models.UserDownload{
			UserID:     userID,
			ResourceID: &resource.ID,
		}
		if err := tx.Create(&download).Error; err != nil {
			return err
		}
		return tx.Model(&models.Resource{}).Where("id = ?", resource.ID).
			UpdateColumn("downloads_count", gorm.Expr("downloads_count + 1")).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not record download")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"download_url": resource.FileURL,
	})
}

func (rc *ResourcesController) SearchResources(c *fiber.Ctx) error {
	search := c.Query("q")
	category := c.Query("category")
	isPro := c.Query("is_pro")

	query := rc.DB.Model(&models.Resource{})

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if category != "" {
		query = query.Where("category = ?", category)
	}

	if isPro != "" {
		query = query.Where("is_pro = ?", isPro == "true")
	}

	var resources []models.Resource
	if err := query.Order("created_at DESC").Find(&resources).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, resources)
}
