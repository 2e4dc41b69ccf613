package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoadmapsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewRoadmapsController(db *gorm.DB, cfg *config.Config) *RoadmapsController {
	return &RoadmapsController{DB: db, Cfg: cfg}
}

type CreateRoadmapInput struct {
	Title       string               `json:"title" validate:"required,min=5"`
	Description string               `json:"description" validate:"required,min=20"`
	Category    string               `json:"category" validate:"required"`
	Nodes       []models.RoadmapNode `json:"nodes"`
}

type UpdateProgressInput struct {
	TutorialID         *uint    `json:"tutorial_id"`
	RoadmapID          *uint    `json:"roadmap_id"`
	ProgressPercentage int      `json:"progress_percentage" validate:"min=0,max=100"`
	CompletedNodes     []string `json:"completed_nodes"`
}

func (rc *RoadmapsController) CreateRoadmap(c *fiber.Ctx) error {
	var input CreateRoadmapInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	if input.Nodes == nil {
		input.Nodes = []models.RoadmapNode{}
	}
	rawNodes, err := json.Marshal(input.Nodes)
	if err != nil {
		return utils.BadRequest(c, "Invalid nodes payload")
	}

	roadmap := models.Roadmap{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Nodes:       datatypes.JSON(rawNodes),
	}

	if err := rc.DB.Create(&roadmap).Error; err != nil {
		return utils.InternalServerError(c, "Could not create roadmap")
	}

	return utils.Created(c, roadmap)
}

func (rc *RoadmapsController) GetRoadmaps(c *fiber.Ctx) error {
	var roadmaps []models.Roadmap
	if err := rc.DB.Order("created_at DESC").Find(&roadmaps).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, roadmaps)
}

func (rc *RoadmapsController) GetRoadmapByID(c *fiber.Ctx) error {
	roadmapID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid roadmap ID")
	}

	var roadmap models.Roadmap
	if err := rc.DB.First(&roadmap, roadmapID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Roadmap not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, roadmap)
}

// UpdateUserProgress upserts the single progress row for the target tutorial
// or roadmap. Exactly one target must be given.
func (rc *RoadmapsController) UpdateUserProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input UpdateProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	if (input.TutorialID == nil) == (input.RoadmapID == nil) {
		return utils.BadRequest(c, "Provide exactly one of tutorial_id or roadmap_id")
	}

	if input.TutorialID != nil {
		var tutorial models.Tutorial
		if err := rc.DB.First(&tutorial, *input.TutorialID).Error; err != nil {
			return utils.NotFound(c, "Tutorial not found")
		}
	} else {
		var roadmap models.Roadmap
		if err := rc.DB.First(&roadmap, *input.RoadmapID).Error; err != nil {
			return utils.NotFound(c, "Roadmap not found")
		}
	}

	if input.CompletedNodes == nil {
		input.CompletedNodes = []string{}
	}
	rawNodes, _ := json.Marshal(input.CompletedNodes)

	var progress models.UserProgress
	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("user_id = ?", userID)
		if input.TutorialID != nil {
			query = query.Where("tutorial_id = ?", *input.TutorialID)
		} else {
			query = query.Where("roadmap_id = ?", *input.RoadmapID)
		}

		err := query.First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.UserProgress{
				UserID:             userID,
				TutorialID:         input.TutorialID,
				RoadmapID:          input.RoadmapID,
				ProgressPercentage: input.ProgressPercentage,
				CompletedNodes:     datatypes.JSON(rawNodes),
			}
			return tx.Create(&progress).Error
		}
		if err != nil {
			return err
		}

		progress.ProgressPercentage = input.ProgressPercentage
		progress.CompletedNodes = datatypes.JSON(rawNodes)
		return tx.Save(&progress).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	return utils.Success(c, fiber.StatusOK, progress)
}

func (rc *RoadmapsController) GetUserProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var progress []models.UserProgress
	if err := rc.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, progress)
}
