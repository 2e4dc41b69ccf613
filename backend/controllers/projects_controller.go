package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProjectsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProjectsController(db *gorm.DB, cfg *config.Config) *ProjectsController {
	return &ProjectsController{DB: db, Cfg: cfg}
}

type CreateProjectInput struct {
	Title         string   `json:"title" validate:"required,min=5"`
	Description   string   `json:"description" validate:"required,min=20"`
	Content       string   `json:"content" validate:"required,min=100"`
	TechStack     []string `json:"tech_stack"`
	Difficulty    string   `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	EstimatedTime int      `json:"estimated_time" validate:"required,gt=0"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	DemoURL       string   `json:"demo_url"`
	GithubURL     string   `json:"github_url"`
	GuideURL      string   `json:"guide_url"`
	IsPro         bool     `json:"is_pro"`
}

func (pc *ProjectsController) CreateProject(c *fiber.Ctx) error {
	var input CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	project := models.Project{
		Title:         input.Title,
		Slug:          utils.GenerateSlug(input.Title),
		Description:   input.Description,
		Content:       input.Content,
		TechStack:     marshalStringList(input.TechStack),
		Difficulty:    input.Difficulty,
		EstimatedTime: input.EstimatedTime,
		ThumbnailURL:  input.ThumbnailURL,
		DemoURL:       input.DemoURL,
		GithubURL:     input.GithubURL,
		GuideURL:      input.GuideURL,
		IsPro:         input.IsPro,
		Status:        models.StatusPublished,
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		return utils.Conflict(c, "Project with this slug already exists")
	}

	return utils.Created(c, project)
}

func (pc *ProjectsController) GetProjects(c *fiber.Ctx) error {
	var projects []models.Project
	if err := pc.DB.Where("status = ?", models.StatusPublished).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, projects)
}

func (pc *ProjectsController) GetProjectBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var project models.Project
	if err := pc.DB.Where("slug = ? AND status = ?", slug, models.StatusPublished).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, project)
}

// DownloadProject logs the download event, bumps the denormalized counter in
// the same transaction and returns the constructed archive URL.
func (pc *ProjectsController) DownloadProject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	projectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid project ID")
	}

	var project models.Project
	if err := pc.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		download := models.UserDownload{
			UserID:    userID,
			ProjectID: &project.ID,
		}
		if err := tx.Create(&download).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).Where("id = ?", project.ID).
			UpdateColumn("downloads_count", gorm.Expr("downloads_count + 1")).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not record download")
	}

	downloadURL := fmt.Sprintf("%s/projects/%s.zip", pc.Cfg.DownloadBaseURL, project.Slug)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"download_url": downloadURL,
	})
}

func (pc *ProjectsController) SearchProjects(c *fiber.Ctx) error {
	search := c.Query("q")
	difficulty := c.Query("difficulty")
	techStack := c.Query("tech_stack") // comma-separated
	isPro := c.Query("is_pro")

	query := pc.DB.Model(&models.Project{}).Where("status = ?", models.StatusPublished)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	if techStack != "" {
		if clause, args := techStackFilter(strings.Split(techStack, ",")); clause != "" {
			query = query.Where(clause, args...)
		}
	}

	if isPro != "" {
		query = query.Where("is_pro = ?", isPro == "true")
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, projects)
}

// GetFeaturedProjects returns the top 6 by download count.
func (pc *ProjectsController) GetFeaturedProjects(c *fiber.Ctx) error {
	var projects []models.Project
	if err := pc.DB.Where("status = ?", models.StatusPublished).
		Order("downloads_count DESC, created_at DESC").
		Limit(6).
		Find(&projects).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, projects)
}
