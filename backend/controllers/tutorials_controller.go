package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TutorialsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTutorialsController(db *gorm.DB, cfg *config.Config) *TutorialsController {
	return &TutorialsController{DB: db, Cfg: cfg}
}

type CreateTutorialInput struct {
	Title         string   `json:"title" validate:"required,min=5"`
	Description   string   `json:"description" validate:"required,min=20"`
	Content       string   `json:"content" validate:"required,min=100"`
	TechStack     []string `json:"tech_stack"`
	Difficulty    string   `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	EstimatedTime int      `json:"estimated_time" validate:"required,gt=0"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	IsPro         bool     `json:"is_pro"`
}

func marshalStringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}

// techStackFilter builds an OR clause matching any of the given terms against
// the serialized stack, case-insensitively.
func techStackFilter(terms []string) (string, []interface{}) {
	conds := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		conds = append(conds, "LOWER(CAST(tech_stack AS TEXT)) LIKE ?")
		args = append(args, "%"+strings.ToLower(term)+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " OR "), args
}

// CreateTutorial godoc
// @Summary Create a tutorial
// @Description Creates a tutorial; the slug is generated from the title
// @Tags tutorials
// @Accept json
// @Produce json
// @Param tutorial body CreateTutorialInput true "Tutorial data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/tutorials [post]
func (tc *TutorialsController) CreateTutorial(c *fiber.Ctx) error {
	var input CreateTutorialInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	tutorial := models.Tutorial{
		Title:         input.Title,
		Slug:          utils.GenerateSlug(input.Title),
		Description:   input.Description,
		Content:       input.Content,
		TechStack:     marshalStringList(input.TechStack),
		Difficulty:    input.Difficulty,
		EstimatedTime: input.EstimatedTime,
		ThumbnailURL:  input.ThumbnailURL,
		IsPro:         input.IsPro,
		Status:        models.StatusPublished,
	}

	if err := tc.DB.Create(&tutorial).Error; err != nil {
		// Unique slug violation
		return utils.Conflict(c, "Tutorial with this slug already exists")
	}

	return utils.Created(c, tutorial)
}

func (tc *TutorialsController) GetTutorials(c *fiber.Ctx) error {
	var tutorials []models.Tutorial
	if err := tc.DB.Where("status = ?", models.StatusPublished).
		Order("created_at DESC").
		Find(&tutorials).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, tutorials)
}

// GetTutorialBySlug increments the view counter on every call, with no
// per-user or per-session de-duplication.
func (tc *TutorialsController) GetTutorialBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var tutorial models.Tutorial
	if err := tc.DB.Where("slug = ? AND status = ?", slug, models.StatusPublished).First(&tutorial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tutorial not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := tc.DB.Model(&models.Tutorial{}).Where("id = ?", tutorial.ID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return utils.InternalServerError(c, "Could not update views")
	}
	tutorial.ViewsCount++

	return utils.Success(c, fiber.StatusOK, tutorial)
}

// LikeTutorial toggles the (user, tutorial) like and adjusts the denormalized
// counter in the same transaction. The post-mutation count is always returned.
func (tc *TutorialsController) LikeTutorial(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	tutorialID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid tutorial ID")
	}

	var tutorial models.Tutorial
	if err := tc.DB.First(&tutorial, tutorialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tutorial not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var liked bool
	var likesCount int
	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		var like models.UserLike
		err := tx.Where("user_id = ? AND tutorial_id = ?", userID, tutorial.ID).First(&like).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.UserLike{UserID: userID, TutorialID: tutorial.ID}).Error; err != nil {
				return err
			}
			liked = true
			if err := tx.Model(&models.Tutorial{}).Where("id = ?", tutorial.ID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			// Hard delete so the unique (user, tutorial) index allows a re-like
			if err := tx.Unscoped().Delete(&like).Error; err != nil {
				return err
			}
			liked = false
			if err := tx.Model(&models.Tutorial{}).Where("id = ?", tutorial.ID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Tutorial{}).Where("id = ?", tutorial.ID).
			Select("likes_count").Scan(&likesCount).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not toggle like")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"liked":       liked,
		"likes_count": likesCount,
	})
}

// SearchTutorials matches the query against title, description and content,
// with AND-ed filters on difficulty, tech stack terms and the pro flag.
func (tc *TutorialsController) SearchTutorials(c *fiber.Ctx) error {
	search := c.Query("q")
	difficulty := c.Query("difficulty")
	techStack := c.Query("tech_stack") // comma-separated
	isPro := c.Query("is_pro")

	query := tc.DB.Model(&models.Tutorial{}).Where("status = ?", models.StatusPublished)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(content) LIKE ?",
			like, like, like)
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

	var tutorials []models.Tutorial
	if err := query.Order("created_at DESC").Find(&tutorials).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, tutorials)
}

// GetFeaturedTutorials returns the top 6 by engagement (views + likes),
// newest first among ties.
func (tc *TutorialsController) GetFeaturedTutorials(c *fiber.Ctx) error {
	var tutorials []models.Tutorial
	if err := tc.DB.Where("status = ?", models.StatusPublished).
		Order("(views_count + likes_count) DESC, created_at DESC").
		Limit(6).
		Find(&tutorials).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, tutorials)
}
