package controllers

import (
	"strconv"
	"time"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// GetDashboardData bundles everything the user dashboard renders in one call.
func (adc *AdminController) GetDashboardData(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, adc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := adc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var progress []models.UserProgress
	adc.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&progress)

	var recentChatCount int64
	adc.DB.Model(&models.ChatMessage{}).
		Where("user_id = ? AND created_at >= ?", userID, time.Now().AddDate(0, 0, -30)).
		Count(&recentChatCount)

	var downloads []models.UserDownload
	adc.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(10).Find(&downloads)

	var certificates []models.Certificate
	adc.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&certificates)

	rank, total, weekly, err := computeUserRank(adc.DB, userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user": fiber.Map{
			"id":                      user.ID,
			"email":                   user.Email,
			"full_name":               user.FullName,
			"subscription_plan":       user.SubscriptionPlan,
			"subscription_expires_at": user.SubscriptionExpiresAt,
			"has_pro_access":          user.HasProAccess(time.Now()),
		},
		"progress":          progress,
		"recent_chat_count": recentChatCount,
		"download_history":  downloads,
		"certificates":      certificates,
		"rank": fiber.Map{
			"rank":          rank,
			"total_points":  total,
			"weekly_points": weekly,
		},
	})
}

func (adc *AdminController) platformTotals() fiber.Map {
	var totals struct {
		TotalUsers     int64
		ProUsers       int64
		TotalTutorials int64
		TotalProjects  int64
		TotalResources int64
		TotalDownloads int64
		ChatMessages   int64
	}

	adc.DB.Model(&models.User{}).Count(&totals.TotalUsers)
	adc.DB.Model(&models.User{}).Where("subscription_plan = ?", models.PlanPro).Count(&totals.ProUsers)
	adc.DB.Model(&models.Tutorial{}).Count(&totals.TotalTutorials)
	adc.DB.Model(&models.Project{}).Count(&totals.TotalProjects)
	adc.DB.Model(&models.Resource{}).Count(&totals.TotalResources)
	adc.DB.Model(&models.UserDownload{}).Count(&totals.TotalDownloads)
	adc.DB.Model(&models.ChatMessage{}).Count(&totals.ChatMessages)

	return fiber.Map{
		"total_users":     totals.TotalUsers,
		"pro_users":       totals.ProUsers,
		"total_tutorials": totals.TotalTutorials,
		"total_projects":  totals.TotalProjects,
		"total_resources": totals.TotalResources,
		"total_downloads": totals.TotalDownloads,
		"chat_messages":   totals.ChatMessages,
	}
}

func (adc *AdminController) popularContent() (tutorials, projects []map[string]interface{}) {
	adc.DB.Raw(`
		SELECT id, title, slug, views_count, likes_count,
			(views_count + likes_count) AS engagement
		FROM tutorials
		WHERE deleted_at IS NULL
		ORDER BY engagement DESC
		LIMIT 5
	`).Scan(&tutorials)

	adc.DB.Raw(`
		SELECT id, title, slug, downloads_count
		FROM projects
		WHERE deleted_at IS NULL
		ORDER BY downloads_count DESC
		LIMIT 5
	`).Scan(&projects)

	return tutorials, projects
}

// GetAnalytics returns platform totals plus the top-5 popular tutorials and
// projects.
func (adc *AdminController) GetAnalytics(c *fiber.Ctx) error {
	popularTutorials, popularProjects := adc.popularContent()

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"totals":            adc.platformTotals(),
		"popular_tutorials": popularTutorials,
		"popular_projects":  popularProjects,
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}

// GetDetailedAnalytics adds the 30-day user-growth series and a mocked
// monthly revenue series.
func (adc *AdminController) GetDetailedAnalytics(c *fiber.Ctx) error {
	popularTutorials, popularProjects := adc.popularContent()

	var userGrowth []map[string]interface{}
	adc.DB.Raw(`
		SELECT DATE(created_at) AS date, COUNT(*) AS users
		FROM users
		WHERE created_at >= ? AND deleted_at IS NULL
		GROUP BY DATE(created_at)
		ORDER BY date
	`, time.Now().AddDate(0, 0, -30)).Scan(&userGrowth)

	var proUsers int64
	adc.DB.Model(&models.User{}).Where("subscription_plan = ?", models.PlanPro).Count(&proUsers)

	// Mocked revenue series: no payment provider is wired, the admin chart
	// still needs data to render.
	revenue := make([]fiber.Map, 0, 12)
	now := time.Now()
	for i := 11; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		revenue = append(revenue, fiber.Map{
			"month":   month.Format("2006-01"),
			"revenue": float64(proUsers) * 9.99,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"totals":            adc.platformTotals(),
		"popular_tutorials": popularTutorials,
		"popular_projects":  popularProjects,
		"user_growth":       userGrowth,
		"revenue_series":    revenue,
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}

type GrantProInput struct {
	Days int `json:"days" validate:"required,gt=0"`
}

func (adc *AdminController) GrantProAccess(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input GrantProInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	return adc.grantPro(c, uint(targetID), input.Days)
}

// UpgradeWinner grants a fixed 30-day pro period to a challenge winner.
func (adc *AdminController) UpgradeWinner(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	return adc.grantPro(c, uint(targetID), 30)
}

func (adc *AdminController) grantPro(c *fiber.Ctx, targetID uint, days int) error {
	var user models.User
	if err := adc.DB.First(&user, targetID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	expiresAt := time.Now().AddDate(0, 0, days)
	if err := adc.DB.Model(&user).Updates(map[string]interface{}{
		"subscription_plan":       models.PlanPro,
		"subscription_expires_at": expiresAt,
	}).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user_id":                 user.ID,
		"subscription_plan":       models.PlanPro,
		"subscription_expires_at": expiresAt,
	})
}

func (adc *AdminController) RevokeProAccess(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := adc.DB.First(&user, targetID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if err := adc.DB.Model(&user).Updates(map[string]interface{}{
		"subscription_plan":       models.PlanFree,
		"subscription_expires_at": nil,
	}).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user_id":           user.ID,
		"subscription_plan": models.PlanFree,
	})
}

type ModerateContentInput struct {
	ContentID   uint   `json:"content_id" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=tutorial project"`
	Action      string `json:"action" validate:"required,oneof=approve hide reject"`
}

// ModerateContent flips the moderation status column of a tutorial or
// project; hidden content disappears from public listings and search.
func (adc *AdminController) ModerateContent(c *fiber.Ctx) error {
	var input ModerateContentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	status := models.StatusHidden
	if input.Action == "approve" {
		status = models.StatusPublished
	}

	var result *gorm.DB
	if input.ContentType == "tutorial" {
		result = adc.DB.Model(&models.Tutorial{}).Where("id = ?", input.ContentID).
			UpdateColumn("status", status)
	} else {
		result = adc.DB.Model(&models.Project{}).Where("id = ?", input.ContentID).
			UpdateColumn("status", status)
	}

	if result.Error != nil {
		return utils.InternalServerError(c, "Could not update content")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Content not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"content_id":   input.ContentID,
		"content_type": input.ContentType,
		"status":       status,
	})
}
