package controllers

import (
	"time"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubscriptionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubscriptionsController(db *gorm.DB, cfg *config.Config) *SubscriptionsController {
	return &SubscriptionsController{DB: db, Cfg: cfg}
}

type CreateSubscriptionInput struct {
	Plan string `json:"plan" validate:"required,oneof=monthly annual"`
}

// CreateSubscription switches the user to pro with an expiry of now+1 month
// (monthly) or now+1 year (annual).
func (sc *SubscriptionsController) CreateSubscription(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CreateSubscriptionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var expiresAt time.Time
	if input.Plan == "annual" {
		expiresAt = time.Now().AddDate(1, 0, 0)
	} else {
		expiresAt = time.Now().AddDate(0, 1, 0)
	}

	user.SubscriptionPlan = models.PlanPro
	user.SubscriptionExpiresAt = &expiresAt

	if err := sc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update subscription")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"subscription_plan":       user.SubscriptionPlan,
		"subscription_expires_at": user.SubscriptionExpiresAt,
	})
}

// CancelSubscription reverts the user to the free plan with no expiry.
func (sc *SubscriptionsController) CancelSubscription(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if err := sc.DB.Model(&user).Updates(map[string]interface{}{
		"subscription_plan":       models.PlanFree,
		"subscription_expires_at": nil,
	}).Error; err != nil {
		return utils.InternalServerError(c, "Could not update subscription")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"subscription_plan":       models.PlanFree,
		"subscription_expires_at": nil,
	})
}

// CheckProAccess evaluates effective access on the wall clock only; an
// expired subscription keeps its plan and past date.
func (sc *SubscriptionsController) CheckProAccess(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"has_pro_access":          user.HasProAccess(time.Now()),
		"subscription_plan":       user.SubscriptionPlan,
		"subscription_expires_at": user.SubscriptionExpiresAt,
	})
}
