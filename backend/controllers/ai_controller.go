package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AIController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAIController(db *gorm.DB, cfg *config.Config) *AIController {
	return &AIController{DB: db, Cfg: cfg}
}

type SendMessageInput struct {
	Message     string `json:"message" validate:"required,min=1,max=1000"`
	ContextType string `json:"context_type" validate:"omitempty,oneof=tutorial project general"`
	ContextID   *uint  `json:"context_id"`
}

// resetStaleUsage zeroes the daily counter when the last AI query happened
// before the current UTC day. Reports whether the counter changed.
func resetStaleUsage(user *models.User, now time.Time) bool {
	if user.AIQueriesUsedToday == 0 || user.LastAIQueryAt == nil {
		return false
	}
	ly, lm, ld := user.LastAIQueryAt.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	if ly == ny && lm == nm && ld == nd {
		return false
	}
	user.AIQueriesUsedToday = 0
	return true
}

// tutorReply is a stub content generator; no model call is made.
func tutorReply(message, contextType string) string {
	switch contextType {
	case models.ContextTutorial:
		return "Looking at this tutorial: " + message +
			". Try breaking the problem into the steps the tutorial outlines and re-run each one on its own."
	case models.ContextProject:
		return "For this project question: " + message +
			". Start from the project's guide, check the linked repository and compare your setup against the demo."
	default:
		return "Good question: " + message +
			". A practical way in is to pick one of our beginner tutorials on the topic and build alongside it."
	}
}

// SendMessage stores the query/response pair and counts it against the daily
// limit in one transaction.
func (aic *AIController) SendMessage(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, aic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	if input.ContextType == "" {
		input.ContextType = models.ContextGeneral
	}

	var user models.User
	if err := aic.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	now := time.Now()
	resetStaleUsage(&user, now)

	limit := user.DailyAILimit(now)
	if user.AIQueriesUsedToday >= limit {
		return utils.LimitExceeded(c, "Daily AI query limit reached")
	}

	chatMessage := models.ChatMessage{
		UserID:      userID,
		Message:     input.Message,
		Response:    tutorReply(input.Message, input.ContextType),
		ContextType: input.ContextType,
		ContextID:   input.ContextID,
	}

	err = aic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chatMessage).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"ai_queries_used_today": user.AIQueriesUsedToday + 1,
				"last_ai_query_at":      now,
			}).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not save message")
	}

	return utils.Created(c, chatMessage)
}

// GetChatHistory returns the user's last 50 messages, newest first.
func (aic *AIController) GetChatHistory(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, aic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var messages []models.ChatMessage
	if err := aic.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&messages).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, messages)
}

func (aic *AIController) CheckAIUsageLimit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, aic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := aic.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	now := time.Now()
	if resetStaleUsage(&user, now) {
		aic.DB.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("ai_queries_used_today", 0)
	}

	limit := user.DailyAILimit(now)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"can_use":      user.AIQueriesUsedToday < limit,
		"queries_used": user.AIQueriesUsedToday,
		"limit":        limit,
	})
}

// GenerateTutorialSummary builds a canned summary from the stored tutorial
// fields; no model call is made.
func (aic *AIController) GenerateTutorialSummary(c *fiber.Ctx) error {
	tutorialID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid tutorial ID")
	}

	var tutorial models.Tutorial
	if err := aic.DB.First(&tutorial, tutorialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tutorial not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var stack []string
	_ = json.Unmarshal(tutorial.TechStack, &stack)

	keyPoints := []string{
		fmt.Sprintf("Difficulty: %s", tutorial.Difficulty),
		fmt.Sprintf("Estimated time: %d minutes", tutorial.EstimatedTime),
	}
	for _, tech := range stack {
		keyPoints = append(keyPoints, "Covers "+tech)
	}

	summary := fmt.Sprintf("%s: %s", tutorial.Title, tutorial.Description)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"summary":    summary,
		"key_points": keyPoints,
	})
}
