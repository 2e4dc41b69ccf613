package controllers_test

import (
	"testing"
	"time"

	"thinkhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setAIUsage(userID uint, used int, lastAt time.Time) {
	db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"ai_queries_used_today": used,
			"last_ai_query_at":      lastAt,
		})
}

func TestSendMessageAndHistory(t *testing.T) {
	user := createUser("chatter@example.com", "Chat User")
	token := tokenFor(user.ID)

	resp, result := doRequest(t, "POST", "/api/ai/message", token, map[string]interface{}{
		"message":      "How do goroutines work?",
		"context_type": "general",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	message := data(t, result)
	assert.Equal(t, "How do goroutines work?", message["Message"])
	assert.NotEmpty(t, message["Response"])

	resp, result = doRequest(t, "GET", "/api/ai/history", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, dataList(t, result), 1)

	var user2 models.User
	db.First(&user2, user.ID)
	assert.Equal(t, 1, user2.AIQueriesUsedToday)
}

func TestSendMessageValidation(t *testing.T) {
	user := createUser("validator@example.com", "Validation User")
	token := tokenFor(user.ID)

	resp, _ := doRequest(t, "POST", "/api/ai/message", token, map[string]interface{}{
		"message": "",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAIUsageLimitFreeUser(t *testing.T) {
	user := createUser("limited@example.com", "Limited User")
	token := tokenFor(user.ID)

	// At the ceiling: cannot use, sendMessage rejected
	setAIUsage(user.ID, 10, time.Now())

	resp, result := doRequest(t, "GET", "/api/ai/usage", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	usage := data(t, result)
	assert.Equal(t, false, usage["can_use"])
	assert.Equal(t, float64(10), usage["queries_used"])
	assert.Equal(t, float64(10), usage["limit"])

	resp, _ = doRequest(t, "POST", "/api/ai/message", token, map[string]interface{}{
		"message": "one over the limit",
	})
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// One below the ceiling: succeeds and lands exactly on it
	setAIUsage(user.ID, 9, time.Now())

	resp, _ = doRequest(t, "POST", "/api/ai/message", token, map[string]interface{}{
		"message": "last one for today",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var after models.User
	db.First(&after, user.ID)
	assert.Equal(t, 10, after.AIQueriesUsedToday)
}

func TestAIUsageResetsOnNewDay(t *testing.T) {
	user := createUser("yesterday@example.com", "Yesterday User")
	token := tokenFor(user.ID)

	setAIUsage(user.ID, 10, time.Now().AddDate(0, 0, -1))

	resp, result := doRequest(t, "GET", "/api/ai/usage", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	usage := data(t, result)
	assert.Equal(t, true, usage["can_use"])
	assert.Equal(t, float64(0), usage["queries_used"])
}

func TestAIUsageLimitProUser(t *testing.T) {
	user := createUser("prochatter@example.com", "Pro Chatter")
	token := tokenFor(user.ID)

	expires := time.Now().AddDate(0, 1, 0)
	db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"subscription_plan":       models.PlanPro,
			"subscription_expires_at": expires,
		})
	setAIUsage(user.ID, 10, time.Now())

	_, result := doRequest(t, "GET", "/api/ai/usage", token, nil)
	usage := data(t, result)
	assert.Equal(t, true, usage["can_use"])
	assert.Equal(t, float64(100), usage["limit"])
}

func TestGenerateTutorialSummary(t *testing.T) {
	tutorial := createTutorial(t, "Summary Ready Tutorial Guide", false)
	user := createUser("summary@example.com", "Summary User")
	token := tokenFor(user.ID)

	resp, result := doRequest(t, "GET",
		"/api/ai/tutorials/"+floatID(tutorial["ID"])+"/summary", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := data(t, result)
	assert.Contains(t, payload["summary"], "Summary Ready Tutorial Guide")
	assert.NotEmpty(t, payload["key_points"])
}
