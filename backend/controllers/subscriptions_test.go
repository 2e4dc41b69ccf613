package controllers_test

import (
	"testing"
	"time"

	"thinkhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateAndCancelSubscription(t *testing.T) {
	user := createUser("subscriber@example.com", "Subscriber")
	token := tokenFor(user.ID)

	resp, result := doRequest(t, "POST", "/api/subscription/", token, map[string]string{
		"plan": "monthly",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := data(t, result)
	assert.Equal(t, "pro", payload["subscription_plan"])
	assert.NotNil(t, payload["subscription_expires_at"])

	var after models.User
	db.First(&after, user.ID)
	assert.Equal(t, models.PlanPro, after.SubscriptionPlan)
	// Monthly expiry lands about a month out
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), *after.SubscriptionExpiresAt, time.Minute)

	resp, _ = doRequest(t, "DELETE", "/api/subscription/", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Fresh struct: a NULL column would leave a previously scanned pointer intact
	var canceled models.User
	db.First(&canceled, user.ID)
	assert.Equal(t, models.PlanFree, canceled.SubscriptionPlan)
	assert.Nil(t, canceled.SubscriptionExpiresAt)

	var nullRows int64
	db.Model(&models.User{}).
		Where("id = ? AND subscription_expires_at IS NULL", user.ID).
		Count(&nullRows)
	assert.Equal(t, int64(1), nullRows)
}

func TestCreateAnnualSubscription(t *testing.T) {
	user := createUser("annual@example.com", "Annual Subscriber")
	token := tokenFor(user.ID)

	resp, _ := doRequest(t, "POST", "/api/subscription/", token, map[string]string{
		"plan": "annual",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var after models.User
	db.First(&after, user.ID)
	assert.WithinDuration(t, time.Now().AddDate(1, 0, 0), *after.SubscriptionExpiresAt, time.Minute)
}

func TestCheckProAccess(t *testing.T) {
	cases := []struct {
		name      string
		plan      string
		expiresAt *time.Time
		expected  bool
	}{
		{"free plan", models.PlanFree, nil, false},
		{"pro lifetime", models.PlanPro, nil, true},
		{"pro active", models.PlanPro, timePtr(time.Now().AddDate(0, 0, 7)), true},
		{"pro expired yesterday", models.PlanPro, timePtr(time.Now().AddDate(0, 0, -1)), false},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := createUser("proaccess"+strconvI(i)+"@example.com", "Access "+tc.name)
			db.Model(&models.User{}).Where("id = ?", user.ID).
				Updates(map[string]interface{}{
					"subscription_plan":       tc.plan,
					"subscription_expires_at": tc.expiresAt,
				})

			resp, result := doRequest(t, "GET", "/api/subscription/access", tokenFor(user.ID), nil)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			payload := data(t, result)
			assert.Equal(t, tc.expected, payload["has_pro_access"])
			// The plan and date are never auto-cleared by the check
			assert.Equal(t, tc.plan, payload["subscription_plan"])
		})
	}
}

func TestInvalidSubscriptionPlan(t *testing.T) {
	user := createUser("badplan@example.com", "Bad Plan")
	resp, _ := doRequest(t, "POST", "/api/subscription/", tokenFor(user.ID), map[string]string{
		"plan": "weekly",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func timePtr(t time.Time) *time.Time { return &t }

func strconvI(i int) string { return string(rune('a' + i)) }
