package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"thinkhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func clearPoints() {
	db.Exec("DELETE FROM user_points")
}

func TestParticipateInChallenge(t *testing.T) {
	challenge := createChallenge(t, "Participation Challenge", 150)
	challengeID := uint(challenge["ID"].(float64))
	user := createUser("participant@example.com", "Challenge Participant")
	token := tokenFor(user.ID)

	path := fmt.Sprintf("/api/challenges/%d/participate", challengeID)

	resp, result := doRequest(t, "POST", path, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := data(t, result)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(150), payload["points_earned"])

	// Duplicate participation is a conflict, not a no-op
	resp, _ = doRequest(t, "POST", path, token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var rows int64
	db.Model(&models.UserPoints{}).
		Where("user_id = ? AND challenge_id = ?", user.ID, challengeID).
		Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestParticipateInInactiveChallenge(t *testing.T) {
	now := time.Now()
	challenge := models.Challenge{
		Title:        "Closed Window Challenge",
		Type:         models.ChallengeTypeQuiz,
		PointsReward: 100,
		StartDate:    now.AddDate(0, 0, -14),
		EndDate:      now.AddDate(0, 0, -7),
		IsActive:     true,
	}
	db.Create(&challenge)

	user := createUser("latecomer@example.com", "Late Comer")
	token := tokenFor(user.ID)

	resp, _ := doRequest(t, "POST", fmt.Sprintf("/api/challenges/%d/participate", challenge.ID), token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestParticipateInMissingChallenge(t *testing.T) {
	user := createUser("lost@example.com", "Lost User")
	token := tokenFor(user.ID)

	resp, _ := doRequest(t, "POST", "/api/challenges/999999/participate", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetActiveChallenges(t *testing.T) {
	created := createChallenge(t, "Currently Open Challenge", 75)

	resp, result := doRequest(t, "GET", "/api/challenges/active", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	ids := []float64{}
	for _, item := range dataList(t, result) {
		ids = append(ids, item.(map[string]interface{})["ID"].(float64))
	}
	assert.Contains(t, ids, created["ID"].(float64))
}

func TestLeaderboardOrderingAndRanks(t *testing.T) {
	clearPoints()

	first := createUser("leader1@example.com", "Leader One")
	second := createUser("leader2@example.com", "Leader Two")
	empty := createUser("leader3@example.com", "Leader Three")

	db.Create(&models.UserPoints{UserID: first.ID, ChallengeID: 9001, PointsEarned: 200})
	db.Create(&models.UserPoints{UserID: second.ID, ChallengeID: 9002, PointsEarned: 100})

	resp, result := doRequest(t, "GET", "/api/challenges/leaderboard", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	entries := dataList(t, result)
	assert.Len(t, entries, 2)

	top := entries[0].(map[string]interface{})
	assert.Equal(t, float64(1), top["rank"])
	assert.Equal(t, float64(first.ID), top["user_id"])
	assert.Equal(t, float64(200), top["total_points"])

	runnerUp := entries[1].(map[string]interface{})
	assert.Equal(t, float64(2), runnerUp["rank"])
	assert.Equal(t, float64(100), runnerUp["total_points"])

	// Zero-point users never appear
	for _, entry := range entries {
		assert.NotEqual(t, float64(empty.ID), entry.(map[string]interface{})["user_id"])
	}

	// getUserRank for the 100-point user
	resp, result = doRequest(t, "GET", "/api/challenges/rank", tokenFor(second.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	rank := data(t, result)
	assert.Equal(t, float64(2), rank["rank"])
	assert.Equal(t, float64(100), rank["total_points"])
	assert.Equal(t, float64(100), rank["weekly_points"])
}

func TestLeaderboardBadgeThresholds(t *testing.T) {
	clearPoints()

	high := createUser("badge-high@example.com", "High Achiever")
	mid := createUser("badge-mid@example.com", "Mid Achiever")
	low := createUser("badge-low@example.com", "Low Achiever")
	none := createUser("badge-none@example.com", "No Badge")

	// 11 challenges at 100 points each
	for i := 0; i < 11; i++ {
		db.Create(&models.UserPoints{UserID: high.ID, ChallengeID: uint(8000 + i), PointsEarned: 100})
	}
	db.Create(&models.UserPoints{UserID: mid.ID, ChallengeID: 8100, PointsEarned: 500})
	db.Create(&models.UserPoints{UserID: low.ID, ChallengeID: 8101, PointsEarned: 100})
	db.Create(&models.UserPoints{UserID: none.ID, ChallengeID: 8102, PointsEarned: 50})

	_, result := doRequest(t, "GET", "/api/challenges/leaderboard", "", nil)

	badgesByUser := map[float64][]interface{}{}
	for _, item := range dataList(t, result) {
		entry := item.(map[string]interface{})
		badges, _ := entry["badges"].([]interface{})
		badgesByUser[entry["user_id"].(float64)] = badges
	}

	assert.Contains(t, badgesByUser[float64(high.ID)], "high_achiever")
	assert.Contains(t, badgesByUser[float64(mid.ID)], "achiever")
	assert.Contains(t, badgesByUser[float64(low.ID)], "participant")
	assert.Empty(t, badgesByUser[float64(none.ID)])
}

func TestIssueCertificateIdempotent(t *testing.T) {
	challenge := createChallenge(t, "Certificate Worthy Challenge", 120)
	challengeID := uint(challenge["ID"].(float64))
	user := createUser("certified@example.com", "Certified User")
	token := tokenFor(user.ID)

	// Certificate before participation is rejected
	certPath := fmt.Sprintf("/api/challenges/%d/certificate", challengeID)
	resp, _ := doRequest(t, "POST", certPath, token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	doRequest(t, "POST", fmt.Sprintf("/api/challenges/%d/participate", challengeID), token, nil)

	resp, result := doRequest(t, "POST", certPath, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	first := data(t, result)
	assert.NotEmpty(t, first["CertificateURL"])

	// Second issuance returns the same certificate unchanged
	_, result = doRequest(t, "POST", certPath, token, nil)
	second := data(t, result)
	assert.Equal(t, first["ID"], second["ID"])
	assert.Equal(t, first["CertificateURL"], second["CertificateURL"])

	var rows int64
	db.Model(&models.Certificate{}).
		Where("user_id = ? AND challenge_id = ?", user.ID, challengeID).
		Count(&rows)
	assert.Equal(t, int64(1), rows)
}
