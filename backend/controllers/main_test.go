package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/routes"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config

	adminToken string
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		JWTSecret:          "testsecret",
		ServerPort:         "8080",
		UploadBaseURL:      "https://uploads.thinkhub.dev",
		DownloadBaseURL:    "https://downloads.thinkhub.dev",
		CertificateBaseURL: "https://certificates.thinkhub.dev",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	admin := createUser("admin@thinkhub.dev", "Platform Admin")
	db.Model(&models.User{}).Where("id = ?", admin.ID).UpdateColumn("role", models.RoleAdmin)
	adminToken = tokenFor(admin.ID)
}

func createUser(email, fullName string) *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{
		Email:            email,
		PasswordHash:     string(hashed),
		FullName:         fullName,
		Role:             models.RoleUser,
		SubscriptionPlan: models.PlanFree,
	}
	if err := db.Create(&user).Error; err != nil {
		panic(err)
	}
	return &user
}

func tokenFor(userID uint) string {
	token, err := utils.GenerateJWTToken(userID, cfg)
	if err != nil {
		panic(err)
	}
	return token
}

func doRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var result map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		json.Unmarshal(raw, &result)
	}
	return resp, result
}

// data unwraps the utils.Success envelope.
func data(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	payload, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", result)
	}
	return payload
}

func dataList(t *testing.T, result map[string]interface{}) []interface{} {
	t.Helper()
	payload, ok := result["data"].([]interface{})
	if !ok {
		t.Fatalf("response has no data list: %v", result)
	}
	return payload
}

func createTutorial(t *testing.T, title string, isPro bool) map[string]interface{} {
	t.Helper()
	resp, result := doRequest(t, "POST", "/api/admin/tutorials", adminToken, map[string]interface{}{
		"title":          title,
		"description":    "A thorough walkthrough of the topic at hand.",
		"content":        fmt.Sprintf("Full tutorial content for %s. %s", title, longContent()),
		"tech_stack":     []string{"React", "TypeScript"},
		"difficulty":     "beginner",
		"estimated_time": 45,
		"is_pro":         isPro,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create tutorial %q: status %d (%v)", title, resp.StatusCode, result)
	}
	return data(t, result)
}

func createChallenge(t *testing.T, title string, points int) map[string]interface{} {
	t.Helper()
	now := time.Now()
	resp, result := doRequest(t, "POST", "/api/admin/challenges", adminToken, map[string]interface{}{
		"title":         title,
		"description":   "Weekly challenge",
		"type":          "quiz",
		"points_reward": points,
		"start_date":    now.Add(-time.Hour).Format(time.RFC3339),
		"end_date":      now.Add(24 * time.Hour).Format(time.RFC3339),
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create challenge %q: status %d (%v)", title, resp.StatusCode, result)
	}
	return data(t, result)
}

func floatID(v interface{}) string {
	return strconv.FormatInt(int64(v.(float64)), 10)
}

func uintID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func longContent() string {
	return "It starts with the fundamentals, builds a working example step by step," +
		" and closes with exercises that cement the core ideas in practice."
}
