package controllers_test

import (
	"strings"
	"testing"

	"thinkhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func createProject(t *testing.T, title string) map[string]interface{} {
	t.Helper()
	resp, result := doRequest(t, "POST", "/api/admin/projects", adminToken, map[string]interface{}{
		"title":          title,
		"description":    "A complete project walkthrough with source and guide.",
		"content":        "Step by step build instructions. " + longContent(),
		"tech_stack":     []string{"Go", "PostgreSQL"},
		"difficulty":     "intermediate",
		"estimated_time": 120,
		"github_url":     "https://github.com/thinkhub/example",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create project %q: status %d (%v)", title, resp.StatusCode, result)
	}
	return data(t, result)
}

func TestGetProjectBySlug(t *testing.T) {
	createProject(t, "Realtime Chat Server Project")

	resp, result := doRequest(t, "GET", "/api/projects/realtime-chat-server-project", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := data(t, result)
	assert.Equal(t, "Realtime Chat Server Project", payload["Title"])

	// Projects carry the same engagement counters tutorials do
	assert.Equal(t, float64(0), payload["LikesCount"])
	assert.Equal(t, float64(0), payload["ViewsCount"])

	resp, _ = doRequest(t, "GET", "/api/projects/no-such-project", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDownloadProject(t *testing.T) {
	project := createProject(t, "Downloadable CLI Tool Project")
	user := createUser("pdownloader@example.com", "Project Downloader")
	token := tokenFor(user.ID)

	resp, result := doRequest(t, "POST",
		"/api/projects/"+floatID(project["ID"])+"/download", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	url := data(t, result)["download_url"].(string)
	assert.True(t, strings.HasSuffix(url, "/projects/downloadable-cli-tool-project.zip"), url)

	var after models.Project
	db.First(&after, uint(project["ID"].(float64)))
	assert.Equal(t, 1, after.DownloadsCount)

	var rows int64
	db.Model(&models.UserDownload{}).
		Where("user_id = ? AND project_id = ?", user.ID, after.ID).
		Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestDownloadProjectRequiresAuth(t *testing.T) {
	project := createProject(t, "Auth Guarded Download Project")

	resp, _ := doRequest(t, "POST",
		"/api/projects/"+floatID(project["ID"])+"/download", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetFeaturedProjectsOrdering(t *testing.T) {
	popular := createProject(t, "Heavily Downloaded Starter Project")
	createProject(t, "Rarely Downloaded Helper Project")

	db.Model(&models.Project{}).
		Where("id = ?", uint(popular["ID"].(float64))).
		UpdateColumn("downloads_count", 500)

	resp, result := doRequest(t, "GET", "/api/projects/featured", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	list := dataList(t, result)
	assert.NotEmpty(t, list)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "Heavily Downloaded Starter Project", first["Title"])
}
