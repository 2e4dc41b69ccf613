package routes

import (
	"thinkhub/backend/config"
	"thinkhub/backend/controllers"
	"thinkhub/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.GetCurrentUser)

	// Tutorial routes
	tutorialsController := controllers.NewTutorialsController(db, cfg)
	tutorials := app.Group("/api/tutorials")
	tutorials.Get("/", tutorialsController.GetTutorials)
	tutorials.Get("/featured", tutorialsController.GetFeaturedTutorials)
	tutorials.Get("/search", tutorialsController.SearchTutorials)
	tutorials.Get("/:slug", tutorialsController.GetTutorialBySlug)
	tutorials.Post("/:id/like", authMiddleware, tutorialsController.LikeTutorial)

	// Project routes
	projectsController := controllers.NewProjectsController(db, cfg)
	projects := app.Group("/api/projects")
	projects.Get("/", projectsController.GetProjects)
	projects.Get("/featured", projectsController.GetFeaturedProjects)
	projects.Get("/search", projectsController.SearchProjects)
	projects.Get("/:slug", projectsController.GetProjectBySlug)
	projects.Post("/:id/download", authMiddleware, projectsController.DownloadProject)

	// Resource routes
	resourcesController := controllers.NewResourcesController(db, cfg)
	resources := app.Group("/api/resources")
	resources.Get("/", resourcesController.GetResources)
	resources.Get("/search", resourcesController.SearchResources)
	resources.Get("/category/:category", resourcesController.GetResourcesByCategory)
	resources.Post("/:id/download", authMiddleware, resourcesController.DownloadResource)

	// Roadmap and progress routes
	roadmapsController := controllers.NewRoadmapsController(db, cfg)
	app.Get("/api/roadmaps", roadmapsController.GetRoadmaps)
	app.Get("/api/roadmaps/:id", roadmapsController.GetRoadmapByID)
	app.Get("/api/progress", authMiddleware, roadmapsController.GetUserProgress)
	app.Post("/api/progress", authMiddleware, roadmapsController.UpdateUserProgress)

	// AI tutor routes
	aiController := controllers.NewAIController(db, cfg)
	ai := app.Group("/api/ai", authMiddleware)
	ai.Post("/message", aiController.SendMessage)
	ai.Get("/history", aiController.GetChatHistory)
	ai.Get("/usage", aiController.CheckAIUsageLimit)
	ai.Get("/tutorials/:id/summary", aiController.GenerateTutorialSummary)

	// Challenge routes
	challengesController := controllers.NewChallengesController(db, cfg)
	challenges := app.Group("/api/challenges")
	challenges.Get("/active", challengesController.GetActiveChallenges)
	challenges.Get("/leaderboard", challengesController.GetLeaderboard)
	challenges.Get("/rank", authMiddleware, challengesController.GetUserRank)
	challenges.Post("/:id/participate", authMiddleware, challengesController.ParticipateInChallenge)
	challenges.Post("/:id/certificate", authMiddleware, challengesController.IssueCertificate)

	// Subscription routes
	subscriptionsController := controllers.NewSubscriptionsController(db, cfg)
	subscription := app.Group("/api/subscription", authMiddleware)
	subscription.Post("/", subscriptionsController.CreateSubscription)
	subscription.Delete("/", subscriptionsController.CancelSubscription)
	subscription.Get("/access", subscriptionsController.CheckProAccess)

	// Upload routes
	uploadsController := controllers.NewUploadsController(db, cfg)
	uploads := app.Group("/api/uploads", authMiddleware)
	uploads.Post("/", uploadsController.GenerateUploadUrl)
	uploads.Post("/:fileId/confirm", uploadsController.ConfirmFileUpload)
	uploads.Delete("/:fileId", uploadsController.DeleteFile)

	// Dashboard
	adminController := controllers.NewAdminController(db, cfg)
	app.Get("/api/dashboard", authMiddleware, adminController.GetDashboardData)

	// Admin routes
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Post("/tutorials", tutorialsController.CreateTutorial)
	admin.Post("/projects", projectsController.CreateProject)
	admin.Post("/resources", resourcesController.CreateResource)
	admin.Post("/roadmaps", roadmapsController.CreateRoadmap)
	admin.Post("/challenges", challengesController.CreateChallenge)
	admin.Get("/analytics", adminController.GetAnalytics)
	admin.Get("/analytics/detailed", adminController.GetDetailedAnalytics)
	admin.Post("/users/:id/pro", adminController.GrantProAccess)
	admin.Delete("/users/:id/pro", adminController.RevokeProAccess)
	admin.Post("/users/:id/winner", adminController.UpgradeWinner)
	admin.Post("/moderate", adminController.ModerateContent)
}
