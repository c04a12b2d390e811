package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorium/backend/config"
	"tutorium/backend/controllers"
	"tutorium/backend/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authMiddleware := middleware.AuthMiddleware(cfg)
	educatorMiddleware := middleware.RoleMiddleware(db, cfg, "educator")

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/register", authController.Register)
	app.Post("/login", authController.Login)
	app.Get("/logout", authMiddleware, authController.Logout)

	// Assistant routes: /ask and the upload endpoints also serve guests
	assistantController := controllers.NewAssistantController(db, cfg)
	app.Post("/ask", assistantController.Ask)
	app.Post("/process-image", assistantController.ProcessImage)
	app.Post("/transcribe-audio", assistantController.TranscribeAudio)
	app.Post("/suggest_topics", assistantController.SuggestTopics)

	// Course and topic workflow
	coursesController := controllers.NewCoursesController(db, cfg)
	app.Get("/course/:id", authMiddleware, coursesController.GetCourseDetails)
	app.Get("/enroll/:id", authMiddleware, coursesController.Enroll)
	app.Get("/topic/:id", authMiddleware, coursesController.GetTopicDetails)

	// Learning sessions
	sessionsController := controllers.NewSessionsController(db, cfg)
	app.Get("/end_session/:id", authMiddleware, sessionsController.EndSession)

	// Dashboards
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/dashboard", authMiddleware, dashboardController.GetDashboard)
	app.Get("/educator/dashboard", educatorMiddleware, dashboardController.GetEducatorDashboard)

	// Bootstrap
	adminController := controllers.NewAdminController(db, cfg)
	app.Get("/initialize_db", adminController.InitializeDB)
}
