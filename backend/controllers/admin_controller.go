package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorium/backend/config"
	"tutorium/backend/models"
	"tutorium/backend/utils"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// InitializeDB migrates the schema and loads the sample catalog. Bootstrap
// only: re-running it duplicates courses and topics (achievement names carry
// a unique constraint and will fail quietly instead).
func (ac *AdminController) InitializeDB(c *fiber.Ctx) error {
	if err := utils.Migrate(ac.DB); err != nil {
		return utils.InternalServerError(c, "Could not migrate schema")
	}

	if err := ac.seedCatalog(); err != nil {
		return utils.InternalServerError(c, "Could not seed sample data")
	}

	return c.JSON(fiber.Map{
		"message": "Database initialized with sample data",
	})
}

func (ac *AdminController) seedCatalog() error {
	achievements := []models.Achievement{
		{Name: "First Steps", Description: "Register an account", Points: 10, BadgeImage: "badge_first_steps.png", Requirement: "register"},
		{Name: "3-Day Streak", Description: "Login for 3 consecutive days", Points: 15, BadgeImage: "badge_streak_3.png", Requirement: "streak_3"},
		{Name: "7-Day Streak", Description: "Login for 7 consecutive days", Points: 30, BadgeImage: "badge_streak_7.png", Requirement: "streak_7"},
		{Name: "30-Day Streak", Description: "Login for 30 consecutive days", Points: 100, BadgeImage: "badge_streak_30.png", Requirement: "streak_30"},
		{Name: "1 Hour of Learning", Description: "Study for a total of 1 hour", Points: 20, BadgeImage: "badge_1h.png", Requirement: "study_time_60"},
		{Name: "5 Hours of Learning", Description: "Study for a total of 5 hours", Points: 50, BadgeImage: "badge_5h.png", Requirement: "study_time_300"},
		{Name: "Learning Master", Description: "Study for a total of 10+ hours", Points: 150, BadgeImage: "badge_master.png", Requirement: "study_time_1000"},
	}
	for i := range achievements {
		ac.DB.Create(&achievements[i]) // duplicates rejected by the unique name
	}

	courses := []models.Course{
		{Name: "Algebra Fundamentals", Description: "Basic algebraic concepts and equations", EducationLevel: "high_school", Subject: "Math", Difficulty: "beginner"},
		{Name: "Geometry Basics", Description: "Introduction to geometric shapes and theorems", EducationLevel: "high_school", Subject: "Math", Difficulty: "beginner"},
		{Name: "Trigonometry", Description: "Study of triangles and trigonometric functions", EducationLevel: "high_school", Subject: "Math", Difficulty: "intermediate"},
		{Name: "Pre-Calculus", Description: "Preparation for calculus concepts", EducationLevel: "high_school", Subject: "Math", Difficulty: "advanced"},
		{Name: "Calculus I", Description: "Limits, derivatives, and basic integration", EducationLevel: "college", Subject: "Math", Difficulty: "beginner"},
		{Name: "Linear Algebra", Description: "Vector spaces, matrices, and linear transformations", EducationLevel: "college", Subject: "Math", Difficulty: "intermediate"},
		{Name: "Differential Equations", Description: "Solving and applications of differential equations", EducationLevel: "college", Subject: "Math", Difficulty: "intermediate"},
		{Name: "Advanced Statistics", Description: "Statistical inference and data analysis", EducationLevel: "college", Subject: "Math", Difficulty: "advanced"},
	}
	for i := range courses {
		if err := ac.DB.Create(&courses[i]).Error; err != nil {
			return err
		}
	}

	topics := []models.Topic{
		{
			CourseID:    courses[0].ID,
			Name:        "Solving Linear Equations",
			Description: "Learn how to solve equations in the form ax + b = c",
			VideoLinks: mustJSON([]string{
				"https://www.youtube.com/watch?v=wAHJiM3nZD4",
				"https://www.youtube.com/watch?v=3YzMh-b-CJU",
			}),
		},
		{
			CourseID:    courses[0].ID,
			Name:        "Quadratic Equations",
			Description: "Solving quadratic equations using factoring and the quadratic formula",
			VideoLinks: mustJSON([]string{
				"https://www.youtube.com/watch?v=EBbtoFMJvFc",
				"https://www.youtube.com/watch?v=i7idZfS8t8w",
			}),
		},
		{
			CourseID:    courses[1].ID,
			Name:        "Triangles and Their Properties",
			Description: "Understanding different types of triangles and their properties",
			VideoLinks: mustJSON([]string{
				"https://www.youtube.com/watch?v=JvBbRNRc-Wk",
				"https://www.youtube.com/watch?v=7Jw0YF_UvRo",
			}),
		},
		{
			CourseID:    courses[1].ID,
			Name:        "Circle Theorems",
			Description: "Understanding theorems related to circles",
			VideoLinks: mustJSON([]string{
				"https://www.youtube.com/watch?v=Pv8H8-VH8r8",
				"https://www.youtube.com/watch?v=O30CNvgCJqs",
			}),
		},
	}
	for i := range topics {
		if err := ac.DB.Create(&topics[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func mustJSON(links []string) string {
	data, _ := json.Marshal(links)
	return string(data)
}
