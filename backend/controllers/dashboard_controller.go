package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorium/backend/config"
	"tutorium/backend/models"
	"tutorium/backend/utils"
)

// Daily study goal shown on the dashboard, in minutes.
const dailyGoalMinutes = 30

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// GetDashboard godoc
// @Summary User dashboard
// @Description Aggregates recommended and enrolled courses, active challenges, earned achievements and today's study time
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var user models.User
	if err := dc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	// Up to 5 courses matching the user's education level
	var recommended []models.Course
	dc.DB.Where("education_level = ?", user.EducationLevel).Limit(5).Find(&recommended)

	var enrolled []models.Course
	dc.DB.Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ? AND enrollments.deleted_at IS NULL", userID).
		Find(&enrolled)

	// Challenges still running
	var challenges []models.Challenge
	dc.DB.Where("end_date > ?", time.Now().UTC()).Find(&challenges)

	var achievements []models.Achievement
	dc.DB.Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ? AND user_achievements.deleted_at IS NULL", userID).
		Find(&achievements)

	// Seconds studied since midnight UTC
	today := time.Now().UTC().Truncate(24 * time.Hour)
	var studySeconds int64
	dc.DB.Model(&models.LearningSession{}).
		Where("user_id = ? AND start_time >= ? AND duration IS NOT NULL", userID, today).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&studySeconds)

	courseList := func(courses []models.Course) []fiber.Map {
		list := make([]fiber.Map, 0, len(courses))
		for _, course := range courses {
			list = append(list, fiber.Map{
				"id":              course.ID,
				"name":            course.Name,
				"description":     course.Description,
				"subject":         course.Subject,
				"difficulty":      course.Difficulty,
				"education_level": course.EducationLevel,
			})
		}
		return list
	}

	challengeList := make([]fiber.Map, 0, len(challenges))
	for _, challenge := range challenges {
		challengeList = append(challengeList, fiber.Map{
			"id":          challenge.ID,
			"name":        challenge.Name,
			"description": challenge.Description,
			"points":      challenge.Points,
			"end_date":    challenge.EndDate,
		})
	}

	achievementList := make([]fiber.Map, 0, len(achievements))
	for _, achievement := range achievements {
		achievementList = append(achievementList, fiber.Map{
			"id":          achievement.ID,
			"name":        achievement.Name,
			"description": achievement.Description,
			"badge_image": achievement.BadgeImage,
			"points":      achievement.Points,
		})
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"username":    user.Username,
			"points":      user.Points,
			"streak_days": user.StreakDays,
		},
		"recommended_courses": courseList(recommended),
		"enrolled_courses":    courseList(enrolled),
		"active_challenges":   challengeList,
		"achievements":        achievementList,
		"study_time_today":    studySeconds / 60,
		"goal_time":           dailyGoalMinutes,
	})
}

// GetEducatorDashboard is the educator-only landing surface.
func (dc *DashboardController) GetEducatorDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var courseCount, studentCount int64
	dc.DB.Model(&models.Course{}).Count(&courseCount)
	dc.DB.Model(&models.User{}).Where("role = ?", "student").Count(&studentCount)

	return c.JSON(fiber.Map{
		"educator_id": userID,
		"courses":     courseCount,
		"students":    studentCount,
	})
}
