package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorium/backend/config"
	"tutorium/backend/models"
	"tutorium/backend/utils"
)

const enrollmentPoints = 10

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var topics []models.Topic
	cc.DB.Where("course_id = ?", course.ID).Order("id").Find(&topics)

	var enrollmentCount int64
	cc.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, course.ID).
		Count(&enrollmentCount)

	topicList := make([]fiber.Map, 0, len(topics))
	for _, topic := range topics {
		topicList = append(topicList, fiber.Map{
			"id":          topic.ID,
			"name":        topic.Name,
			"description": topic.Description,
		})
	}

	return c.JSON(fiber.Map{
		"course": fiber.Map{
			"id":              course.ID,
			"name":            course.Name,
			"description":     course.Description,
			"education_level": course.EducationLevel,
			"subject":         course.Subject,
			"difficulty":      course.Difficulty,
		},
		"topics":      topicList,
		"is_enrolled": enrollmentCount > 0,
	})
}

// Enroll is idempotent: an existing enrollment is left untouched and no
// points are awarded a second time.
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var existing models.Enrollment
	err = cc.DB.Where("user_id = ? AND course_id = ?", userID, course.ID).
		First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{
			"message":   "Already enrolled",
			"course_id": course.ID,
			"enrolled":  true,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		enrollment := models.Enrollment{
			UserID:         userID,
			CourseID:       course.ID,
			EnrollmentDate: time.Now().UTC(),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", enrollmentPoints)).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not enroll",
		})
	}

	return c.JSON(fiber.Map{
		"message":       "Enrolled",
		"course_id":     course.ID,
		"enrolled":      true,
		"points_earned": enrollmentPoints,
	})
}

// GetTopicDetails returns the topic with its video links and, as a side
// effect, opens a learning session whose id the client uses to close it.
func (cc *CoursesController) GetTopicDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	topicID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid topic ID",
		})
	}

	var topic models.Topic
	if err := cc.DB.First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Topic not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	session := models.LearningSession{
		UserID:    userID,
		TopicID:   topic.ID,
		StartTime: time.Now().UTC(),
	}
	if err := cc.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not start learning session",
		})
	}

	return c.JSON(fiber.Map{
		"topic": fiber.Map{
			"id":          topic.ID,
			"name":        topic.Name,
			"description": topic.Description,
			"course_id":   topic.CourseID,
		},
		"video_links": topic.VideoLinkList(),
		"session_id":  session.ID,
	})
}
