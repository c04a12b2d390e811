package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorium/backend/config"
	"tutorium/backend/gamification"
	"tutorium/backend/models"
	"tutorium/backend/utils"
)

const maxSessionPoints = 30

type SessionsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Engine *gamification.Engine
}

func NewSessionsController(db *gorm.DB, cfg *config.Config) *SessionsController {
	return &SessionsController{DB: db, Cfg: cfg, Engine: gamification.NewEngine(db)}
}

// EndSession closes a learning session: records end time and duration,
// awards one point per whole minute capped at 30, then runs the achievement
// sweep. A session owned by another user is left untouched and the request
// still succeeds, mirroring a redirect rather than an error. Closing twice
// is not guarded; a second close overwrites end time and duration.
func (sc *SessionsController) EndSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	sessionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	var session models.LearningSession
	if err := sc.DB.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if session.UserID != userID {
		return c.JSON(fiber.Map{
			"points_earned": 0,
		})
	}

	now := time.Now().UTC()
	duration := int(now.Sub(session.StartTime).Seconds())
	points := duration / 60
	if points > maxSessionPoints {
		points = maxSessionPoints
	}

	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		session.EndTime = &now
		session.Duration = &duration
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", points)).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not end session",
		})
	}

	if err := sc.Engine.CheckAchievements(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not evaluate achievements",
		})
	}

	var user models.User
	sc.DB.First(&user, userID)

	return c.JSON(fiber.Map{
		"duration":      duration,
		"points_earned": points,
		"total_points":  user.Points,
	})
}
