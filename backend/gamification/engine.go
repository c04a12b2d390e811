package gamification

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"tutorium/backend/models"
)

// Engine evaluates the achievement catalog against a user's activity and
// awards badges. It runs after every point-earning event.
type Engine struct {
	DB *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db}
}

// Award grants the named achievement to the user exactly once and adds its
// points. An unknown achievement name is a silent no-op: catalog lookups are
// never escalated to the caller.
func (e *Engine) Award(userID uint, achievementName string) error {
	var achievement models.Achievement
	if err := e.DB.Where("name = ?", achievementName).First(&achievement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var existing models.UserAchievement
	err := e.DB.Where("user_id = ? AND achievement_id = ?", userID, achievement.ID).
		First(&existing).Error
	if err == nil {
		return nil // already earned
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return e.DB.Transaction(func(tx *gorm.DB) error {
		userAchievement := models.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			DateEarned:    time.Now().UTC(),
		}
		if err := tx.Create(&userAchievement).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", achievement.Points)).Error
	})
}

// CheckAchievements sweeps the catalog for the user.
//
// Streak badges fire on exact day counts only: a user whose streak jumps past
// a threshold without landing on it never receives that badge. Study-time
// tiers are mutually exclusive per sweep, checked in ascending order, so only
// the first satisfied tier is awarded even when several are exceeded.
func (e *Engine) CheckAchievements(userID uint) error {
	var user models.User
	if err := e.DB.First(&user, userID).Error; err != nil {
		return err
	}

	var catalog []models.Achievement
	if err := e.DB.Order("id").Find(&catalog).Error; err != nil {
		return err
	}

	type tiered struct {
		achievement models.Achievement
		minutes     int
	}
	var streaks []models.Achievement
	var tiers []tiered
	var completions []models.Achievement

	for _, a := range catalog {
		switch req := ParseRequirement(a.Requirement); req.Kind {
		case ReqStreakDays:
			if user.StreakDays == req.Value {
				streaks = append(streaks, a)
			}
		case ReqCumulativeMinutes:
			tiers = append(tiers, tiered{achievement: a, minutes: req.Value})
		case ReqCourseCompletion:
			completions = append(completions, a)
		}
	}

	for _, a := range streaks {
		if err := e.Award(userID, a.Name); err != nil {
			return err
		}
	}

	totalMinutes, err := e.totalStudyMinutes(userID)
	if err != nil {
		return err
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].minutes < tiers[j].minutes })
	for _, tier := range tiers {
		if totalMinutes >= tier.minutes {
			if err := e.Award(userID, tier.achievement.Name); err != nil {
				return err
			}
			break
		}
	}

	for _, a := range completions {
		req := ParseRequirement(a.Requirement)
		var count int64
		err := e.DB.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ? AND completed = ?", userID, req.Value, true).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			if err := e.Award(userID, a.Name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Engine) totalStudyMinutes(userID uint) (int, error) {
	var totalSeconds int64
	err := e.DB.Model(&models.LearningSession{}).
		Where("user_id = ? AND duration IS NOT NULL", userID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&totalSeconds).Error
	if err != nil {
		return 0, err
	}
	return int(totalSeconds / 60), nil
}
