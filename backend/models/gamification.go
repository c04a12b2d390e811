package models

import (
	"time"

	"gorm.io/gorm"
)

// Achievement is a static catalog row, seeded once and looked up by name.
type Achievement struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string
	BadgeImage  string
	Points      int    `gorm:"default:0"`
	Requirement string // e.g. streak_3, study_time_60, complete_course_1
}

type UserAchievement struct {
	gorm.Model
	UserID        uint
	AchievementID uint
	DateEarned    time.Time
}

type Challenge struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Points      int    `gorm:"default:0"`
	Requirement string // e.g. study_time_180
}
