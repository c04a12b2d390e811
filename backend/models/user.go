package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username       string `gorm:"unique;not null"`
	Email          string `gorm:"unique;not null"`
	PasswordHash   string `gorm:"not null"`
	Role           string `gorm:"default:student"` // student, educator
	EducationLevel string // high_school, college
	GradeOrYear    string // '9th', '10th', 'freshman', ...
	Major          string // for college students
	Points         int    `gorm:"default:0"`
	StreakDays     int    `gorm:"default:0"`
	LastActivity   *time.Time
}
