package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Name           string `gorm:"not null"`
	Description    string
	EducationLevel string // high_school, college
	Subject        string
	Difficulty     string // beginner, intermediate, advanced
	Topics         []Topic
}

type Topic struct {
	gorm.Model
	CourseID    uint
	Name        string `gorm:"not null"`
	Description string
	VideoLinks  string `gorm:"type:text"` // JSON array of video URLs
}

// VideoLinkList decodes the stored video links. Malformed or empty stored
// values yield an empty list, they never surface as an error.
func (t *Topic) VideoLinkList() []string {
	if t.VideoLinks == "" {
		return []string{}
	}
	var links []string
	if err := json.Unmarshal([]byte(t.VideoLinks), &links); err != nil {
		return []string{}
	}
	if links == nil {
		return []string{}
	}
	return links
}

type Enrollment struct {
	gorm.Model
	UserID         uint
	CourseID       uint
	EnrollmentDate time.Time
	Completed      bool `gorm:"default:false"`
}
