package models

import (
	"time"

	"gorm.io/gorm"
)

// LearningSession is one timed study interval on a topic. EndTime and
// Duration stay unset until the session is explicitly closed.
type LearningSession struct {
	gorm.Model
	UserID    uint
	TopicID   uint
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int // whole seconds, set once at close
}
