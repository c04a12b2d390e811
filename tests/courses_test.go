package tests

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"tutorium/backend/models"
)

func TestGetCourseNotFound(t *testing.T) {
	token := registerUser(t, "coursemissing", "coursemissing@example.com")

	resp, err := app.Test(authedRequest("GET", "/course/999999", token, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetCourseDetails(t *testing.T) {
	token := registerUser(t, "coursedetail", "coursedetail@example.com")

	var course models.Course
	assert.NoError(t, db.Where("name = ?", "Algebra Fundamentals").First(&course).Error)

	resp, err := app.Test(authedRequest("GET", fmt.Sprintf("/course/%d", course.ID), token, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Course struct {
			Name string `json:"name"`
		} `json:"course"`
		Topics     []map[string]interface{} `json:"topics"`
		IsEnrolled bool                     `json:"is_enrolled"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Algebra Fundamentals", result.Course.Name)
	assert.Len(t, result.Topics, 2)
	assert.False(t, result.IsEnrolled)
}

func TestEnrollIsIdempotent(t *testing.T) {
	token := registerUser(t, "enroller", "enroller@example.com")

	var course models.Course
	assert.NoError(t, db.Where("name = ?", "Geometry Basics").First(&course).Error)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(authedRequest("GET", fmt.Sprintf("/enroll/%d", course.ID), token, nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var user models.User
	assert.NoError(t, db.Where("username = ?", "enroller").First(&user).Error)

	var enrollments int64
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&enrollments)
	assert.Equal(t, int64(1), enrollments, "double enroll must keep a single row")

	// 10 for First Steps at registration, 10 for the single enrollment
	assert.Equal(t, 20, user.Points)
}

func TestGetTopicStartsSession(t *testing.T) {
	token := registerUser(t, "topicviewer", "topicviewer@example.com")

	var topic models.Topic
	assert.NoError(t, db.Where("name = ?", "Quadratic Equations").First(&topic).Error)

	resp, err := app.Test(authedRequest("GET", fmt.Sprintf("/topic/%d", topic.ID), token, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		VideoLinks []string `json:"video_links"`
		SessionID  uint     `json:"session_id"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result.VideoLinks, 2)
	assert.NotZero(t, result.SessionID)

	var session models.LearningSession
	assert.NoError(t, db.First(&session, result.SessionID).Error)
	assert.Equal(t, topic.ID, session.TopicID)
	assert.Nil(t, session.EndTime)
}

func TestGetTopicMalformedVideoLinks(t *testing.T) {
	token := registerUser(t, "topicbroken", "topicbroken@example.com")

	topic := models.Topic{
		CourseID:    1,
		Name:        "Broken Links Topic",
		Description: "Stored video links are not valid JSON",
		VideoLinks:  "{not valid json",
	}
	assert.NoError(t, db.Create(&topic).Error)

	resp, err := app.Test(authedRequest("GET", fmt.Sprintf("/topic/%d", topic.ID), token, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		VideoLinks []string `json:"video_links"`
		SessionID  uint     `json:"session_id"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Empty(t, result.VideoLinks, "malformed stored JSON must yield an empty list")
	assert.NotZero(t, result.SessionID)
}

func TestGetTopicNotFound(t *testing.T) {
	token := registerUser(t, "topicmissing", "topicmissing@example.com")

	resp, err := app.Test(authedRequest("GET", "/topic/999999", token, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
