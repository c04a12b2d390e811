package tests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"tutorium/backend/models"
)

func TestRegisterAwardsFirstSteps(t *testing.T) {
	registerUser(t, "firststeps", "firststeps@example.com")

	var user models.User
	err := db.Where("username = ?", "firststeps").First(&user).Error
	assert.NoError(t, err)
	assert.Equal(t, 10, user.Points, "registration should award the First Steps points")

	var count int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	registerUser(t, "dupuser", "dupuser@example.com")

	body, _ := json.Marshal(map[string]string{
		"username": "dupuser",
		"email":    "other@example.com",
		"password": "password123",
		"role":     "student",
	})
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Username already exists", result["error"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	registerUser(t, "dupemail", "dupemail@example.com")

	body, _ := json.Marshal(map[string]string{
		"username": "otheruser",
		"email":    "dupemail@example.com",
		"password": "password123",
		"role":     "student",
	})
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Email already exists", result["error"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	registerUser(t, "badlogin", "badlogin@example.com")

	body, _ := json.Marshal(map[string]string{
		"username": "badlogin",
		"password": "wrongpassword",
	})
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func createUserWithActivity(t *testing.T, username string, lastActivity *time.Time, streak int) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         "student",
		StreakDays:   streak,
		LastActivity: lastActivity,
	}
	assert.NoError(t, db.Create(&user).Error)
	return &user
}

func loginStreak(t *testing.T, username string) int {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": "password123",
	})
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		User struct {
			StreakDays int `json:"streak_days"`
		} `json:"user"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	return result.User.StreakDays
}

func TestLoginStreakIncrementsAfterOneDayGap(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	createUserWithActivity(t, "streakinc", &yesterday, 4)

	assert.Equal(t, 5, loginStreak(t, "streakinc"))
}

func TestLoginStreakResetsAfterLongerGap(t *testing.T) {
	twoDaysAgo := time.Now().UTC().AddDate(0, 0, -2)
	createUserWithActivity(t, "streakreset", &twoDaysAgo, 9)

	assert.Equal(t, 1, loginStreak(t, "streakreset"))
}

func TestLoginStreakStartsAtOne(t *testing.T) {
	createUserWithActivity(t, "streakfresh", nil, 0)

	assert.Equal(t, 1, loginStreak(t, "streakfresh"))
}

func TestLoginStreakUnchangedSameDay(t *testing.T) {
	now := time.Now().UTC()
	createUserWithActivity(t, "streaksame", &now, 6)

	assert.Equal(t, 6, loginStreak(t, "streaksame"))
}
