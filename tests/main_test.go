package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorium/backend/config"
	"tutorium/backend/routes"
	"tutorium/backend/utils"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	uploadDir, err := os.MkdirTemp("", "tutorium-tests")
	if err != nil {
		panic(err)
	}

	cfg = &config.Config{
		DBDriver:    "sqlite",
		DBPath:      "file:integration?mode=memory&cache=shared",
		JWTSecret:   "testsecret",
		ServerPort:  "8080",
		GroqBaseURL: "https://api.groq.com/openai/v1",
		GroqModel:   "llama-3.3-70b-versatile",
		UploadDir:   uploadDir,
		// GroqAPIKey left empty on purpose: /ask must degrade to the
		// fixed unavailable message.
	}

	db, err = utils.InitDB(cfg)
	if err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	// Seed the sample catalog through the bootstrap endpoint
	resp, err := app.Test(httptest.NewRequest("GET", "/initialize_db", nil))
	if err != nil || resp.StatusCode != fiber.StatusOK {
		panic("could not seed test database")
	}
}

func teardown() {
	os.RemoveAll(cfg.UploadDir)
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, username, email string) string {
	t.Helper()

	body := map[string]string{
		"username":        username,
		"email":           email,
		"password":        "password123",
		"role":            "student",
		"education_level": "high_school",
		"grade_or_year":   "10th",
	}
	jsonData, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("register returned status %d", resp.StatusCode)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	token, _ := result["token"].(string)
	if token == "" {
		t.Fatal("register returned no token")
	}
	return token
}

func authedRequest(method, target, token string, body *bytes.Buffer) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", token)
	return req
}
