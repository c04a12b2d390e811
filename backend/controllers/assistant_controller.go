package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorium/backend/config"
	"tutorium/backend/models"
	"tutorium/backend/services"
	"tutorium/backend/utils"
)

type AssistantController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	AI     *services.AIClient
	OCR    *services.OCRService
	Speech *services.SpeechService
}

func NewAssistantController(db *gorm.DB, cfg *config.Config) *AssistantController {
	return &AssistantController{
		DB:     db,
		Cfg:    cfg,
		AI:     services.NewAIClient(cfg),
		OCR:    services.NewOCRService(cfg),
		Speech: services.NewSpeechService(cfg),
	}
}

// Ask godoc
// @Summary Ask the AI tutor a question
// @Description Sends the question to the completion service; authenticated users get their education level folded into the prompt
// @Tags assistant
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /ask [post]
func (asc *AssistantController) Ask(c *fiber.Ctx) error {
	var body struct {
		Question string `json:"question"`
	}
	if err := c.BodyParser(&body); err != nil || body.Question == "" {
		return utils.BadRequest(c, "No question provided")
	}

	prompt := body.Question
	// Guests keep a bare prompt; known users get their study context.
	if userID, err := utils.ExtractUserIDFromToken(c, asc.Cfg); err == nil {
		var user models.User
		if err := asc.DB.First(&user, userID).Error; err == nil {
			prompt = fmt.Sprintf("%s. Question: %s", studyContext(&user), body.Question)
		}
	}

	answer := asc.AI.Ask(c.UserContext(), prompt)
	return c.JSON(fiber.Map{
		"answer": answer,
	})
}

// ProcessImage accepts a jpg/jpeg/png upload, extracts text with OCR and
// asks the tutor to explain it. The upload never touches disk unless the
// extension check passes, and every temp file is removed on all exit paths.
func (asc *AssistantController) ProcessImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.BadRequest(c, "No image uploaded")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return utils.BadRequest(c, "Invalid file type")
	}

	tempPath := filepath.Join(asc.Cfg.UploadDir, uuid.NewString()+ext)
	if err := c.SaveFile(fileHeader, tempPath); err != nil {
		return utils.InternalServerError(c, "Could not store upload")
	}
	defer os.Remove(tempPath)

	imageBytes, err := os.ReadFile(tempPath)
	if err != nil {
		return utils.InternalServerError(c, "Could not read upload")
	}

	text, err := asc.OCR.ExtractText(c.UserContext(), imageBytes)
	if err != nil {
		if errors.Is(err, services.ErrNoTextFound) {
			return utils.BadRequest(c, "No clear text found")
		}
		return utils.InternalServerError(c, "Could not process image")
	}

	prompt := fmt.Sprintf("The following text was extracted from an image: '%s'. Help me understand this.", text)
	answer := asc.AI.Ask(c.UserContext(), prompt)

	return c.JSON(fiber.Map{
		"extracted_text": text,
		"answer":         answer,
	})
}

// TranscribeAudio accepts a WAV upload, transcribes it and answers the
// transcription as a question.
func (asc *AssistantController) TranscribeAudio(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return utils.BadRequest(c, "No audio file uploaded")
	}

	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".wav" {
		return utils.BadRequest(c, "Invalid file type")
	}

	tempPath := filepath.Join(asc.Cfg.UploadDir, uuid.NewString()+".wav")
	if err := c.SaveFile(fileHeader, tempPath); err != nil {
		return utils.InternalServerError(c, "Could not store upload")
	}
	defer os.Remove(tempPath)

	wavBytes, err := os.ReadFile(tempPath)
	if err != nil {
		return utils.InternalServerError(c, "Could not read upload")
	}

	transcription, err := asc.Speech.Transcribe(c.UserContext(), wavBytes)
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	answer := asc.AI.Ask(c.UserContext(), transcription)

	return c.JSON(fiber.Map{
		"transcription": transcription,
		"answer":        answer,
	})
}

// SuggestTopics asks the AI for study topic suggestions and relays its JSON.
// A non-JSON completion is a 500, not a degraded answer.
func (asc *AssistantController) SuggestTopics(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, asc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var body struct {
		Subject string `json:"subject"`
	}
	if err := c.BodyParser(&body); err != nil || body.Subject == "" {
		return utils.BadRequest(c, "No subject provided")
	}

	var user models.User
	if err := asc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	prompt := fmt.Sprintf(
		"Based on a %s student in %s studying %s, suggest 3 key math topics they should learn, "+
			"with a brief description and 1 YouTube video link for each. "+
			"Format as JSON with fields: topic_name, description, youtube_link",
		user.EducationLevel, user.GradeOrYear, body.Subject,
	)

	response := asc.AI.Ask(c.UserContext(), prompt)

	var topics interface{}
	if err := json.Unmarshal([]byte(response), &topics); err != nil {
		return utils.InternalServerError(c, "Invalid JSON response from AI")
	}

	return c.JSON(topics)
}

func studyContext(user *models.User) string {
	context := fmt.Sprintf("The student is at %s level", user.EducationLevel)
	if user.EducationLevel == "college" {
		return context + fmt.Sprintf(" majoring in %s", user.Major)
	}
	return context + fmt.Sprintf(" in grade %s", user.GradeOrYear)
}
