package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"tutorium/backend/config"
)

// ErrNoTextFound means OCR produced only whitespace for the image.
var ErrNoTextFound = errors.New("no clear text found")

// mathFixups repairs common OCR misreads of math notation.
var mathFixups = strings.NewReplacer(
	"sinx", "sin(x)",
	"xe^x", "x e^x",
)

type OCRService struct {
	tesseractCmd string
	tempDir      string
	timeout      time.Duration
}

func NewOCRService(cfg *config.Config) *OCRService {
	return &OCRService{
		tesseractCmd: cfg.TesseractCmd,
		tempDir:      cfg.UploadDir,
		timeout:      30 * time.Second,
	}
}

// ExtractText preprocesses the image (grayscale, blur, binary threshold) and
// runs the tesseract binary on it. The processed temp file is removed on all
// exit paths.
func (s *OCRService) ExtractText(ctx context.Context, imageBytes []byte) (string, error) {
	src, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", err
	}

	processed := threshold(imaging.Blur(imaging.Grayscale(src), 1.5), 128)

	processedPath := filepath.Join(s.tempDir, uuid.NewString()+"_processed.png")
	if err := imaging.Save(processed, processedPath); err != nil {
		return "", err
	}
	defer os.Remove(processedPath)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// tesseract <image> stdout -l eng
	out, err := exec.CommandContext(ctx, s.tesseractCmd, processedPath, "stdout", "-l", "eng").Output()
	if err != nil {
		return "", err
	}

	text := mathFixups.Replace(string(out))
	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextFound
	}
	return text, nil
}

// threshold binarizes a grayscale image at the given cutoff.
func threshold(src image.Image, cutoff uint8) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			if gray.Y >= cutoff {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}
