package services

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMathFixups(t *testing.T) {
	assert.Equal(t, "sin(x) + x e^x", mathFixups.Replace("sinx + xe^x"))
	assert.Equal(t, "2 + 2 = 4", mathFixups.Replace("2 + 2 = 4"))
}

func TestThresholdBinarizes(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 1))
	src.SetGray(0, 0, color.Gray{Y: 10})
	src.SetGray(1, 0, color.Gray{Y: 128})
	src.SetGray(2, 0, color.Gray{Y: 240})

	dst := threshold(src, 128)

	assert.Equal(t, uint8(0), dst.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), dst.GrayAt(1, 0).Y, "cutoff value itself maps to white")
	assert.Equal(t, uint8(255), dst.GrayAt(2, 0).Y)
}
