package core

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageValidate(t *testing.T) {
	assert.NoError(t, NewImage(2, 3, 3).Validate())
	assert.Error(t, NewImage(0, 3, 3).Validate())
	assert.Error(t, NewImage(2, 2, 2).Validate())
	assert.Error(t, Image{Height: 1, Width: 1, Channels: 1}.Validate())
}

func TestImageCloneIsIndependent(t *testing.T) {
	img := NewFilledImage(2, 2, 1, 7)
	clone := img.Clone()
	clone.Set(0, 0, 0, 9)

	assert.Equal(t, uint8(7), img.At(0, 0, 0))
	assert.False(t, img.Equal(clone))
}

func TestImageToGoImage(t *testing.T) {
	rgb := NewImage(1, 2, 3)
	rgb.Set(0, 1, 0, 10)
	rgb.Set(0, 1, 1, 20)
	rgb.Set(0, 1, 2, 30)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, rgb.ToGoImage().At(1, 0))

	gray := NewFilledImage(2, 2, 1, 42)
	g, ok := gray.ToGoImage().(*image.Gray)
	assert.True(t, ok)
	assert.Equal(t, color.Gray{Y: 42}, g.GrayAt(1, 1))
}

func TestKindLabels(t *testing.T) {
	assert.Equal(t, "GaussNoise", KindGaussNoise.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
