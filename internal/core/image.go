// Core image data structure shared by every pipeline stage
package core

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
)

// Image is a dense 8-bit pixel array of shape Height x Width x Channels.
// Pixels are stored row-major with interleaved channels.
type Image struct {
	Height   int
	Width    int
	Channels int
	Pix      []uint8
}

// Shape describes the dimensions of an Image
type Shape struct {
	Height   int
	Width    int
	Channels int
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

// NewImage allocates a zeroed image
func NewImage(height, width, channels int) Image {
	return Image{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]uint8, height*width*channels),
	}
}

// NewFilledImage allocates an image with every sample set to value
func NewFilledImage(height, width, channels int, value uint8) Image {
	img := NewImage(height, width, channels)
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

func (img Image) Shape() Shape {
	return Shape{Height: img.Height, Width: img.Width, Channels: img.Channels}
}

// Empty reports whether the image carries no pixels
func (img Image) Empty() bool {
	return img.Height == 0 || img.Width == 0 || img.Channels == 0 || len(img.Pix) == 0
}

// Validate checks that the buffer matches the declared shape
func (img Image) Validate() error {
	if img.Height <= 0 || img.Width <= 0 {
		return fmt.Errorf("invalid image dimensions: %dx%d", img.Width, img.Height)
	}
	if img.Channels != 1 && img.Channels != 3 && img.Channels != 4 {
		return fmt.Errorf("unsupported number of channels: %d", img.Channels)
	}
	if want := img.Height * img.Width * img.Channels; len(img.Pix) != want {
		return fmt.Errorf("pixel buffer has %d samples, shape %s needs %d", len(img.Pix), img.Shape(), want)
	}
	return nil
}

func (img Image) offset(y, x, c int) int {
	return (y*img.Width+x)*img.Channels + c
}

func (img Image) At(y, x, c int) uint8 {
	return img.Pix[img.offset(y, x, c)]
}

func (img Image) Set(y, x, c int, v uint8) {
	img.Pix[img.offset(y, x, c)] = v
}

// Clone returns a deep copy that shares no memory with img
func (img Image) Clone() Image {
	out := img
	out.Pix = append([]uint8(nil), img.Pix...)
	return out
}

// Equal reports whether both images have the same shape and content
func (img Image) Equal(other Image) bool {
	return img.Shape() == other.Shape() && bytes.Equal(img.Pix, other.Pix)
}

// ToGoImage converts to an image.Image for display. Grayscale images map to
// *image.Gray, three and four channel images to *image.NRGBA.
func (img Image) ToGoImage() image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	switch img.Channels {
	case 1:
		gray := image.NewGray(rect)
		copy(gray.Pix, img.Pix)
		return gray
	case 4:
		rgba := image.NewNRGBA(rect)
		copy(rgba.Pix, img.Pix)
		return rgba
	}

	rgba := image.NewNRGBA(rect)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgba.SetNRGBA(x, y, color.NRGBA{
				R: img.At(y, x, 0),
				G: img.At(y, x, 1),
				B: img.At(y, x, 2),
				A: 255,
			})
		}
	}
	return rgba
}
