package algorithms

import (
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

// FlipAxis selects the mirror axis using OpenCV flip codes
type FlipAxis int

const (
	FlipVertical   FlipAxis = 0
	FlipHorizontal FlipAxis = 1
)

// Flip mirrors the image around one axis
type Flip struct {
	axis FlipAxis
}

func NewFlip(axis FlipAxis) *Flip {
	return &Flip{axis: axis}
}

func (f *Flip) Apply(input gocv.Mat, params core.Params, _ *Sampler) (gocv.Mat, error) {
	if _, err := paramsAs[core.FlipParams](f.GetName(), params); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	gocv.Flip(input, &output, int(f.axis))
	return output, nil
}

func (f *Flip) GetName() string {
	if f.axis == FlipHorizontal {
		return "HorizontalFlip"
	}
	return "VerticalFlip"
}

func (f *Flip) GetDescription() string {
	if f.axis == FlipHorizontal {
		return "Mirror the image left to right"
	}
	return "Mirror the image top to bottom"
}
