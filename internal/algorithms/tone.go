package algorithms

import (
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

// Brightness shifts every sample by beta*255, beta drawn from the limit
type Brightness struct{}

func NewBrightness() *Brightness {
	return &Brightness{}
}

func (b *Brightness) Apply(input gocv.Mat, params core.Params, s *Sampler) (gocv.Mat, error) {
	p, err := paramsAs[core.ToneParams](b.GetName(), params)
	if err != nil {
		return gocv.NewMat(), err
	}
	if err := p.Limit.Validate("brightness"); err != nil {
		return gocv.NewMat(), err
	}

	beta := s.Uniform(p.Limit) * 255
	output := gocv.NewMat()
	input.ConvertToWithParams(&output, gocv.MatTypeCV8U, 1, float32(beta))
	return output, nil
}

func (b *Brightness) GetName() string {
	return "RandomBrightness"
}

func (b *Brightness) GetDescription() string {
	return "Random additive brightness shift"
}

// Contrast scales every sample by 1+alpha, alpha drawn from the limit
type Contrast struct{}

func NewContrast() *Contrast {
	return &Contrast{}
}

func (c *Contrast) Apply(input gocv.Mat, params core.Params, s *Sampler) (gocv.Mat, error) {
	p, err := paramsAs[core.ToneParams](c.GetName(), params)
	if err != nil {
		return gocv.NewMat(), err
	}
	if err := p.Limit.Validate("contrast"); err != nil {
		return gocv.NewMat(), err
	}

	alpha := 1 + s.Uniform(p.Limit)
	output := gocv.NewMat()
	input.ConvertToWithParams(&output, gocv.MatTypeCV8U, float32(alpha), 0)
	return output, nil
}

func (c *Contrast) GetName() string {
	return "RandomContrast"
}

func (c *Contrast) GetDescription() string {
	return "Random multiplicative contrast change"
}
