package algorithms

import (
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

// GaussNoise adds Gaussian noise whose variance is drawn from the variance
// limit. Without PerChannel the same noise is added to every channel.
type GaussNoise struct{}

func NewGaussNoise() *GaussNoise {
	return &GaussNoise{}
}

func (g *GaussNoise) Apply(input gocv.Mat, params core.Params, s *Sampler) (gocv.Mat, error) {
	p, err := paramsAs[core.NoiseParams](g.GetName(), params)
	if err != nil {
		return gocv.NewMat(), err
	}
	if p.VarLimit.Min < 0 {
		return gocv.NewMat(), errors.New("variance must not be negative")
	}
	if err := p.VarLimit.Validate("variance"); err != nil {
		return gocv.NewMat(), err
	}

	sigma := math.Sqrt(s.Uniform(p.VarLimit))
	channels := input.Channels()

	// drawn from the sampler; a fixed seed reproduces the field
	noise := gocv.NewMatWithSize(input.Rows(), input.Cols(), floatType(channels))
	defer noise.Close()
	field, err := noise.DataPtrFloat32()
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "noise field")
	}
	if p.PerChannel || channels == 1 {
		s.FillNormal(field, p.Mean, sigma)
	} else {
		plane := make([]float32, input.Rows()*input.Cols())
		s.FillNormal(plane, p.Mean, sigma)
		for i, v := range plane {
			for c := 0; c < channels; c++ {
				field[i*channels+c] = v
			}
		}
	}

	signal := gocv.NewMat()
	defer signal.Close()
	input.ConvertTo(&signal, gocv.MatTypeCV32F)

	sum := gocv.NewMat()
	defer sum.Close()
	gocv.Add(signal, noise, &sum)

	output := gocv.NewMat()
	sum.ConvertTo(&output, gocv.MatTypeCV8U)
	return output, nil
}

func (g *GaussNoise) GetName() string {
	return "GaussNoise"
}

func (g *GaussNoise) GetDescription() string {
	return "Additive Gaussian noise, clipped to the 8-bit range"
}

func floatType(channels int) gocv.MatType {
	switch channels {
	case 3:
		return gocv.MatTypeCV32FC3
	case 4:
		return gocv.MatTypeCV32FC4
	}
	return gocv.MatTypeCV32FC1
}
