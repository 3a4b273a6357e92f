// Blur filters: Gaussian and generalized anisotropic Gaussian
package algorithms

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

// GaussianFilter implements Gaussian blur with a sampled sigma
type GaussianFilter struct{}

// NewGaussianFilter creates a new Gaussian filter algorithm
func NewGaussianFilter() *GaussianFilter {
	return &GaussianFilter{}
}

func (g *GaussianFilter) Apply(input gocv.Mat, params core.Params, s *Sampler) (gocv.Mat, error) {
	p, err := paramsAs[core.BlurParams](g.GetName(), params)
	if err != nil {
		return gocv.NewMat(), err
	}
	if err := validateKernelSize(p.KernelSize); err != nil {
		return gocv.NewMat(), err
	}
	if p.SigmaLimit.Min < 0 {
		return gocv.NewMat(), errors.New("sigma limit must not be negative")
	}
	if err := p.SigmaLimit.Validate("sigma"); err != nil {
		return gocv.NewMat(), err
	}

	sigma := s.Uniform(p.SigmaLimit)
	if p.KernelSize == 0 && sigma == 0 {
		return input.Clone(), nil
	}

	output := gocv.NewMat()
	gocv.GaussianBlur(input, &output, image.Pt(p.KernelSize, p.KernelSize), sigma, sigma, gocv.BorderReflect101)
	return output, nil
}

func (g *GaussianFilter) GetName() string {
	return "GaussianBlur"
}

func (g *GaussianFilter) GetDescription() string {
	return "Gaussian blur with a random sigma drawn from the sigma limit"
}

// AdvancedBlur convolves with a generalized Gaussian kernel that is
// anisotropic, rotated and perturbed by multiplicative noise
type AdvancedBlur struct{}

func NewAdvancedBlur() *AdvancedBlur {
	return &AdvancedBlur{}
}

func (a *AdvancedBlur) Apply(input gocv.Mat, params core.Params, s *Sampler) (gocv.Mat, error) {
	p, err := paramsAs[core.AdvancedBlurParams](a.GetName(), params)
	if err != nil {
		return gocv.NewMat(), err
	}
	if err := validateKernelSize(p.KernelSize); err != nil {
		return gocv.NewMat(), err
	}
	for _, limit := range []struct {
		name string
		r    core.Range
	}{
		{"sigma x", p.SigmaXLimit},
		{"sigma y", p.SigmaYLimit},
		{"rotate", p.RotateLimit},
		{"beta", p.BetaLimit},
		{"noise", p.NoiseLimit},
	} {
		if err := limit.r.Validate(limit.name); err != nil {
			return gocv.NewMat(), err
		}
	}

	sigmaX := s.Uniform(p.SigmaXLimit)
	sigmaY := s.Uniform(p.SigmaYLimit)
	if sigmaX <= 0 || sigmaY <= 0 {
		return gocv.NewMat(), errors.Errorf("sigmas must be positive, got (%g, %g)", sigmaX, sigmaY)
	}
	beta := s.Uniform(p.BetaLimit)
	if beta <= 0 {
		return gocv.NewMat(), errors.Errorf("beta must be positive, got %g", beta)
	}
	angle := s.Uniform(p.RotateLimit) * math.Pi / 180

	ksize := p.KernelSize
	if ksize == 0 {
		ksize = 2*int(math.Ceil(3*math.Max(sigmaX, sigmaY))) + 1
	}

	noise := make([]float64, ksize*ksize)
	s.Fill(p.NoiseLimit, noise)

	weights, err := GeneralizedGaussianKernel(ksize, sigmaX, sigmaY, angle, beta, noise)
	if err != nil {
		return gocv.NewMat(), err
	}

	kernel := gocv.NewMatWithSize(ksize, ksize, gocv.MatTypeCV32F)
	defer kernel.Close()
	for row := 0; row < ksize; row++ {
		for col := 0; col < ksize; col++ {
			kernel.SetFloatAt(row, col, float32(weights[row*ksize+col]))
		}
	}

	output := gocv.NewMat()
	gocv.Filter2D(input, &output, -1, kernel, image.Pt(-1, -1), 0, gocv.BorderReflect101)
	return output, nil
}

func (a *AdvancedBlur) GetName() string {
	return "AdvancedBlur"
}

func (a *AdvancedBlur) GetDescription() string {
	return "Generalized Gaussian blur with random anisotropy, rotation, shape and kernel noise"
}

// GeneralizedGaussianKernel builds a normalized ksize x ksize kernel, row-major.
// The covariance diag(sx^2, sy^2) is rotated by angle (radians) and the
// exponent is raised to beta. noise multiplies each weight before
// normalization and may be nil.
func GeneralizedGaussianKernel(ksize int, sigmaX, sigmaY, angle, beta float64, noise []float64) ([]float64, error) {
	if ksize <= 0 || ksize%2 == 0 {
		return nil, errors.Errorf("kernel size must be odd and positive, got %d", ksize)
	}
	if noise != nil && len(noise) != ksize*ksize {
		return nil, errors.Errorf("noise has %d values, kernel needs %d", len(noise), ksize*ksize)
	}

	cos, sin := math.Cos(angle), math.Sin(angle)
	vx, vy := sigmaX*sigmaX, sigmaY*sigmaY

	// covariance R * diag(vx, vy) * R^T
	a := cos*cos*vx + sin*sin*vy
	b := cos*sin*(vx-vy)
	d := sin*sin*vx + cos*cos*vy
	det := a*d - b*b
	if det <= 0 {
		return nil, errors.New("degenerate kernel covariance")
	}
	ia, ib, id := d/det, -b/det, a/det

	half := ksize / 2
	weights := make([]float64, ksize*ksize)
	sum := 0.0
	for row := 0; row < ksize; row++ {
		y := float64(row - half)
		for col := 0; col < ksize; col++ {
			x := float64(col - half)
			q := x*x*ia + 2*x*y*ib + y*y*id
			w := math.Exp(-0.5 * math.Pow(q, beta))
			if noise != nil {
				w *= noise[row*ksize+col]
			}
			weights[row*ksize+col] = w
			sum += w
		}
	}
	if sum <= 0 {
		return nil, errors.New("kernel weights sum to zero")
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights, nil
}

// validateKernelSize accepts 0 (derive from sigma) or an odd positive size
func validateKernelSize(ksize int) error {
	if ksize < 0 {
		return errors.Errorf("kernel size must not be negative, got %d", ksize)
	}
	if ksize != 0 && ksize%2 == 0 {
		return errors.Errorf("kernel size must be odd, got %d", ksize)
	}
	return nil
}
