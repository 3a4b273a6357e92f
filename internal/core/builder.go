// Pipeline construction from toggle and slider state
package core

import (
	"fmt"
	"math"
)

// SigmaEpsilon separates sigma-X and sigma-Y limits supplied equal
const SigmaEpsilon = 0.001

// Lower bounds of the advanced blur ranges built from single slider values
const (
	sigmaXFloor = 0.001
	sigmaYFloor = 0.0001
	betaFloor   = 0.01
)

// GaussianBlurSettings holds the slider values of the Gaussian blur demo
type GaussianBlurSettings struct {
	BlurLimit  int
	SigmaLimit float64
}

// GaussNoiseSettings holds the slider values of the Gaussian noise demo
type GaussNoiseSettings struct {
	VarLower   float64
	VarUpper   float64
	Mean       float64
	PerChannel bool
}

// AdvancedBlurSettings holds the slider values of the advanced blur demo
type AdvancedBlurSettings struct {
	BlurLimit   int
	SigmaX      float64
	SigmaY      float64
	RotateLimit int
	Beta        float64
	Noise       float64
}

// DefaultParams returns the parameterization used when a kind is toggled on
// the pipeline page. Every stage is applied unconditionally.
func DefaultParams(kind Kind) (Params, error) {
	switch kind {
	case KindGaussNoise:
		return NoiseParams{VarLimit: Range{Min: 0.25, Max: 0.5}}, nil
	case KindHorizontalFlip, KindVerticalFlip:
		return FlipParams{}, nil
	case KindRandomBrightness, KindRandomContrast:
		return ToneParams{Limit: Range{Min: 0.5, Max: 1.5}}, nil
	case KindGaussianBlur:
		return BlurParams{KernelSize: 3, SigmaLimit: Range{Min: 0, Max: 0}}, nil
	case KindAdvancedBlur:
		return AdvancedBlurParams{
			KernelSize:  3,
			SigmaXLimit: Range{Min: 0.2, Max: 1.0},
			SigmaYLimit: Range{Min: 0.2, Max: 1.0},
			RotateLimit: Range{Min: -90, Max: 90},
			BetaLimit:   Range{Min: 0.5, Max: 8.0},
			NoiseLimit:  Range{Min: 0.9, Max: 1.1},
		}, nil
	case KindChannelShuffle:
		return ShuffleParams{}, nil
	case KindChannelDropout:
		return DropoutParams{DropRange: IntRange{Min: 1, Max: 1}}, nil
	}
	return nil, &InvalidParameterError{Kind: kind, Reason: "unknown transformation kind"}
}

// BuildPipeline maps a selection vector aligned with PipelineKinds onto a
// pipeline holding one default descriptor per selected kind, in canonical order.
func BuildPipeline(selections []bool) (Pipeline, error) {
	if len(selections) != len(PipelineKinds) {
		return nil, &InvalidParameterError{
			Reason: fmt.Sprintf("expected %d selections, got %d", len(PipelineKinds), len(selections)),
		}
	}

	pipeline := make(Pipeline, 0, len(selections))
	for i, selected := range selections {
		if !selected {
			continue
		}
		kind := PipelineKinds[i]
		params, err := DefaultParams(kind)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, Descriptor{Kind: kind, Params: params})
	}
	return pipeline, nil
}

// Selections returns a selection vector with the given kinds switched on
func Selections(kinds ...Kind) []bool {
	selections := make([]bool, len(PipelineKinds))
	for _, kind := range kinds {
		for i, k := range PipelineKinds {
			if k == kind {
				selections[i] = true
			}
		}
	}
	return selections
}

// BuildSingle returns a one-stage pipeline using the kind's defaults
func BuildSingle(kind Kind) (Pipeline, error) {
	params, err := DefaultParams(kind)
	if err != nil {
		return nil, err
	}
	return Pipeline{{Kind: kind, Params: params}}, nil
}

// OddKernelSize bumps an even blur limit to the next odd value, as the blur
// kernels need an odd size. A result of -1 means no blur and maps to 0.
func OddKernelSize(limit int) int {
	if limit%2 == 0 {
		limit++
	}
	if limit == -1 {
		return 0
	}
	return limit
}

func BuildGaussianBlur(s GaussianBlurSettings) (Pipeline, error) {
	if s.SigmaLimit < 0 {
		return nil, &InvalidParameterError{Kind: KindGaussianBlur, Reason: "sigma limit must not be negative"}
	}
	return Pipeline{{
		Kind: KindGaussianBlur,
		Params: BlurParams{
			KernelSize: OddKernelSize(s.BlurLimit),
			SigmaLimit: Range{Min: 0, Max: s.SigmaLimit},
		},
	}}, nil
}

func BuildGaussNoise(s GaussNoiseSettings) (Pipeline, error) {
	if s.VarLower < 0 || s.VarUpper < s.VarLower {
		return nil, &InvalidParameterError{
			Kind:   KindGaussNoise,
			Reason: fmt.Sprintf("variance range (%g, %g) is invalid", s.VarLower, s.VarUpper),
		}
	}
	return Pipeline{{
		Kind: KindGaussNoise,
		Params: NoiseParams{
			VarLimit:   Range{Min: s.VarLower, Max: s.VarUpper},
			Mean:       s.Mean,
			PerChannel: s.PerChannel,
		},
	}}, nil
}

// BuildAdvancedBlur turns single slider values into the ranges the advanced
// blur samples from. Equal sigma limits are separated by SigmaEpsilon.
func BuildAdvancedBlur(s AdvancedBlurSettings) (Pipeline, error) {
	if s.SigmaX < 0 || s.SigmaY < 0 {
		return nil, &InvalidParameterError{Kind: KindAdvancedBlur, Reason: "sigma limits must not be negative"}
	}
	if s.Beta <= 0 || s.Noise < 0 {
		return nil, &InvalidParameterError{Kind: KindAdvancedBlur, Reason: "beta must be positive and noise non-negative"}
	}

	sigmaX := s.SigmaX
	if sigmaX == s.SigmaY {
		sigmaX += SigmaEpsilon
	}
	rotate := math.Abs(float64(s.RotateLimit))

	return Pipeline{{
		Kind: KindAdvancedBlur,
		Params: AdvancedBlurParams{
			KernelSize:  OddKernelSize(s.BlurLimit),
			SigmaXLimit: floorRange(sigmaXFloor, sigmaX),
			SigmaYLimit: floorRange(sigmaYFloor, s.SigmaY),
			RotateLimit: Range{Min: -rotate, Max: rotate},
			BetaLimit:   floorRange(betaFloor, s.Beta),
			NoiseLimit:  Range{Min: math.Min(s.Noise, 1), Max: math.Max(s.Noise, 1)},
		},
	}}, nil
}

// floorRange spans [floor, upper]. An upper value below the floor is raised
// to it, so a slider at zero still samples a positive value.
func floorRange(floor, upper float64) Range {
	return Range{Min: floor, Max: math.Max(floor, upper)}
}
