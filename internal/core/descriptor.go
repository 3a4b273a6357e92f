package core

import "fmt"

// Range is a closed numeric interval sampled uniformly by stochastic transforms
type Range struct {
	Min float64
	Max float64
}

// Degenerate reports a zero-width range
func (r Range) Degenerate() bool {
	return r.Min == r.Max
}

func (r Range) Validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range is inverted: (%g, %g)", name, r.Min, r.Max)
	}
	return nil
}

// IntRange is a closed integer interval
type IntRange struct {
	Min int
	Max int
}

// Params is the closed set of per-kind parameter structs. Values are copied
// into a Descriptor and never modified afterwards.
type Params interface {
	isParams()
}

// NoiseParams configures additive Gaussian noise
type NoiseParams struct {
	VarLimit   Range
	Mean       float64
	PerChannel bool
}

// FlipParams carries no settings; the flip axis is given by the kind
type FlipParams struct{}

// ToneParams configures RandomBrightness and RandomContrast
type ToneParams struct {
	Limit Range
}

// BlurParams configures GaussianBlur. KernelSize is the effective odd size or
// 0 to derive it from sigma.
type BlurParams struct {
	KernelSize int
	SigmaLimit Range
}

// AdvancedBlurParams configures the generalized anisotropic Gaussian kernel
type AdvancedBlurParams struct {
	KernelSize  int
	SigmaXLimit Range
	SigmaYLimit Range
	RotateLimit Range // degrees
	BetaLimit   Range
	NoiseLimit  Range
}

// ShuffleParams carries no settings
type ShuffleParams struct{}

// DropoutParams configures ChannelDropout
type DropoutParams struct {
	DropRange IntRange
	FillValue uint8
}

func (NoiseParams) isParams()        {}
func (FlipParams) isParams()         {}
func (ToneParams) isParams()         {}
func (BlurParams) isParams()         {}
func (AdvancedBlurParams) isParams() {}
func (ShuffleParams) isParams()      {}
func (DropoutParams) isParams()      {}

// Descriptor is one self-describing pipeline stage
type Descriptor struct {
	Kind   Kind
	Params Params
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s%+v", d.Kind, d.Params)
}

// Pipeline is an ordered list of descriptors; order is execution order
type Pipeline []Descriptor

// Labels returns the stage labels in execution order
func (p Pipeline) Labels() []string {
	labels := make([]string, len(p))
	for i, d := range p {
		labels[i] = d.Kind.String()
	}
	return labels
}
