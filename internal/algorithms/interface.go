// Augmentation algorithm registry backed by GoCV
package algorithms

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

// Algorithm applies one transformation family to a Mat. Implementations must
// not modify the input and must return a new Mat of the same size and
// channel count.
type Algorithm interface {
	Apply(input gocv.Mat, params core.Params, s *Sampler) (gocv.Mat, error)
	GetName() string
	GetDescription() string
}

// Registry maps transformation kinds to algorithms and implements
// core.Transformer
type Registry struct {
	algorithms map[core.Kind]Algorithm
	sampler    *Sampler
	logger     logrus.FieldLogger
}

// NewRegistry registers every augmentation. A non-zero seed makes the random
// draws reproducible across runs.
func NewRegistry(seed int64, logger logrus.FieldLogger) *Registry {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Registry{
		algorithms: make(map[core.Kind]Algorithm),
		sampler:    NewSampler(rand.New(rand.NewSource(seed))),
		logger:     logger,
	}

	r.Register(core.KindGaussNoise, NewGaussNoise())
	r.Register(core.KindHorizontalFlip, NewFlip(FlipHorizontal))
	r.Register(core.KindVerticalFlip, NewFlip(FlipVertical))
	r.Register(core.KindRandomBrightness, NewBrightness())
	r.Register(core.KindRandomContrast, NewContrast())
	r.Register(core.KindGaussianBlur, NewGaussianFilter())
	r.Register(core.KindAdvancedBlur, NewAdvancedBlur())
	r.Register(core.KindChannelShuffle, NewChannelShuffle())
	r.Register(core.KindChannelDropout, NewChannelDropout())

	return r
}

func (r *Registry) Register(kind core.Kind, algorithm Algorithm) {
	r.algorithms[kind] = algorithm
}

func (r *Registry) Get(kind core.Kind) (Algorithm, bool) {
	algorithm, exists := r.algorithms[kind]
	return algorithm, exists
}

// Describe returns the description of the kind's algorithm
func (r *Registry) Describe(kind core.Kind) string {
	algorithm, exists := r.Get(kind)
	if !exists {
		return ""
	}
	return algorithm.GetDescription()
}

// Kinds returns the registered kinds in ascending order
func (r *Registry) Kinds() []core.Kind {
	kinds := make([]core.Kind, 0, len(r.algorithms))
	for kind := range r.algorithms {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Apply runs the descriptor's algorithm on a copy of img
func (r *Registry) Apply(d core.Descriptor, img core.Image) (core.Image, error) {
	algorithm, exists := r.algorithms[d.Kind]
	if !exists {
		return core.Image{}, fmt.Errorf("algorithm not found: %s", d.Kind)
	}

	input, err := toMat(img)
	if err != nil {
		return core.Image{}, err
	}
	defer input.Close()

	output, err := algorithm.Apply(input, d.Params, r.sampler)
	if err != nil {
		return core.Image{}, err
	}
	defer output.Close()

	if output.Rows() != input.Rows() || output.Cols() != input.Cols() || output.Channels() != input.Channels() {
		return core.Image{}, errors.Errorf("%s produced %dx%dx%d from %dx%dx%d", algorithm.GetName(),
			output.Rows(), output.Cols(), output.Channels(), input.Rows(), input.Cols(), input.Channels())
	}

	r.logger.WithFields(logrus.Fields{
		"algorithm": algorithm.GetName(),
		"params":    fmt.Sprintf("%+v", d.Params),
	}).Debug("ALGORITHM: Applied")

	return fromMat(output)
}

// paramsAs asserts the descriptor parameters to the type an algorithm expects
func paramsAs[T core.Params](name string, params core.Params) (T, error) {
	p, ok := params.(T)
	if !ok {
		var zero T
		return zero, errors.Errorf("%s: unexpected parameters %T", name, params)
	}
	return p, nil
}
