package algorithms

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-augmentation-visualizer/internal/core"
)

func newTestRegistry() *Registry {
	logger, _ := test.NewNullLogger()
	return NewRegistry(7, logger)
}

func newTestRunner() *core.Runner {
	logger, _ := test.NewNullLogger()
	return core.NewRunner(newTestRegistry(), logger)
}

func gradient(h, w, c int) core.Image {
	img := core.NewImage(h, w, c)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 3)
	}
	return img
}

func TestRunFlipsEndToEnd(t *testing.T) {
	src := core.NewFilledImage(4, 4, 3, 128)
	p, err := core.BuildPipeline(core.Selections(core.KindHorizontalFlip, core.KindVerticalFlip))
	require.NoError(t, err)

	result, err := newTestRunner().Run(context.Background(), src, p)
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 3)
	assert.Equal(t, []string{"Original", "HorizontalFlip", "VerticalFlip"}, result.Labels())
	assert.True(t, src.Equal(result.Snapshots[1].Image))
	assert.True(t, src.Equal(result.Snapshots[2].Image))
}

func TestFlipsMirror(t *testing.T) {
	src := gradient(3, 4, 3)
	p := core.Pipeline{
		{Kind: core.KindHorizontalFlip, Params: core.FlipParams{}},
		{Kind: core.KindVerticalFlip, Params: core.FlipParams{}},
	}

	result, err := newTestRunner().Run(context.Background(), src, p)
	require.NoError(t, err)

	h := result.Snapshots[1].Image
	v := result.Snapshots[2].Image
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			for c := 0; c < src.Channels; c++ {
				assert.Equal(t, src.At(y, src.Width-1-x, c), h.At(y, x, c))
				assert.Equal(t, h.At(src.Height-1-y, x, c), v.At(y, x, c))
			}
		}
	}
}

func TestChannelDropoutZeroesSingleChannel(t *testing.T) {
	src := core.NewFilledImage(2, 2, 1, 200)
	p := core.Pipeline{{Kind: core.KindChannelDropout, Params: core.DropoutParams{DropRange: core.IntRange{Min: 1, Max: 1}}}}

	result, err := newTestRunner().Run(context.Background(), src, p)
	require.NoError(t, err)
	out := result.Final()
	assert.Equal(t, core.Shape{Height: 2, Width: 2, Channels: 1}, out.Shape())
	assert.Equal(t, []uint8{0, 0, 0, 0}, out.Pix)
	assert.Equal(t, uint8(200), src.At(0, 0, 0), "source must not be modified")
}

func TestChannelDropoutTooManyChannels(t *testing.T) {
	src := core.NewFilledImage(2, 2, 1, 200)
	p := core.Pipeline{{Kind: core.KindChannelDropout, Params: core.DropoutParams{DropRange: core.IntRange{Min: 1, Max: 2}}}}

	_, err := newTestRunner().Run(context.Background(), src, p)
	var stageErr *core.StageExecutionError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, core.KindChannelDropout, stageErr.Kind)
}

func TestNegativeKernelFailsStage(t *testing.T) {
	p := core.Pipeline{
		{Kind: core.KindVerticalFlip, Params: core.FlipParams{}},
		{Kind: core.KindGaussianBlur, Params: core.BlurParams{KernelSize: -4, SigmaLimit: core.Range{Max: 1}}},
	}

	result, err := newTestRunner().Run(context.Background(), gradient(4, 4, 3), p)
	assert.Nil(t, result)

	var stageErr *core.StageExecutionError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, 1, stageErr.Index)
	assert.Equal(t, core.KindGaussianBlur, stageErr.Kind)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestEvenKernelRejected(t *testing.T) {
	_, err := newTestRegistry().Apply(core.Descriptor{
		Kind:   core.KindAdvancedBlur,
		Params: core.AdvancedBlurParams{KernelSize: 4},
	}, gradient(4, 4, 3))
	assert.ErrorContains(t, err, "must be odd")
}

func TestEveryKindPreservesShape(t *testing.T) {
	all := make([]bool, len(core.PipelineKinds))
	for i := range all {
		all[i] = true
	}
	p, err := core.BuildPipeline(all)
	require.NoError(t, err)
	blur, err := core.BuildGaussianBlur(core.GaussianBlurSettings{BlurLimit: 4, SigmaLimit: 2})
	require.NoError(t, err)
	p = append(p, blur...)

	for _, channels := range []int{1, 3, 4} {
		src := gradient(5, 7, channels)
		result, err := newTestRunner().Run(context.Background(), src, p)
		require.NoError(t, err, "channels %d", channels)
		require.Len(t, result.Snapshots, len(p)+1)
		for _, s := range result.Snapshots {
			assert.Equal(t, src.Shape(), s.Image.Shape(), s.Label)
		}
	}
}

func TestChannelShufflePermutes(t *testing.T) {
	src := core.NewImage(2, 2, 3)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(y, x, 0, 10)
			src.Set(y, x, 1, 20)
			src.Set(y, x, 2, 30)
		}
	}

	out, err := newTestRegistry().Apply(core.Descriptor{Kind: core.KindChannelShuffle, Params: core.ShuffleParams{}}, src)
	require.NoError(t, err)

	got := []int{int(out.At(0, 0, 0)), int(out.At(0, 0, 1)), int(out.At(0, 0, 2))}
	sort.Ints(got)
	assert.Equal(t, []int{10, 20, 30}, got)
	assert.Equal(t, out.At(0, 0, 0), out.At(1, 1, 0))
}

func TestBrightnessAndContrast(t *testing.T) {
	r := newTestRegistry()
	src := core.NewFilledImage(2, 2, 3, 50)

	bright, err := r.Apply(core.Descriptor{Kind: core.KindRandomBrightness, Params: core.ToneParams{Limit: core.Range{Min: 0.2, Max: 0.2}}}, src)
	require.NoError(t, err)
	assert.Equal(t, uint8(101), bright.At(1, 1, 2))

	contrast, err := r.Apply(core.Descriptor{Kind: core.KindRandomContrast, Params: core.ToneParams{Limit: core.Range{Min: 1, Max: 1}}}, src)
	require.NoError(t, err)
	assert.Equal(t, uint8(100), contrast.At(0, 1, 0))

	saturated, err := r.Apply(core.Descriptor{Kind: core.KindRandomContrast, Params: core.ToneParams{Limit: core.Range{Min: 5, Max: 5}}}, src)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), saturated.At(0, 0, 0))
}

func TestGaussNoiseWithoutVarianceIsIdentity(t *testing.T) {
	src := gradient(3, 3, 3)
	out, err := newTestRegistry().Apply(core.Descriptor{Kind: core.KindGaussNoise, Params: core.NoiseParams{}}, src)
	require.NoError(t, err)
	assert.True(t, src.Equal(out))
}

func TestGaussNoiseChangesPixels(t *testing.T) {
	src := core.NewFilledImage(16, 16, 3, 128)
	p, err := core.BuildGaussNoise(core.GaussNoiseSettings{VarLower: 400, VarUpper: 400})
	require.NoError(t, err)

	out, err := newTestRegistry().Apply(p[0], src)
	require.NoError(t, err)
	assert.False(t, src.Equal(out))
}

func TestGaussNoiseReproducibleWithSeed(t *testing.T) {
	src := core.NewFilledImage(8, 8, 3, 128)
	for _, perChannel := range []bool{false, true} {
		p, err := core.BuildGaussNoise(core.GaussNoiseSettings{VarLower: 100, VarUpper: 400, Mean: 5, PerChannel: perChannel})
		require.NoError(t, err)

		first, err := newTestRegistry().Apply(p[0], src)
		require.NoError(t, err)

		// a second registry with the same seed, applied from another goroutine
		done := make(chan core.Image)
		go func() {
			out, err := newTestRegistry().Apply(p[0], src)
			assert.NoError(t, err)
			done <- out
		}()
		second := <-done

		assert.True(t, first.Equal(second), "per channel %v", perChannel)
		assert.False(t, src.Equal(first))
	}
}

func TestGaussNoiseSharedAcrossChannels(t *testing.T) {
	src := core.NewFilledImage(8, 8, 3, 128)
	p, err := core.BuildGaussNoise(core.GaussNoiseSettings{VarLower: 400, VarUpper: 400})
	require.NoError(t, err)

	out, err := newTestRegistry().Apply(p[0], src)
	require.NoError(t, err)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			assert.Equal(t, out.At(y, x, 0), out.At(y, x, 1))
			assert.Equal(t, out.At(y, x, 0), out.At(y, x, 2))
		}
	}
}

func TestRegistryDescribe(t *testing.T) {
	r := newTestRegistry()
	for _, kind := range r.Kinds() {
		assert.NotEmpty(t, r.Describe(kind), kind.String())
	}
	assert.Empty(t, r.Describe(core.Kind(99)))
}

func TestSamplerFill(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(1)))

	values := make([]float64, 1000)
	s.Fill(core.Range{Min: 0.5, Max: 1.5}, values)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 0.5)
		assert.LessOrEqual(t, v, 1.5)
	}

	s.Fill(core.Range{Min: 2, Max: 2}, values)
	assert.Equal(t, 2.0, values[999])

	normal := make([]float32, 4)
	s.FillNormal(normal, 3, 0)
	assert.Equal(t, []float32{3, 3, 3, 3}, normal)
}

func TestGaussianBlurConstantImage(t *testing.T) {
	src := core.NewFilledImage(6, 6, 3, 90)
	p, err := core.BuildGaussianBlur(core.GaussianBlurSettings{BlurLimit: 4, SigmaLimit: 3})
	require.NoError(t, err)

	out, err := newTestRegistry().Apply(p[0], src)
	require.NoError(t, err)
	assert.True(t, src.Equal(out))
}

func TestAdvancedBlurSlidersAtZero(t *testing.T) {
	src := gradient(8, 8, 3)
	for _, settings := range []core.AdvancedBlurSettings{
		{SigmaX: 5, SigmaY: 0, Beta: 1.5, Noise: 1},
		{SigmaX: 0, SigmaY: 4.9, Beta: 1.5, Noise: 1},
		{SigmaX: 0, SigmaY: 0, Beta: 1.5, Noise: 1},
	} {
		p, err := core.BuildAdvancedBlur(settings)
		require.NoError(t, err)

		result, err := newTestRunner().Run(context.Background(), src, p)
		require.NoError(t, err, "settings %+v", settings)
		assert.Equal(t, src.Shape(), result.Final().Shape())
	}
}

func TestAdvancedBlurReportsFirstInvalidRange(t *testing.T) {
	params := core.AdvancedBlurParams{
		SigmaXLimit: core.Range{Min: 2, Max: 1},
		SigmaYLimit: core.Range{Min: 1, Max: 1},
		RotateLimit: core.Range{Min: 10, Max: -10},
		BetaLimit:   core.Range{Min: 2, Max: 1},
		NoiseLimit:  core.Range{Min: 1, Max: 1},
	}
	for i := 0; i < 20; i++ {
		_, err := newTestRegistry().Apply(core.Descriptor{Kind: core.KindAdvancedBlur, Params: params}, gradient(4, 4, 3))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sigma x range is inverted")
	}
}

func TestUnexpectedParams(t *testing.T) {
	_, err := newTestRegistry().Apply(core.Descriptor{Kind: core.KindGaussNoise, Params: core.FlipParams{}}, gradient(2, 2, 3))
	assert.ErrorContains(t, err, "unexpected parameters")
}

func TestUnknownKind(t *testing.T) {
	_, err := newTestRegistry().Apply(core.Descriptor{Kind: core.Kind(99)}, gradient(2, 2, 3))
	assert.ErrorContains(t, err, "algorithm not found")
}

func TestRegistryKinds(t *testing.T) {
	kinds := newTestRegistry().Kinds()
	assert.Len(t, kinds, 9)
	for _, k := range core.PipelineKinds {
		assert.Contains(t, kinds, k)
	}
}

func TestGeneralizedGaussianKernel(t *testing.T) {
	w, err := GeneralizedGaussianKernel(5, 1, 1, 0, 1, nil)
	require.NoError(t, err)

	sum := 0.0
	for _, v := range w {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	center := w[12]
	for i, v := range w {
		assert.LessOrEqual(t, v, center, "index %d", i)
	}
	// isotropic kernels are symmetric
	assert.InDelta(t, w[0], w[24], 1e-12)
	assert.InDelta(t, w[4], w[20], 1e-12)
	assert.InDelta(t, w[2], w[10], 1e-12)
}

func TestGeneralizedGaussianKernelRotation(t *testing.T) {
	wide, err := GeneralizedGaussianKernel(7, 3, 0.5, 0, 1, nil)
	require.NoError(t, err)
	rotated, err := GeneralizedGaussianKernel(7, 3, 0.5, math.Pi/2, 1, nil)
	require.NoError(t, err)

	// wide along x before the rotation, along y after it
	assert.Greater(t, wide[3*7+0], wide[0*7+3])
	assert.InDelta(t, wide[3*7+0], rotated[0*7+3], 1e-9)
}

func TestGeneralizedGaussianKernelErrors(t *testing.T) {
	_, err := GeneralizedGaussianKernel(4, 1, 1, 0, 1, nil)
	assert.Error(t, err)
	_, err = GeneralizedGaussianKernel(3, 1, 1, 0, 1, []float64{1})
	assert.Error(t, err)
}
