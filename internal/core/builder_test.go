package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPipelineAllFalse(t *testing.T) {
	p, err := BuildPipeline(make([]bool, len(PipelineKinds)))
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestBuildPipelineStability(t *testing.T) {
	n := len(PipelineKinds)
	// every selection vector of length n
	for mask := 0; mask < 1<<n; mask++ {
		selections := make([]bool, n)
		var want []Kind
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				selections[i] = true
				want = append(want, PipelineKinds[i])
			}
		}

		p, err := BuildPipeline(selections)
		require.NoError(t, err)
		require.Len(t, p, len(want))
		for i, d := range p {
			assert.Equal(t, want[i], d.Kind)
		}
	}
}

func TestBuildPipelineDefaults(t *testing.T) {
	p, err := BuildPipeline(Selections(KindGaussNoise, KindAdvancedBlur, KindChannelDropout, KindRandomContrast))
	require.NoError(t, err)
	require.Len(t, p, 4)

	assert.Equal(t, NoiseParams{VarLimit: Range{Min: 0.25, Max: 0.5}}, p[0].Params)
	assert.Equal(t, 3, p[1].Params.(AdvancedBlurParams).KernelSize)
	assert.Equal(t, DropoutParams{DropRange: IntRange{Min: 1, Max: 1}}, p[2].Params)
	assert.Equal(t, ToneParams{Limit: Range{Min: 0.5, Max: 1.5}}, p[3].Params)
}

func TestBuildPipelineWrongLength(t *testing.T) {
	_, err := BuildPipeline([]bool{true, false})
	var paramErr *InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Contains(t, paramErr.Error(), "expected 8 selections")
}

func TestSelections(t *testing.T) {
	s := Selections(KindVerticalFlip, KindGaussNoise)
	assert.Equal(t, []bool{true, false, true, false, false, false, false, false}, s)
}

func TestOddKernelSize(t *testing.T) {
	for k := -100; k <= 100; k += 2 {
		got := OddKernelSize(k)
		if k == -2 {
			assert.Equal(t, 0, got)
			continue
		}
		assert.Equal(t, k+1, got, "even limit %d", k)
	}
	assert.Equal(t, 0, OddKernelSize(-1))
	assert.Equal(t, 3, OddKernelSize(3))
	assert.Equal(t, -3, OddKernelSize(-3))
}

func TestBuildGaussianBlur(t *testing.T) {
	tests := []struct {
		name       string
		blurLimit  int
		wantKernel int
	}{
		{"zero becomes one", 0, 1},
		{"even is bumped", 10, 11},
		{"odd is kept", 7, 7},
		{"minus two means no blur", -2, 0},
		{"minus one means no blur", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildGaussianBlur(GaussianBlurSettings{BlurLimit: tt.blurLimit, SigmaLimit: 5})
			require.NoError(t, err)
			require.Len(t, p, 1)
			params := p[0].Params.(BlurParams)
			assert.Equal(t, tt.wantKernel, params.KernelSize)
			assert.Equal(t, Range{Min: 0, Max: 5}, params.SigmaLimit)
		})
	}
}

func TestBuildGaussianBlurNegativeSigma(t *testing.T) {
	_, err := BuildGaussianBlur(GaussianBlurSettings{SigmaLimit: -1})
	var paramErr *InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, KindGaussianBlur, paramErr.Kind)
}

func TestBuildGaussNoise(t *testing.T) {
	p, err := BuildGaussNoise(GaussNoiseSettings{VarLower: 0, VarUpper: 50, Mean: 30, PerChannel: true})
	require.NoError(t, err)
	assert.Equal(t, Pipeline{{
		Kind: KindGaussNoise,
		Params: NoiseParams{
			VarLimit:   Range{Min: 0, Max: 50},
			Mean:       30,
			PerChannel: true,
		},
	}}, p)

	_, err = BuildGaussNoise(GaussNoiseSettings{VarLower: 60, VarUpper: 50})
	var paramErr *InvalidParameterError
	assert.True(t, errors.As(err, &paramErr))
}

func TestBuildAdvancedBlurEqualSigmas(t *testing.T) {
	for _, v := range []float64{0, 0.5, 4.9, 5, 100} {
		p, err := BuildAdvancedBlur(AdvancedBlurSettings{SigmaX: v, SigmaY: v, Beta: 1.5, Noise: 1})
		require.NoError(t, err)
		params := p[0].Params.(AdvancedBlurParams)
		assert.InDelta(t, v+SigmaEpsilon, params.SigmaXLimit.Max, 1e-9, "sigma %g", v)
		assert.NotEqual(t, params.SigmaXLimit.Max, params.SigmaYLimit.Max)
	}
}

func TestBuildAdvancedBlurDemoDefaults(t *testing.T) {
	got, err := BuildAdvancedBlur(AdvancedBlurSettings{SigmaX: 5, SigmaY: 5, Beta: 1.5, Noise: 1})
	require.NoError(t, err)

	want := Pipeline{{
		Kind: KindAdvancedBlur,
		Params: AdvancedBlurParams{
			SigmaXLimit: Range{Min: sigmaXFloor, Max: 5.001},
			SigmaYLimit: Range{Min: sigmaYFloor, Max: 5},
			RotateLimit: Range{Min: 0, Max: 0},
			BetaLimit:   Range{Min: betaFloor, Max: 1.5},
			NoiseLimit:  Range{Min: 1, Max: 1},
		},
	}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAdvancedBlurRanges(t *testing.T) {
	p, err := BuildAdvancedBlur(AdvancedBlurSettings{
		BlurLimit:   4,
		SigmaX:      5,
		SigmaY:      4.9,
		RotateLimit: -30,
		Beta:        1.5,
		Noise:       0.5,
	})
	require.NoError(t, err)
	params := p[0].Params.(AdvancedBlurParams)

	assert.Equal(t, 5, params.KernelSize)
	assert.Equal(t, Range{Min: sigmaXFloor, Max: 5}, params.SigmaXLimit)
	assert.Equal(t, Range{Min: sigmaYFloor, Max: 4.9}, params.SigmaYLimit)
	assert.Equal(t, Range{Min: -30, Max: 30}, params.RotateLimit)
	assert.Equal(t, Range{Min: betaFloor, Max: 1.5}, params.BetaLimit)
	assert.Equal(t, Range{Min: 0.5, Max: 1}, params.NoiseLimit)
}

func TestBuildAdvancedBlurZeroSigmasKeepFloor(t *testing.T) {
	tests := []struct {
		name     string
		settings AdvancedBlurSettings
		wantX    Range
		wantY    Range
	}{
		{
			name:     "sigma y at zero",
			settings: AdvancedBlurSettings{SigmaX: 5, SigmaY: 0, Beta: 1.5, Noise: 1},
			wantX:    Range{Min: sigmaXFloor, Max: 5},
			wantY:    Range{Min: sigmaYFloor, Max: sigmaYFloor},
		},
		{
			name:     "sigma x at zero",
			settings: AdvancedBlurSettings{SigmaX: 0, SigmaY: 4.9, Beta: 1.5, Noise: 1},
			wantX:    Range{Min: sigmaXFloor, Max: sigmaXFloor},
			wantY:    Range{Min: sigmaYFloor, Max: 4.9},
		},
		{
			name:     "both at zero",
			settings: AdvancedBlurSettings{SigmaX: 0, SigmaY: 0, Beta: 1.5, Noise: 1},
			wantX:    Range{Min: sigmaXFloor, Max: SigmaEpsilon},
			wantY:    Range{Min: sigmaYFloor, Max: sigmaYFloor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildAdvancedBlur(tt.settings)
			require.NoError(t, err)
			params := p[0].Params.(AdvancedBlurParams)

			assert.Equal(t, tt.wantX, params.SigmaXLimit)
			assert.Equal(t, tt.wantY, params.SigmaYLimit)
			assert.Greater(t, params.SigmaXLimit.Min, 0.0)
			assert.Greater(t, params.SigmaYLimit.Min, 0.0)
		})
	}
}

func TestBuildAdvancedBlurRejectsNegativeSigma(t *testing.T) {
	_, err := BuildAdvancedBlur(AdvancedBlurSettings{SigmaX: -1, SigmaY: 2, Beta: 1, Noise: 1})
	var paramErr *InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, KindAdvancedBlur, paramErr.Kind)
}

func TestBuildSingle(t *testing.T) {
	p, err := BuildSingle(KindVerticalFlip)
	require.NoError(t, err)
	assert.Equal(t, Pipeline{{Kind: KindVerticalFlip, Params: FlipParams{}}}, p)

	_, err = BuildSingle(Kind(42))
	assert.Error(t, err)
}
