// Concrete implementations of difference metrics
package metrics

import (
	"fmt"
	"math"

	"image-augmentation-visualizer/internal/core"
)

func checkComparable(reference, processed core.Image) error {
	if reference.Empty() || processed.Empty() {
		return fmt.Errorf("empty images")
	}
	if reference.Shape() != processed.Shape() {
		return fmt.Errorf("image shape mismatch: %s vs %s", reference.Shape(), processed.Shape())
	}
	return nil
}

func meanSquaredError(reference, processed core.Image) float64 {
	sum := 0.0
	for i, v := range reference.Pix {
		diff := float64(v) - float64(processed.Pix[i])
		sum += diff * diff
	}
	return sum / float64(len(reference.Pix))
}

// MSE implements Mean Squared Error over all samples
type MSE struct{}

func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(reference, processed core.Image) (float64, error) {
	if err := checkComparable(reference, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(reference, processed), nil
}

func (m *MSE) GetName() string {
	return "MSE"
}

func (m *MSE) GetDescription() string {
	return "Mean Squared Error between images"
}

func (m *MSE) IsHigherBetter() bool {
	return false
}

// PSNR implements Peak Signal-to-Noise Ratio
type PSNR struct{}

func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(reference, processed core.Image) (float64, error) {
	if err := checkComparable(reference, processed); err != nil {
		return 0, err
	}

	mse := meanSquaredError(reference, processed)
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}
	return 20 * math.Log10(255/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string {
	return "PSNR"
}

func (p *PSNR) GetDescription() string {
	return "Peak Signal-to-Noise Ratio in dB"
}

func (p *PSNR) IsHigherBetter() bool {
	return true
}

// MeanAbsDiff implements the mean absolute sample difference
type MeanAbsDiff struct{}

func NewMeanAbsDiff() *MeanAbsDiff {
	return &MeanAbsDiff{}
}

func (m *MeanAbsDiff) Calculate(reference, processed core.Image) (float64, error) {
	if err := checkComparable(reference, processed); err != nil {
		return 0, err
	}

	sum := 0.0
	for i, v := range reference.Pix {
		sum += math.Abs(float64(v) - float64(processed.Pix[i]))
	}
	return sum / float64(len(reference.Pix)), nil
}

func (m *MeanAbsDiff) GetName() string {
	return "MAD"
}

func (m *MeanAbsDiff) GetDescription() string {
	return "Mean absolute difference per sample"
}

func (m *MeanAbsDiff) IsHigherBetter() bool {
	return false
}

// Format renders metric values as a short caption, e.g. "MSE 12.30 · PSNR 37.2 dB"
func Format(values map[string]float64) string {
	if len(values) == 0 {
		return ""
	}
	psnr := "∞"
	if v := values["psnr"]; !math.IsInf(v, 1) {
		psnr = fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("MSE %.2f · MAD %.2f · PSNR %s dB", values["mse"], values["mad"], psnr)
}
