// Difference metrics between pipeline snapshots
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"image-augmentation-visualizer/internal/core"
)

// Metric compares a reference image with a processed one of the same shape
type Metric interface {
	// Calculate computes the metric value
	Calculate(reference, processed core.Image) (float64, error)

	// GetName returns the metric name
	GetName() string

	GetDescription() string

	// IsHigherBetter returns true if higher values mean the images are closer
	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with the default metrics registered
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.RegisterDefaultMetrics()
	return e
}

func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("psnr", NewPSNR())
	e.Register("mse", NewMSE())
	e.Register("mad", NewMeanAbsDiff())
}

func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names in sorted order
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Legend explains each metric in name order, one line per metric
func (e *Evaluator) Legend() string {
	lines := make([]string, 0, len(e.metrics))
	for _, name := range e.Names() {
		metric := e.metrics[name]
		direction := "lower means closer"
		if metric.IsHigherBetter() {
			direction = "higher means closer"
		}
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", metric.GetName(), metric.GetDescription(), direction))
	}
	return strings.Join(lines, "\n")
}

func (e *Evaluator) Calculate(name string, reference, processed core.Image) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}
	return metric.Calculate(reference, processed)
}

// CalculateAll calculates every registered metric, skipping failures
func (e *Evaluator) CalculateAll(reference, processed core.Image) map[string]float64 {
	results := make(map[string]float64)
	for name, metric := range e.metrics {
		if value, err := metric.Calculate(reference, processed); err == nil {
			results[name] = value
		}
	}
	return results
}

// StageDeltas compares every snapshot of a run with the one before it. The
// first entry, for the original, is nil.
func (e *Evaluator) StageDeltas(result *core.RunResult) []map[string]float64 {
	deltas := make([]map[string]float64, len(result.Snapshots))
	for i := 1; i < len(result.Snapshots); i++ {
		deltas[i] = e.CalculateAll(result.Snapshots[i-1].Image, result.Snapshots[i].Image)
	}
	return deltas
}
