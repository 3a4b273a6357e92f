// Sequential pipeline execution
package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// OriginalLabel labels the first snapshot of every run
const OriginalLabel = "Original"

// Transformer applies one descriptor to an image and returns a new image of
// the same shape. It must not modify its input.
type Transformer interface {
	Apply(d Descriptor, img Image) (Image, error)
}

// TransformerFunc adapts a function to the Transformer interface
type TransformerFunc func(d Descriptor, img Image) (Image, error)

func (f TransformerFunc) Apply(d Descriptor, img Image) (Image, error) {
	return f(d, img)
}

// Snapshot is the image captured after a stage, paired with its label
type Snapshot struct {
	Label string
	Image Image
}

// RunResult holds the original image followed by one snapshot per stage
type RunResult struct {
	ID        string
	Snapshots []Snapshot
}

func (r *RunResult) Labels() []string {
	labels := make([]string, len(r.Snapshots))
	for i, s := range r.Snapshots {
		labels[i] = s.Label
	}
	return labels
}

// Final returns the image produced by the last stage, or the original for an
// empty pipeline
func (r *RunResult) Final() Image {
	return r.Snapshots[len(r.Snapshots)-1].Image
}

// Runner folds a pipeline over a source image
type Runner struct {
	transformer Transformer
	logger      logrus.FieldLogger
}

func NewRunner(transformer Transformer, logger logrus.FieldLogger) *Runner {
	return &Runner{
		transformer: transformer,
		logger:      logger,
	}
}

// Run applies every descriptor in order, feeding each stage the previous
// stage's output. Either all stages succeed and a result with len(p)+1
// snapshots is returned, or the first failure is returned as a
// *StageExecutionError.
func (r *Runner) Run(ctx context.Context, src Image, p Pipeline) (*RunResult, error) {
	if src.Empty() {
		return nil, ErrMissingInput
	}
	if err := src.Validate(); err != nil {
		return nil, errors.Wrap(err, "source image")
	}

	trace := NewRunTrace(uuid.NewString(), src.Shape())
	log := r.logger.WithFields(logrus.Fields{
		"run_id": trace.RunID,
		"stages": len(p),
		"shape":  src.Shape().String(),
	})
	log.Debug("PIPELINE: Run started")

	result := &RunResult{
		ID:        trace.RunID,
		Snapshots: make([]Snapshot, 0, len(p)+1),
	}
	result.Snapshots = append(result.Snapshots, Snapshot{Label: OriginalLabel, Image: src})

	acc := src
	for i, d := range p {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "run cancelled before stage %d", i)
		}

		start := time.Now()
		out, err := r.transformer.Apply(d, acc)
		if err == nil {
			err = checkStageOutput(acc, out)
		}
		trace.Record(i, d.Kind, time.Since(start), err)
		if err != nil {
			stageErr := &StageExecutionError{Index: i, Kind: d.Kind, Err: err}
			log.WithError(err).WithFields(logrus.Fields{
				"stage_index": i,
				"stage_kind":  d.Kind.String(),
			}).Error("PIPELINE: Stage failed")
			trace.Log(log)
			return nil, stageErr
		}

		if sharesBuffer(acc, out) {
			out = out.Clone()
		}
		acc = out
		result.Snapshots = append(result.Snapshots, Snapshot{Label: d.Kind.String(), Image: acc})
	}

	trace.Log(log)
	return result, nil
}

func checkStageOutput(in, out Image) error {
	if out.Shape() != in.Shape() {
		return errors.Errorf("transformation changed image shape from %s to %s", in.Shape(), out.Shape())
	}
	if err := out.Validate(); err != nil {
		return errors.Wrap(err, "transformation output")
	}
	return nil
}

// sharesBuffer reports whether out aliases in's pixel buffer
func sharesBuffer(in, out Image) bool {
	return len(in.Pix) > 0 && len(out.Pix) > 0 && &in.Pix[0] == &out.Pix[0]
}
