// internal/core/trace.go
// Per-run stage timing and outcome tracking
package core

import (
	"time"

	"github.com/sirupsen/logrus"
)

// StageRecord tracks one executed stage
type StageRecord struct {
	Index    int
	Kind     Kind
	Duration time.Duration
	Success  bool
	Error    string
}

// RunTrace collects the stage records of a single run. It is owned by that
// run and never shared.
type RunTrace struct {
	RunID   string
	Shape   Shape
	Started time.Time
	Stages  []StageRecord
}

func NewRunTrace(runID string, shape Shape) *RunTrace {
	return &RunTrace{
		RunID:   runID,
		Shape:   shape,
		Started: time.Now(),
		Stages:  make([]StageRecord, 0),
	}
}

func (rt *RunTrace) Record(index int, kind Kind, duration time.Duration, err error) {
	rec := StageRecord{
		Index:    index,
		Kind:     kind,
		Duration: duration,
		Success:  err == nil,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	rt.Stages = append(rt.Stages, rec)
}

// Succeeded reports whether every recorded stage succeeded
func (rt *RunTrace) Succeeded() bool {
	for _, s := range rt.Stages {
		if !s.Success {
			return false
		}
	}
	return true
}

func (rt *RunTrace) TotalStageTime() time.Duration {
	var total time.Duration
	for _, s := range rt.Stages {
		total += s.Duration
	}
	return total
}

// Log writes one debug line per stage and a summary line
func (rt *RunTrace) Log(logger logrus.FieldLogger) {
	for _, s := range rt.Stages {
		logger.WithFields(logrus.Fields{
			"stage_index": s.Index,
			"stage_kind":  s.Kind.String(),
			"duration_ms": s.Duration.Milliseconds(),
			"success":     s.Success,
		}).Debug("PIPELINE: Stage")
	}

	logger.WithFields(logrus.Fields{
		"executed":      len(rt.Stages),
		"success":       rt.Succeeded(),
		"stage_time_ms": rt.TotalStageTime().Milliseconds(),
		"wall_time_ms":  time.Since(rt.Started).Milliseconds(),
	}).Info("PIPELINE: Run finished")
}
