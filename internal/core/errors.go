package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingInput is returned when neither an upload nor a sample is available.
// It is reported before any pipeline is built.
var ErrMissingInput = errors.New("no input image: upload a file or select a sample")

// InvalidParameterError reports parameters the builder cannot turn into a
// usable descriptor.
type InvalidParameterError struct {
	Kind   Kind
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s parameters: %s", e.Kind, e.Reason)
}

// StageExecutionError identifies the pipeline stage whose transformation failed
type StageExecutionError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e *StageExecutionError) Error() string {
	return fmt.Sprintf("stage %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *StageExecutionError) Unwrap() error {
	return e.Err
}

func (e *StageExecutionError) Cause() error {
	return e.Err
}
