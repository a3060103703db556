package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDt indicates a negative or non-finite frame step.
	ErrInvalidDt = errors.New("sim: frame step must be positive and finite")

	// ErrNegativeFrame indicates a frame index below zero.
	ErrNegativeFrame = errors.New("sim: frame index must be non-negative")

	// ErrNonMonotonicFrame indicates a frame index lower than one already advanced past.
	ErrNonMonotonicFrame = errors.New("sim: frame index went backwards")

	// ErrInvalidFrames indicates a run with no frames to produce.
	ErrInvalidFrames = errors.New("sim: frame count must be positive")
)

// FrameError wraps a rejected Advance call with the indices involved.
type FrameError struct {
	Index   int
	Last    int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (last %d): %v", e.Index, e.Last, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
