package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindowSize is returned for window sizes below 1.
	ErrInvalidWindowSize = errors.New("window size must be >= 1")
	// ErrInsufficientData marks a window without any error-bearing record.
	ErrInsufficientData = errors.New("insufficient data")
)

// EmptyWindowError names the window that has nothing to average.
type EmptyWindowError struct {
	Start int64
	End   int64
}

func (e *EmptyWindowError) Error() string {
	return fmt.Sprintf("window [%d, %d]: %v", e.Start, e.End, ErrInsufficientData)
}

func (e *EmptyWindowError) Is(target error) bool { return target == ErrInsufficientData }
