package review

import (
	"errors"
	"fmt"
	"strings"
)

var ErrValidation = errors.New("validation error")

type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type RemoteWriteError struct {
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("submit review: remote write failed: %v", e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

type RemoteReadError struct {
	Op  string
	Err error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("%s: remote read failed: %v", e.Op, e.Err)
}

func (e *RemoteReadError) Unwrap() error { return e.Err }
