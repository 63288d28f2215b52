package img2adofai

import (
	"errors"
	"fmt"
)

var (
	// ErrJSONRepairFailed is returned when no repair stage produced a
	// parseable document.
	ErrJSONRepairFailed = errors.New("json repair failed")

	// ErrUnknownOpcode is returned when a path string holds a character
	// with no angle mapping.
	ErrUnknownOpcode = errors.New("unknown path opcode")

	// ErrDimensionMismatch marks a frame whose size differs from the first
	// frame of the sequence. Builders recover from it by skipping the frame.
	ErrDimensionMismatch = errors.New("frame dimension mismatch")

	// ErrEmptyFrameSequence is returned when a temporal build receives no
	// frames, leaving no size to derive geometry from.
	ErrEmptyFrameSequence = errors.New("empty frame sequence")

	// ErrSinkWrite wraps failures writing a finished level.
	ErrSinkWrite = errors.New("level write failed")

	// ErrInvalidParameter is returned for malformed builder inputs.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// JSONRepairError carries the diagnostic of the last parse attempt.
type JSONRepairError struct {
	Err error
}

func (e *JSONRepairError) Error() string {
	return fmt.Sprintf("%v: %v", ErrJSONRepairFailed, e.Err)
}

func (e *JSONRepairError) Unwrap() []error {
	return []error{ErrJSONRepairFailed, e.Err}
}

// UnknownOpcodeError reports the offending character and its position
// (in characters) within the path string.
type UnknownOpcodeError struct {
	Char  rune
	Index int
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("%v %q at index %d", ErrUnknownOpcode, e.Char, e.Index)
}

func (e *UnknownOpcodeError) Unwrap() error {
	return ErrUnknownOpcode
}

// DimensionMismatchError describes a frame that was skipped because its
// size disagrees with the canonical frame size.
type DimensionMismatchError struct {
	Index         int
	Width, Height int
	WantW, WantH  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%v: frame %d is %dx%d, want %dx%d",
		ErrDimensionMismatch, e.Index, e.Width, e.Height, e.WantW, e.WantH)
}

func (e *DimensionMismatchError) Unwrap() error {
	return ErrDimensionMismatch
}

// SinkWriteError wraps the underlying I/O error unchanged.
type SinkWriteError struct {
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrSinkWrite, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrSinkWrite, e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() []error {
	return []error{ErrSinkWrite, e.Err}
}
