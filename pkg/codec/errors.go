package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLength is returned when a record is not exactly 7 bytes or
	// 14 hex characters.
	ErrInvalidLength = errors.New("invalid record length")
	// ErrInvalidHexCharacter is returned when a hex payload contains a
	// character outside [0-9a-fA-F].
	ErrInvalidHexCharacter = errors.New("invalid hex character")
	// ErrFieldOverflow is returned when a field value does not fit its width.
	ErrFieldOverflow = errors.New("field overflow")
	// ErrUnknownLabel is returned when a categorical setter is given a label
	// the field does not define.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrUnknownPreset is returned for an unregistered color preset name.
	ErrUnknownPreset = errors.New("unknown color preset")
	// ErrUnknownField is returned when a field name cannot be resolved.
	ErrUnknownField = errors.New("unknown field")
)

// FieldOverflowError names the field whose value exceeded its bit width.
type FieldOverflowError struct {
	Field Field
	Value uint8
	Width uint
}

func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("%s: %s value %d exceeds %d-bit maximum %d",
		ErrFieldOverflow, e.Field, e.Value, e.Width, maxValue(e.Width))
}

func (e *FieldOverflowError) Unwrap() error {
	return ErrFieldOverflow
}

// UnknownLabelError carries the rejected label and the labels the field accepts.
type UnknownLabelError struct {
	Field Field
	Label string
	Valid []string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("%s %q for %s, choose from: %s",
		ErrUnknownLabel, e.Label, e.Field, strings.Join(e.Valid, ", "))
}

func (e *UnknownLabelError) Unwrap() error {
	return ErrUnknownLabel
}
