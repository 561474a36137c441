// Package errs defines the sentinel errors returned by encsel.
//
// Errors are wrapped with context using fmt.Errorf and the %w verb, so callers
// should match them with errors.Is.
package errs

import "errors"

var (
	// ErrUnsupportedType is returned when a column descriptor names a physical type
	// outside the recognized set.
	ErrUnsupportedType = errors.New("unsupported physical type")

	// ErrInvalidConfiguration is returned when a policy value required by the chosen
	// encoding path is missing, malformed or inconsistent.
	ErrInvalidConfiguration = errors.New("invalid encoding configuration")

	// ErrUnsupportedValue is returned when a value kind is written to an encoder that
	// does not accept it, e.g. WriteDouble on a byte array encoder.
	ErrUnsupportedValue = errors.New("value kind not supported by encoder")

	// ErrInvalidValueLength is returned when a fixed-width value has the wrong length.
	ErrInvalidValueLength = errors.New("invalid value length")

	// ErrValueOutOfRange is returned when a value does not fit the configured bit width.
	ErrValueOutOfRange = errors.New("value out of range for bit width")

	// ErrWriterFinished is returned when a writer is used after Finish.
	ErrWriterFinished = errors.New("writer already finished")

	// ErrPageSealed is returned when a value is written after the current page was
	// finalized with Bytes and before Reset.
	ErrPageSealed = errors.New("page already finalized")
)
