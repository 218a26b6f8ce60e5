package segy

import "errors"

// Sentinel decode errors. Batch processing records these per file; the
// interactive path surfaces them immediately.
var (
	// ErrMalformedHeader indicates the binary file header span is too short
	// or internally inconsistent (for example zero samples per trace).
	ErrMalformedHeader = errors.New("malformed binary header")

	// ErrTruncatedTrace indicates fewer bytes remain in the file than the
	// declared trace record size.
	ErrTruncatedTrace = errors.New("truncated trace")

	// ErrUnsupportedSampleFormat indicates a data sample format code outside
	// the supported set.
	ErrUnsupportedSampleFormat = errors.New("unsupported sample format")

	// ErrCoordinateConfig indicates a coordinate byte-location configuration
	// that points outside the 240-byte trace header.
	ErrCoordinateConfig = errors.New("invalid coordinate byte locations")
)
