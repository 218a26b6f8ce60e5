package segy

import (
	"encoding/binary"
	"fmt"
)

// BinaryHeader holds the decoded 400-byte binary file header. Immutable once
// decoded; created once per file at open time.
type BinaryHeader struct {
	JobID                int32
	LineNumber           int32
	ReelNumber           int32
	TracesPerEnsemble    int16
	AuxTracesPerEnsemble int16
	SampleInterval       uint16 // microseconds
	SamplesPerTrace      uint16
	Format               SampleFormat
	EnsembleFold         int16
	TraceSorting         int16
	MeasurementSystem    int16 // 1=meters, 2=feet
	Revision             uint16
	FixedLengthTraces    int16
	ExtendedHeaders      int16
}

// Byte offsets within the 400-byte binary header, 1-based as in the SEG-Y
// standard (file bytes 3201-3600).
const (
	binJobID             = 1
	binLineNumber        = 5
	binReelNumber        = 9
	binTracesPerEnsemble = 13
	binAuxTraces         = 15
	binSampleInterval    = 17
	binSamplesPerTrace   = 21
	binFormat            = 25
	binEnsembleFold      = 27
	binTraceSorting      = 29
	binMeasurementSystem = 55
	binRevision          = 301
	binFixedLength       = 303
	binExtendedHeaders   = 305
)

// DecodeBinaryHeader decodes the 400-byte binary header span. The byte order
// is explicit configuration: SEGY files are typically big-endian, but field
// plausibility is not a reliable detector, so no guessing happens here.
func DecodeBinaryHeader(b []byte, order binary.ByteOrder) (*BinaryHeader, error) {
	if len(b) < BinaryHeaderSize {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrMalformedHeader, len(b), BinaryHeaderSize)
	}

	hdr := &BinaryHeader{
		JobID:                int32(order.Uint32(b[binJobID-1:])),
		LineNumber:           int32(order.Uint32(b[binLineNumber-1:])),
		ReelNumber:           int32(order.Uint32(b[binReelNumber-1:])),
		TracesPerEnsemble:    int16(order.Uint16(b[binTracesPerEnsemble-1:])),
		AuxTracesPerEnsemble: int16(order.Uint16(b[binAuxTraces-1:])),
		SampleInterval:       order.Uint16(b[binSampleInterval-1:]),
		SamplesPerTrace:      order.Uint16(b[binSamplesPerTrace-1:]),
		Format:               SampleFormat(order.Uint16(b[binFormat-1:])),
		EnsembleFold:         int16(order.Uint16(b[binEnsembleFold-1:])),
		TraceSorting:         int16(order.Uint16(b[binTraceSorting-1:])),
		MeasurementSystem:    int16(order.Uint16(b[binMeasurementSystem-1:])),
		Revision:             order.Uint16(b[binRevision-1:]),
		FixedLengthTraces:    int16(order.Uint16(b[binFixedLength-1:])),
		ExtendedHeaders:      int16(order.Uint16(b[binExtendedHeaders-1:])),
	}

	if hdr.SamplesPerTrace == 0 {
		return nil, fmt.Errorf("%w: zero samples per trace", ErrMalformedHeader)
	}

	if hdr.Format.Size() == 0 {
		return nil, fmt.Errorf("%w: code %d", ErrUnsupportedSampleFormat, uint16(hdr.Format))
	}

	return hdr, nil
}

// TraceRecordSize returns the on-disk size of one trace record: the 240-byte
// trace header plus the declared sample block.
func (h *BinaryHeader) TraceRecordSize() int {
	return TraceHeaderSize + int(h.SamplesPerTrace)*h.Format.Size()
}

// SampleIntervalMillis returns the sample interval in milliseconds.
func (h *BinaryHeader) SampleIntervalMillis() float64 {
	return float64(h.SampleInterval) / 1000.0
}

// TimeAxis returns the two-way-time of every sample in milliseconds,
// starting at zero.
func (h *BinaryHeader) TimeAxis() []float64 {
	axis := make([]float64, h.SamplesPerTrace)
	step := h.SampleIntervalMillis()

	for i := range axis {
		axis[i] = float64(i) * step
	}

	return axis
}

// MeasurementSystemDescription decodes the measurement system flag.
func MeasurementSystemDescription(code int16) string {
	switch code {
	case 1:
		return "Meters"
	case 2:
		return "Feet"
	default:
		return "Unknown"
	}
}

// TraceSortingDescription decodes the trace sorting code.
func TraceSortingDescription(code int16) string {
	switch code {
	case -1:
		return "Other"
	case 0:
		return "Unknown"
	case 1:
		return "As recorded (no sorting)"
	case 2:
		return "CDP ensemble"
	case 3:
		return "Single fold continuous profile"
	case 4:
		return "Horizontally stacked"
	case 5:
		return "Common source point"
	case 6:
		return "Common receiver point"
	case 7:
		return "Common offset point"
	case 8:
		return "Common mid-point"
	case 9:
		return "Common conversion point"
	default:
		return "Unknown"
	}
}

// HeaderField is one named header value for text dumps and display layers.
type HeaderField struct {
	Name        string
	Value       int64
	Description string
}

// Fields returns the decoded fields in standard byte order for display and
// the header text dump.
func (h *BinaryHeader) Fields() []HeaderField {
	return []HeaderField{
		{Name: "JobID", Value: int64(h.JobID)},
		{Name: "LineNumber", Value: int64(h.LineNumber)},
		{Name: "ReelNumber", Value: int64(h.ReelNumber)},
		{Name: "TracesPerEnsemble", Value: int64(h.TracesPerEnsemble)},
		{Name: "AuxTracesPerEnsemble", Value: int64(h.AuxTracesPerEnsemble)},
		{Name: "SampleInterval", Value: int64(h.SampleInterval), Description: "microseconds"},
		{Name: "SamplesPerTrace", Value: int64(h.SamplesPerTrace)},
		{Name: "DataSampleFormat", Value: int64(h.Format), Description: h.Format.String()},
		{Name: "EnsembleFold", Value: int64(h.EnsembleFold)},
		{Name: "TraceSorting", Value: int64(h.TraceSorting), Description: TraceSortingDescription(h.TraceSorting)},
		{Name: "MeasurementSystem", Value: int64(h.MeasurementSystem), Description: MeasurementSystemDescription(h.MeasurementSystem)},
		{Name: "SEGYRevision", Value: int64(h.Revision)},
		{Name: "FixedLengthTraces", Value: int64(h.FixedLengthTraces)},
		{Name: "ExtendedHeaders", Value: int64(h.ExtendedHeaders)},
	}
}
