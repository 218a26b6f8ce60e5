package segy

import (
	"encoding/binary"
	"fmt"

	"github.com/Sumatoshi-tech/seisnav/pkg/coords"
)

// CoordinateLayout names the byte locations of the coordinate fields inside
// the 240-byte trace header. Acquisition vendors place coordinates at varying
// offsets, so the locations are configuration, never inferred from field
// contents. Offsets are 1-based as in the SEG-Y standard documents.
type CoordinateLayout struct {
	XOffset          int
	YOffset          int
	ScalarOffset     int
	ElevScalarOffset int
}

// DefaultCoordinateLayout returns the SEG-Y standard locations:
// source X at byte 73, source Y at 77, coordinate scalar at 71, elevation
// scalar at 69.
func DefaultCoordinateLayout() CoordinateLayout {
	return CoordinateLayout{
		XOffset:          73,
		YOffset:          77,
		ScalarOffset:     71,
		ElevScalarOffset: 69,
	}
}

// Validate checks that every configured location fits inside the trace
// header: coordinates are 4-byte fields, scalars 2-byte.
func (l CoordinateLayout) Validate() error {
	check := func(name string, offset, width int) error {
		if offset < 1 || offset+width-1 > TraceHeaderSize {
			return fmt.Errorf("%w: %s byte %d (field width %d)", ErrCoordinateConfig, name, offset, width)
		}

		return nil
	}

	if err := check("x", l.XOffset, 4); err != nil {
		return err
	}

	if err := check("y", l.YOffset, 4); err != nil {
		return err
	}

	if err := check("scalar", l.ScalarOffset, 2); err != nil {
		return err
	}

	return check("elevation scalar", l.ElevScalarOffset, 2)
}

// TraceHeader holds the decoded fields of one 240-byte trace header.
// Coordinates are raw unscaled integers; applying the scalar and the
// seconds-of-arc conversion is the coords package's concern.
type TraceHeader struct {
	SequenceLine     int32
	SequenceFile     int32
	FieldRecord      int32
	TraceNumber      int32
	EnergySource     int32
	CDP              int32
	TraceInEnsemble  int32
	TraceID          int16
	Offset           int32
	GroupElevation   int32
	SourceElevation  int32
	ElevationScalar  int16
	CoordinateScalar int16
	SourceX          int32
	SourceY          int32
	GroupX           int32
	GroupY           int32
	CoordinateUnits  int16
	Samples          uint16
	SampleInterval   uint16
	Year             int16
	DayOfYear        int16
	Hour             int16
	Minute           int16
	Second           int16
	TimeBasis        int16
	CDPX             int32
	CDPY             int32
}

// Standard trace header byte offsets (1-based). Coordinate and scalar fields
// are read from the configured layout instead.
const (
	trcSequenceLine    = 1
	trcSequenceFile    = 5
	trcFieldRecord     = 9
	trcTraceNumber     = 13
	trcEnergySource    = 17
	trcCDP             = 21
	trcTraceInEnsemble = 25
	trcTraceID         = 29
	trcOffset          = 37
	trcGroupElevation  = 41
	trcSourceElevation = 45
	trcGroupX          = 81
	trcGroupY          = 85
	trcCoordinateUnits = 89
	trcSamples         = 115
	trcSampleInterval  = 117
	trcYear            = 157
	trcDayOfYear       = 159
	trcHour            = 161
	trcMinute          = 163
	trcSecond          = 165
	trcTimeBasis       = 167
	trcCDPX            = 181
	trcCDPY            = 185
)

// DecodeTraceHeader decodes one 240-byte trace header span using the given
// byte order and coordinate layout. The layout must have been validated.
func DecodeTraceHeader(b []byte, order binary.ByteOrder, layout CoordinateLayout) (*TraceHeader, error) {
	if len(b) < TraceHeaderSize {
		return nil, fmt.Errorf("%w: got %d of %d header bytes", ErrTruncatedTrace, len(b), TraceHeaderSize)
	}

	i32 := func(offset int) int32 { return int32(order.Uint32(b[offset-1:])) }
	i16 := func(offset int) int16 { return int16(order.Uint16(b[offset-1:])) }

	return &TraceHeader{
		SequenceLine:     i32(trcSequenceLine),
		SequenceFile:     i32(trcSequenceFile),
		FieldRecord:      i32(trcFieldRecord),
		TraceNumber:      i32(trcTraceNumber),
		EnergySource:     i32(trcEnergySource),
		CDP:              i32(trcCDP),
		TraceInEnsemble:  i32(trcTraceInEnsemble),
		TraceID:          i16(trcTraceID),
		Offset:           i32(trcOffset),
		GroupElevation:   i32(trcGroupElevation),
		SourceElevation:  i32(trcSourceElevation),
		ElevationScalar:  i16(layout.ElevScalarOffset),
		CoordinateScalar: i16(layout.ScalarOffset),
		SourceX:          i32(layout.XOffset),
		SourceY:          i32(layout.YOffset),
		GroupX:           i32(trcGroupX),
		GroupY:           i32(trcGroupY),
		CoordinateUnits:  i16(trcCoordinateUnits),
		Samples:          order.Uint16(b[trcSamples-1:]),
		SampleInterval:   order.Uint16(b[trcSampleInterval-1:]),
		Year:             i16(trcYear),
		DayOfYear:        i16(trcDayOfYear),
		Hour:             i16(trcHour),
		Minute:           i16(trcMinute),
		Second:           i16(trcSecond),
		TimeBasis:        i16(trcTimeBasis),
		CDPX:             i32(trcCDPX),
		CDPY:             i32(trcCDPY),
	}, nil
}

// TimeBasisDescription decodes the time basis code.
func TimeBasisDescription(code int16) string {
	switch code {
	case 1:
		return "Local"
	case 2:
		return "GMT"
	case 3:
		return "Other"
	case 4:
		return "UTC"
	default:
		return "Unknown"
	}
}

// Fields returns the decoded fields in standard byte order for display and
// the header text dump.
func (h *TraceHeader) Fields() []HeaderField {
	return []HeaderField{
		{Name: "TraceSequenceLine", Value: int64(h.SequenceLine)},
		{Name: "TraceSequenceFile", Value: int64(h.SequenceFile)},
		{Name: "FieldRecord", Value: int64(h.FieldRecord)},
		{Name: "TraceNumber", Value: int64(h.TraceNumber)},
		{Name: "EnergySourcePoint", Value: int64(h.EnergySource)},
		{Name: "CDP", Value: int64(h.CDP)},
		{Name: "TraceInEnsemble", Value: int64(h.TraceInEnsemble)},
		{Name: "TraceIdentificationCode", Value: int64(h.TraceID)},
		{Name: "Offset", Value: int64(h.Offset)},
		{Name: "ReceiverGroupElevation", Value: int64(h.GroupElevation)},
		{Name: "SourceSurfaceElevation", Value: int64(h.SourceElevation)},
		{Name: "ElevationScalar", Value: int64(h.ElevationScalar)},
		{Name: "SourceGroupScalar", Value: int64(h.CoordinateScalar)},
		{Name: "SourceX", Value: int64(h.SourceX)},
		{Name: "SourceY", Value: int64(h.SourceY)},
		{Name: "GroupX", Value: int64(h.GroupX)},
		{Name: "GroupY", Value: int64(h.GroupY)},
		{Name: "CoordinateUnits", Value: int64(h.CoordinateUnits), Description: coords.UnitsDescription(h.CoordinateUnits)},
		{Name: "Samples", Value: int64(h.Samples)},
		{Name: "SampleInterval", Value: int64(h.SampleInterval), Description: "microseconds"},
		{Name: "YearDataRecorded", Value: int64(h.Year)},
		{Name: "DayOfYear", Value: int64(h.DayOfYear)},
		{Name: "HourOfDay", Value: int64(h.Hour)},
		{Name: "MinuteOfHour", Value: int64(h.Minute)},
		{Name: "SecondOfMinute", Value: int64(h.Second)},
		{Name: "TimeBasis", Value: int64(h.TimeBasis), Description: TimeBasisDescription(h.TimeBasis)},
		{Name: "CDP_X", Value: int64(h.CDPX)},
		{Name: "CDP_Y", Value: int64(h.CDPY)},
	}
}
