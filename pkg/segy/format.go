// Package segy decodes SEGY revision 0/1 seismic files: the 3200-byte text
// header, the 400-byte binary file header, per-trace 240-byte headers with
// configurable coordinate byte locations, and trace sample blocks.
package segy

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Fixed structural sizes of a SEGY file.
const (
	TextHeaderSize   = 3200
	BinaryHeaderSize = 400
	TraceHeaderSize  = 240
)

// SampleFormat is the data sample format code from binary header bytes 25-26.
type SampleFormat uint16

// Supported sample format codes.
const (
	FormatIBMFloat  SampleFormat = 1
	FormatInt32     SampleFormat = 2
	FormatInt16     SampleFormat = 3
	FormatIEEEFloat SampleFormat = 5
	FormatInt8      SampleFormat = 8
)

// Size returns the per-sample byte width, or 0 for unsupported codes.
func (f SampleFormat) Size() int {
	switch f {
	case FormatIBMFloat, FormatInt32, FormatIEEEFloat:
		return 4
	case FormatInt16:
		return 2
	case FormatInt8:
		return 1
	default:
		return 0
	}
}

// String returns the SEG-Y standard description for the format code.
func (f SampleFormat) String() string {
	switch f {
	case FormatIBMFloat:
		return "4-byte IBM floating-point"
	case FormatInt32:
		return "4-byte two's complement integer"
	case FormatInt16:
		return "2-byte two's complement integer"
	case FormatIEEEFloat:
		return "4-byte IEEE floating-point"
	case FormatInt8:
		return "1-byte two's complement integer"
	default:
		return fmt.Sprintf("unknown format code %d", uint16(f))
	}
}

// SampleDecoder converts one raw sample span into an amplitude value.
type SampleDecoder func(b []byte) float32

// Decoder returns the decoding strategy for the format code, selected by an
// explicit lookup. Sample bytes are never inspected to guess the format.
func (f SampleFormat) Decoder(order binary.ByteOrder) (SampleDecoder, error) {
	switch f {
	case FormatIBMFloat:
		return func(b []byte) float32 {
			return decodeIBMFloat(order.Uint32(b))
		}, nil
	case FormatInt32:
		return func(b []byte) float32 {
			return float32(int32(order.Uint32(b)))
		}, nil
	case FormatInt16:
		return func(b []byte) float32 {
			return float32(int16(order.Uint16(b)))
		}, nil
	case FormatIEEEFloat:
		return func(b []byte) float32 {
			return math.Float32frombits(order.Uint32(b))
		}, nil
	case FormatInt8:
		return func(b []byte) float32 {
			return float32(int8(b[0]))
		}, nil
	default:
		return nil, fmt.Errorf("%w: code %d", ErrUnsupportedSampleFormat, uint16(f))
	}
}

// IBM float layout: 1 sign bit, 7-bit base-16 exponent biased by 64,
// 24-bit fraction. Zero fraction decodes to zero regardless of exponent.
func decodeIBMFloat(bits uint32) float32 {
	fraction := bits & 0x00ffffff
	if fraction == 0 {
		return 0
	}

	exponent := int((bits>>24)&0x7f) - 64
	mantissa := float64(fraction) / float64(1<<24)
	value := mantissa * math.Pow(16, float64(exponent))

	if bits&0x80000000 != 0 {
		value = -value
	}

	return float32(value)
}
