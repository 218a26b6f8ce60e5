package segy

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Values for the synthetic binary header used across tests.
const (
	testSampleInterval  = 2000 // microseconds
	testSamplesPerTrace = 4000
	testJobID           = 1234
	testLineNumber      = 42
)

func buildBinaryHeader(order binary.ByteOrder, format SampleFormat) []byte {
	buf := make([]byte, BinaryHeaderSize)

	put32 := func(offset int, v uint32) { order.PutUint32(buf[offset-1:], v) }
	put16 := func(offset int, v uint16) { order.PutUint16(buf[offset-1:], v) }

	put32(binJobID, testJobID)
	put32(binLineNumber, testLineNumber)
	put16(binSampleInterval, testSampleInterval)
	put16(binSamplesPerTrace, testSamplesPerTrace)
	put16(binFormat, uint16(format))
	put16(binMeasurementSystem, 1)
	put16(binRevision, 0x0100)

	return buf
}

func TestDecodeBinaryHeader(t *testing.T) {
	buf := buildBinaryHeader(binary.BigEndian, FormatIEEEFloat)

	hdr, err := DecodeBinaryHeader(buf, binary.BigEndian)
	require.NoError(t, err)

	assert.Equal(t, int32(testJobID), hdr.JobID)
	assert.Equal(t, int32(testLineNumber), hdr.LineNumber)
	assert.Equal(t, uint16(testSampleInterval), hdr.SampleInterval)
	assert.Equal(t, uint16(testSamplesPerTrace), hdr.SamplesPerTrace)
	assert.Equal(t, FormatIEEEFloat, hdr.Format)
	assert.Equal(t, int16(1), hdr.MeasurementSystem)
	assert.Equal(t, uint16(0x0100), hdr.Revision)
}

func TestDecodeBinaryHeader_LittleEndian(t *testing.T) {
	buf := buildBinaryHeader(binary.LittleEndian, FormatInt16)

	hdr, err := DecodeBinaryHeader(buf, binary.LittleEndian)
	require.NoError(t, err)

	assert.Equal(t, uint16(testSamplesPerTrace), hdr.SamplesPerTrace)
	assert.Equal(t, FormatInt16, hdr.Format)
}

func TestDecodeBinaryHeader_ShortSpan(t *testing.T) {
	_, err := DecodeBinaryHeader(make([]byte, BinaryHeaderSize-1), binary.BigEndian)
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeBinaryHeader_ZeroSamples(t *testing.T) {
	buf := buildBinaryHeader(binary.BigEndian, FormatIEEEFloat)
	binary.BigEndian.PutUint16(buf[binSamplesPerTrace-1:], 0)

	_, err := DecodeBinaryHeader(buf, binary.BigEndian)
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeBinaryHeader_UnsupportedFormat(t *testing.T) {
	buf := buildBinaryHeader(binary.BigEndian, SampleFormat(4))

	_, err := DecodeBinaryHeader(buf, binary.BigEndian)
	require.ErrorIs(t, err, ErrUnsupportedSampleFormat)
}

// A 4000-sample trace at 2000 microseconds covers [0, 7998] ms TWT.
func TestBinaryHeader_TimeAxis(t *testing.T) {
	buf := buildBinaryHeader(binary.BigEndian, FormatIEEEFloat)

	hdr, err := DecodeBinaryHeader(buf, binary.BigEndian)
	require.NoError(t, err)

	axis := hdr.TimeAxis()
	require.Len(t, axis, testSamplesPerTrace)
	assert.InDelta(t, 0.0, axis[0], floatDelta)
	assert.InDelta(t, 7998.0, axis[len(axis)-1], floatDelta)
}

func TestBinaryHeader_TraceRecordSize(t *testing.T) {
	buf := buildBinaryHeader(binary.BigEndian, FormatInt16)

	hdr, err := DecodeBinaryHeader(buf, binary.BigEndian)
	require.NoError(t, err)

	assert.Equal(t, TraceHeaderSize+testSamplesPerTrace*2, hdr.TraceRecordSize())
}

func TestBinaryHeader_Fields(t *testing.T) {
	buf := buildBinaryHeader(binary.BigEndian, FormatIEEEFloat)

	hdr, err := DecodeBinaryHeader(buf, binary.BigEndian)
	require.NoError(t, err)

	fields := hdr.Fields()
	require.NotEmpty(t, fields)

	byName := make(map[string]HeaderField, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.Equal(t, int64(testSampleInterval), byName["SampleInterval"].Value)
	assert.Equal(t, "4-byte IEEE floating-point", byName["DataSampleFormat"].Description)
	assert.Equal(t, "Meters", byName["MeasurementSystem"].Description)
}
