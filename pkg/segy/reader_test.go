package segy

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFileSamples = 4
	testFileTraces  = 3
)

// writeTestFile builds a minimal big-endian SEGY file: ASCII text header,
// IEEE float samples, sequential trace numbering, arc-second coordinates.
func writeTestFile(t *testing.T, dir string) string {
	t.Helper()

	buf := make([]byte, 0, TextHeaderSize+BinaryHeaderSize)

	text := make([]byte, TextHeaderSize)
	for i := range text {
		text[i] = ' '
	}

	copy(text, "C01 SYNTHETIC TEST LINE")
	buf = append(buf, text...)

	bin := make([]byte, BinaryHeaderSize)
	binary.BigEndian.PutUint16(bin[binSampleInterval-1:], testSampleInterval)
	binary.BigEndian.PutUint16(bin[binSamplesPerTrace-1:], testFileSamples)
	binary.BigEndian.PutUint16(bin[binFormat-1:], uint16(FormatIEEEFloat))
	buf = append(buf, bin...)

	layout := DefaultCoordinateLayout()

	var (
		sourceX = int32(testSourceX)
		sourceY = int32(testSourceY)
		scalar  = int16(testCoordScalar)
	)

	for trace := range testFileTraces {
		hdr := make([]byte, TraceHeaderSize)
		binary.BigEndian.PutUint32(hdr[trcSequenceLine-1:], uint32(trace+1))
		binary.BigEndian.PutUint32(hdr[layout.XOffset-1:], uint32(sourceX))
		binary.BigEndian.PutUint32(hdr[layout.YOffset-1:], uint32(sourceY))
		binary.BigEndian.PutUint16(hdr[layout.ScalarOffset-1:], uint16(scalar))
		binary.BigEndian.PutUint16(hdr[trcYear-1:], testYear)
		binary.BigEndian.PutUint16(hdr[trcDayOfYear-1:], testDayOfYear)
		buf = append(buf, hdr...)

		for s := range testFileSamples {
			sample := make([]byte, 4)
			binary.BigEndian.PutUint32(sample, math.Float32bits(float32(trace*10+s)))
			buf = append(buf, sample...)
		}
	}

	path := filepath.Join(dir, "synthetic.sgy")
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	return path
}

func TestOpen(t *testing.T) {
	path := writeTestFile(t, t.TempDir())

	sf, err := Open(path, Options{})
	require.NoError(t, err)

	defer sf.Close()

	assert.Equal(t, testFileTraces, sf.TraceCount())
	assert.Equal(t, uint16(testFileSamples), sf.BinaryHeader().SamplesPerTrace)
	assert.Equal(t, "C01 SYNTHETIC TEST LINE", sf.TextHeader()[0].Text)
}

func TestOpen_TooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.sgy")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	_, err := Open(path, Options{})
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestOpen_BadLayout(t *testing.T) {
	path := writeTestFile(t, t.TempDir())

	_, err := Open(path, Options{Layout: CoordinateLayout{
		XOffset: 500, YOffset: 77, ScalarOffset: 71, ElevScalarOffset: 69,
	}})
	require.ErrorIs(t, err, ErrCoordinateConfig)
}

func TestFile_TraceAt(t *testing.T) {
	path := writeTestFile(t, t.TempDir())

	sf, err := Open(path, Options{})
	require.NoError(t, err)

	defer sf.Close()

	trace, err := sf.TraceAt(1)
	require.NoError(t, err)

	assert.Equal(t, int32(2), trace.Header.SequenceLine)
	require.Len(t, trace.Samples, testFileSamples)
	assert.InDelta(t, 10.0, trace.Samples[0], floatDelta)
	assert.InDelta(t, 13.0, trace.Samples[3], floatDelta)

	_, err = sf.TraceAt(testFileTraces)
	require.ErrorIs(t, err, ErrTruncatedTrace)
}

func TestFile_ReadTraceHeaders(t *testing.T) {
	path := writeTestFile(t, t.TempDir())

	sf, err := Open(path, Options{})
	require.NoError(t, err)

	defer sf.Close()

	headers, err := sf.ReadTraceHeaders()
	require.NoError(t, err)
	require.Len(t, headers, testFileTraces)

	for i, hdr := range headers {
		assert.Equal(t, int32(i+1), hdr.SequenceLine)
		assert.Equal(t, int32(testSourceX), hdr.SourceX)
	}
}

func TestFile_ReadTraceHeaders_TruncatedTail(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Chop the last trace record in half.
	cut := len(raw) - (TraceHeaderSize+testFileSamples*4)/2
	truncated := filepath.Join(dir, "truncated.sgy")
	require.NoError(t, os.WriteFile(truncated, raw[:cut], 0o644))

	sf, err := Open(truncated, Options{})
	require.NoError(t, err)

	defer sf.Close()

	assert.Equal(t, testFileTraces-1, sf.TraceCount())

	headers, err := sf.ReadTraceHeaders()
	require.ErrorIs(t, err, ErrTruncatedTrace)
	assert.Len(t, headers, testFileTraces-1)
}
