package segy

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Options configures how a SEGY file is opened. The zero value means
// big-endian byte order and the SEG-Y standard coordinate layout.
type Options struct {
	ByteOrder binary.ByteOrder
	Layout    CoordinateLayout
}

func (o Options) byteOrder() binary.ByteOrder {
	if o.ByteOrder == nil {
		return binary.BigEndian
	}

	return o.ByteOrder
}

func (o Options) layout() CoordinateLayout {
	if o.Layout == (CoordinateLayout{}) {
		return DefaultCoordinateLayout()
	}

	return o.Layout
}

// Trace owns one decoded trace header and its sample amplitudes. Its
// lifetime is bound to the read that produced it; callers discard traces
// after processing to bound memory.
type Trace struct {
	Header  *TraceHeader
	Samples []float32
}

// File is an open SEGY file: text and binary headers decoded eagerly, trace
// records accessible lazily by index.
type File struct {
	path       string
	f          *os.File
	order      binary.ByteOrder
	layout     CoordinateLayout
	textCards  []TextCard
	binHeader  *BinaryHeader
	decode     SampleDecoder
	dataStart  int64
	traceCount int
	leftover   int64
}

// Open reads the text header, the binary header, and any declared extended
// text headers, then indexes the trace records. All configuration comes in
// through opts; nothing is guessed from the bytes.
func Open(path string, opts Options) (*File, error) {
	if err := opts.layout().Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segy file: %w", err)
	}

	head := make([]byte, TextHeaderSize+BinaryHeaderSize)

	_, err = io.ReadFull(f, head)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("%w: file shorter than text+binary header", ErrMalformedHeader)
	}

	cards, err := DecodeTextHeader(head[:TextHeaderSize])
	if err != nil {
		f.Close()

		return nil, err
	}

	order := opts.byteOrder()

	binHeader, err := DecodeBinaryHeader(head[TextHeaderSize:], order)
	if err != nil {
		f.Close()

		return nil, err
	}

	decode, err := binHeader.Format.Decoder(order)
	if err != nil {
		f.Close()

		return nil, err
	}

	dataStart := int64(TextHeaderSize + BinaryHeaderSize)
	if binHeader.ExtendedHeaders > 0 {
		dataStart += int64(binHeader.ExtendedHeaders) * TextHeaderSize
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("stat segy file: %w", err)
	}

	recordSize := int64(binHeader.TraceRecordSize())
	dataBytes := info.Size() - dataStart

	if dataBytes < 0 {
		dataBytes = 0
	}

	return &File{
		path:       path,
		f:          f,
		order:      order,
		layout:     opts.layout(),
		textCards:  cards,
		binHeader:  binHeader,
		decode:     decode,
		dataStart:  dataStart,
		traceCount: int(dataBytes / recordSize),
		leftover:   dataBytes % recordSize,
	}, nil
}

// Close releases the underlying file handle.
func (sf *File) Close() error {
	return sf.f.Close()
}

// Path returns the file path the reader was opened with.
func (sf *File) Path() string { return sf.path }

// TextHeader returns the decoded C01..C40 cards.
func (sf *File) TextHeader() []TextCard { return sf.textCards }

// BinaryHeader returns the decoded 400-byte binary header.
func (sf *File) BinaryHeader() *BinaryHeader { return sf.binHeader }

// TraceCount returns the number of complete trace records in the file.
func (sf *File) TraceCount() int { return sf.traceCount }

func (sf *File) traceOffset(index int) int64 {
	return sf.dataStart + int64(index)*int64(sf.binHeader.TraceRecordSize())
}

// TraceHeaderAt decodes the header of trace index (0-based) without reading
// its sample block.
func (sf *File) TraceHeaderAt(index int) (*TraceHeader, error) {
	if index < 0 || index >= sf.traceCount {
		return nil, fmt.Errorf("%w: trace %d of %d", ErrTruncatedTrace, index, sf.traceCount)
	}

	buf := make([]byte, TraceHeaderSize)

	_, err := sf.f.ReadAt(buf, sf.traceOffset(index))
	if err != nil {
		return nil, fmt.Errorf("%w: trace %d: %v", ErrTruncatedTrace, index, err)
	}

	return DecodeTraceHeader(buf, sf.order, sf.layout)
}

// TraceAt reads and decodes one full trace record: header plus the sample
// block declared by the binary header.
func (sf *File) TraceAt(index int) (*Trace, error) {
	if index < 0 || index >= sf.traceCount {
		return nil, fmt.Errorf("%w: trace %d of %d", ErrTruncatedTrace, index, sf.traceCount)
	}

	buf := make([]byte, sf.binHeader.TraceRecordSize())

	_, err := sf.f.ReadAt(buf, sf.traceOffset(index))
	if err != nil {
		return nil, fmt.Errorf("%w: trace %d: %v", ErrTruncatedTrace, index, err)
	}

	header, err := DecodeTraceHeader(buf[:TraceHeaderSize], sf.order, sf.layout)
	if err != nil {
		return nil, err
	}

	width := sf.binHeader.Format.Size()
	samples := make([]float32, sf.binHeader.SamplesPerTrace)

	for i := range samples {
		start := TraceHeaderSize + i*width
		samples[i] = sf.decode(buf[start : start+width])
	}

	return &Trace{Header: header, Samples: samples}, nil
}

// ReadTraceHeaders decodes every complete trace header in record order.
// When the file ends in a partial trace record, the decoded headers are
// returned together with ErrTruncatedTrace so callers can decide whether
// partial navigation is acceptable.
func (sf *File) ReadTraceHeaders() ([]*TraceHeader, error) {
	headers := make([]*TraceHeader, 0, sf.traceCount)

	for i := range sf.traceCount {
		header, err := sf.TraceHeaderAt(i)
		if err != nil {
			return headers, err
		}

		headers = append(headers, header)
	}

	if sf.leftover != 0 {
		return headers, fmt.Errorf("%w: %d trailing bytes after trace %d",
			ErrTruncatedTrace, sf.leftover, sf.traceCount)
	}

	return headers, nil
}
