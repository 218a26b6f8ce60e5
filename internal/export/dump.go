package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/seisnav/pkg/segy"
)

const sectionRule = 50

// WriteHeaderDump renders the decoded headers of one file as plain text:
// a file information block, the binary header fields with decoded
// descriptions, and the C01..C40 text header cards.
func WriteHeaderDump(w io.Writer, sf *segy.File) error {
	rule := strings.Repeat("=", sectionRule)
	binHeader := sf.BinaryHeader()
	axis := binHeader.TimeAxis()

	var b strings.Builder

	b.WriteString("FILE INFORMATION\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Filename: %s\n", filepath.Base(sf.Path()))
	fmt.Fprintf(&b, "Number of Traces: %s\n", humanize.Comma(int64(sf.TraceCount())))
	fmt.Fprintf(&b, "Number of Samples: %s\n", humanize.Comma(int64(binHeader.SamplesPerTrace)))
	fmt.Fprintf(&b, "Sample Rate: %.2f ms\n", binHeader.SampleIntervalMillis())
	fmt.Fprintf(&b, "Time Window: %.1f - %.1f ms\n\n", axis[0], axis[len(axis)-1])

	b.WriteString("BINARY HEADERS\n")
	b.WriteString(rule + "\n")

	for _, field := range binHeader.Fields() {
		if field.Description != "" {
			fmt.Fprintf(&b, "%s: %d (%s)\n", field.Name, field.Value, field.Description)
		} else {
			fmt.Fprintf(&b, "%s: %d\n", field.Name, field.Value)
		}
	}

	b.WriteString("\nTEXT HEADERS\n")
	b.WriteString(rule + "\n")

	for _, card := range sf.TextHeader() {
		fmt.Fprintf(&b, "%s: %s\n", card.Key, card.Text)
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write header dump: %w", err)
	}

	return nil
}

// WriteTraceHeaderDump appends one trace header's fields to a dump, used by
// the interactive info path.
func WriteTraceHeaderDump(w io.Writer, index int, hdr *segy.TraceHeader) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nTRACE HEADER (TRACE %d)\n", index+1)
	b.WriteString(strings.Repeat("=", sectionRule) + "\n")

	for _, field := range hdr.Fields() {
		if field.Description != "" {
			fmt.Fprintf(&b, "%s: %d (%s)\n", field.Name, field.Value, field.Description)
		} else {
			fmt.Fprintf(&b, "%s: %d\n", field.Name, field.Value)
		}
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write trace header dump: %w", err)
	}

	return nil
}

// DumpHeaderFile writes the header dump of sf to <base>.txt in dir and
// returns the path.
func DumpHeaderFile(dir string, sf *segy.File) (string, error) {
	path := filepath.Join(dir, baseName(sf.Path())+".txt")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create header dump: %w", err)
	}
	defer f.Close()

	err = WriteHeaderDump(f, sf)
	if err != nil {
		return "", err
	}

	return path, nil
}
