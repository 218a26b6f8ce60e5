package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/seisnav/internal/export"
	"github.com/Sumatoshi-tech/seisnav/pkg/amplitude"
	"github.com/Sumatoshi-tech/seisnav/pkg/config"
	"github.com/Sumatoshi-tech/seisnav/pkg/segy"
)

const (
	infoCmdUse   = "info <file.sgy>"
	infoCmdShort = "Inspect a file's text, binary, and trace headers"
	infoArgCount = 1

	formatText = "text"
	formatYAML = "yaml"
)

// ErrUnknownFormat is returned for an unrecognized --format value.
var ErrUnknownFormat = errors.New("unknown output format (use text or yaml)")

// NewInfoCommand creates the info subcommand.
func NewInfoCommand(globals Globals) *cobra.Command {
	var (
		dumpDir string
		format  string
		stats   bool
	)

	cmd := &cobra.Command{
		Use:   infoCmdUse,
		Short: infoCmdShort,
		Args:  cobra.ExactArgs(infoArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := globals.setup()
			if err != nil {
				return err
			}

			if format != formatText && format != formatYAML {
				return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
			}

			sf, err := segy.Open(args[0], cfg.SEGY.Options())
			if err != nil {
				return err
			}
			defer sf.Close()

			logger.Debug("file opened", "file", args[0], "traces", sf.TraceCount())

			out := cmd.OutOrStdout()

			if format == formatYAML {
				err = writeInfoYAML(out, sf)
			} else {
				err = writeInfoText(out, sf)
			}

			if err != nil {
				return err
			}

			if stats {
				err = writeAmplitudeStats(out, sf, cfg)
				if err != nil {
					return err
				}
			}

			if dumpDir != "" {
				path, dumpErr := export.DumpHeaderFile(dumpDir, sf)
				if dumpErr != nil {
					return dumpErr
				}

				err = appendTraceDump(path, sf)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "\nHeader dump written to %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dumpDir, "dump", "", "write a header text dump into this directory")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text or yaml)")
	cmd.Flags().BoolVar(&stats, "stats", false, "read all samples and print amplitude statistics")

	return cmd
}

func writeInfoText(w io.Writer, sf *segy.File) error {
	bin := sf.BinaryHeader()

	fmt.Fprintf(w, "File: %s\n", sf.Path())
	fmt.Fprintf(w, "Traces: %s\n", humanize.Comma(int64(sf.TraceCount())))
	fmt.Fprintf(w, "Sample format: %s\n\n", bin.Format)

	fmt.Fprintln(w, "Binary header:")
	renderFields(w, bin.Fields())

	if sf.TraceCount() > 0 {
		hdr, err := sf.TraceHeaderAt(0)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, "\nFirst trace header:")
		renderFields(w, hdr.Fields())
	}

	fmt.Fprintln(w, "\nText header:")

	for _, card := range sf.TextHeader() {
		fmt.Fprintf(w, "%s %s\n", card.Key, card.Text)
	}

	return nil
}

func renderFields(w io.Writer, fields []segy.HeaderField) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value", "Description"})

	for _, field := range fields {
		t.AppendRow(table.Row{field.Name, field.Value, field.Description})
	}

	t.Render()
}

// fieldDocument is one named header value in YAML output.
type fieldDocument struct {
	Name        string `yaml:"name"`
	Value       int64  `yaml:"value"`
	Description string `yaml:"description,omitempty"`
}

// infoDocument is the YAML form of the info output.
type infoDocument struct {
	File       string          `yaml:"file"`
	Traces     int             `yaml:"traces"`
	Binary     []fieldDocument `yaml:"binary_header"`
	FirstTrace []fieldDocument `yaml:"first_trace_header,omitempty"`
	TextHeader []string        `yaml:"text_header"`
}

func writeInfoYAML(w io.Writer, sf *segy.File) error {
	doc := infoDocument{
		File:   sf.Path(),
		Traces: sf.TraceCount(),
		Binary: fieldDocuments(sf.BinaryHeader().Fields()),
	}

	if sf.TraceCount() > 0 {
		hdr, err := sf.TraceHeaderAt(0)
		if err != nil {
			return err
		}

		doc.FirstTrace = fieldDocuments(hdr.Fields())
	}

	for _, card := range sf.TextHeader() {
		doc.TextHeader = append(doc.TextHeader, fmt.Sprintf("%s %s", card.Key, card.Text))
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	err := enc.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode info: %w", err)
	}

	return nil
}

func fieldDocuments(fields []segy.HeaderField) []fieldDocument {
	docs := make([]fieldDocument, 0, len(fields))

	for _, field := range fields {
		docs = append(docs, fieldDocument{
			Name:        field.Name,
			Value:       field.Value,
			Description: field.Description,
		})
	}

	return docs
}

// appendTraceDump extends a header dump file with the first trace header,
// so the interactive dump carries the per-trace fields too.
func appendTraceDump(path string, sf *segy.File) error {
	if sf.TraceCount() == 0 {
		return nil
	}

	hdr, err := sf.TraceHeaderAt(0)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append trace header dump: %w", err)
	}
	defer f.Close()

	return export.WriteTraceHeaderDump(f, 0, hdr)
}

func writeAmplitudeStats(w io.Writer, sf *segy.File, cfg *config.Config) error {
	samples := make([]float32, 0, sf.TraceCount()*int(sf.BinaryHeader().SamplesPerTrace))

	for i := range sf.TraceCount() {
		trace, err := sf.TraceAt(i)
		if err != nil {
			return err
		}

		samples = append(samples, trace.Samples...)
	}

	stats := amplitude.Summarize(samples)

	fmt.Fprintln(w, "\nAmplitude statistics:")
	fmt.Fprintf(w, "  Min: %g  Max: %g  Mean: %g  StdDev: %g\n",
		stats.Min, stats.Max, stats.Mean, stats.StdDev)

	bounds, err := amplitude.ComputeBounds(samples, cfg.Clip.Amplitude())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  Clip bounds: [%g, %g]\n", bounds.Min, bounds.Max)

	depths := amplitude.DepthAxis(int(sf.BinaryHeader().SamplesPerTrace),
		sf.BinaryHeader().SampleInterval, cfg.Clip.Velocity)
	if len(depths) > 0 {
		fmt.Fprintf(w, "  Depth floor at %g m/s velocity: %.1f m\n",
			cfg.Clip.Velocity, depths[len(depths)-1])
	}

	return nil
}
