package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// displayRounding keeps elapsed times readable in the table.
const displayRounding = time.Millisecond

// Status labels for the batch table.
const (
	labelOK      = "OK"
	labelFailed  = "FAILED"
	labelSkipped = "SKIPPED"
)

// RenderReport writes the per-file status table and the batch summary.
func RenderReport(w io.Writer, result *Result, noColor bool) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	if noColor {
		for _, c := range []*color.Color{green, red, yellow} {
			c.DisableColor()
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"File", "Traces", "Points", "Elapsed", "Status"})

	for _, file := range result.Files {
		status := green.Sprint(labelOK)

		switch {
		case file.Skipped:
			status = yellow.Sprint(labelSkipped)
		case file.Err != nil:
			status = red.Sprintf("%s: %v", labelFailed, file.Err)
		}

		t.AppendRow(table.Row{
			filepath.Base(file.Path),
			humanize.Comma(int64(file.Traces)),
			humanize.Comma(int64(file.Points)),
			file.Elapsed.Round(displayRounding).String(),
			status,
		})
	}

	t.Render()

	fmt.Fprintf(w, "\nProcessed: %d  Failed: %d  Skipped: %d\n",
		result.Succeeded, result.Failed, result.Skipped)

	if result.Combined.PointPath != "" {
		fmt.Fprintf(w, "Combined shapefiles:\n  - %s (%s points)\n",
			result.Combined.PointPath, humanize.Comma(int64(result.Combined.Points)))

		if result.Combined.LinePath != "" {
			fmt.Fprintf(w, "  - %s (%d lines)\n", result.Combined.LinePath, result.Combined.Lines)
		}
	}

	if result.CatalogPoints > 0 {
		fmt.Fprintf(w, "Catalog: %d lines, %s points\n",
			result.CatalogLines, humanize.Comma(int64(result.CatalogPoints)))
	}
}
