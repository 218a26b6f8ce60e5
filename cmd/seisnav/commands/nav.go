package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/seisnav/internal/export"
	"github.com/Sumatoshi-tech/seisnav/pkg/coords"
	"github.com/Sumatoshi-tech/seisnav/pkg/nav"
	"github.com/Sumatoshi-tech/seisnav/pkg/segy"
)

const (
	navCmdUse   = "nav <file.sgy>"
	navCmdShort = "Build navigation for one file and export shapefiles"
	navArgCount = 1
)

// NewNavCommand creates the nav subcommand. Unlike batch, every decode
// error surfaces immediately.
func NewNavCommand(globals Globals) *cobra.Command {
	var (
		outDir string
		mode   string
	)

	cmd := &cobra.Command{
		Use:   navCmdUse,
		Short: navCmdShort,
		Args:  cobra.ExactArgs(navArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := globals.setup()
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = cfg.Export.Directory
			}

			if mode == "" {
				mode = cfg.Coords.Mode
			}

			coordMode, err := coords.ParseMode(mode)
			if err != nil {
				return err
			}

			exporter, err := export.New(outDir)
			if err != nil {
				return err
			}

			sf, err := segy.Open(args[0], cfg.SEGY.Options())
			if err != nil {
				return err
			}
			defer sf.Close()

			headers, err := sf.ReadTraceHeaders()
			if err != nil {
				return err
			}

			logger.Debug("headers read", "file", args[0], "traces", len(headers))

			navigation := nav.Build(args[0], headers, coords.NewConverter(coordMode))

			result, err := exporter.ExportNavigation(navigation)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "File: %s\n", args[0])
			fmt.Fprintf(out, "Traces: %s  Navigation points: %s\n",
				humanize.Comma(int64(len(headers))), humanize.Comma(int64(result.Points)))

			if navigation.Line != nil {
				fmt.Fprintf(out, "Line: %d points", navigation.Line.PointCount)

				if navigation.Line.LengthKm > 0 {
					fmt.Fprintf(out, ", %.3f km", navigation.Line.LengthKm)
				}

				fmt.Fprintln(out)
			}

			fmt.Fprintf(out, "Point shapefile: %s\n", result.PointPath)

			if result.LinePath != "" {
				fmt.Fprintf(out, "Line shapefile: %s\n", result.LinePath)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory for shapefiles")
	cmd.Flags().StringVar(&mode, "mode", "", "coordinate mode (header, geographic, projected)")

	return cmd
}
