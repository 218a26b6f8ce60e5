package commands

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/seisnav/internal/batch"
	"github.com/Sumatoshi-tech/seisnav/internal/export"
	"github.com/Sumatoshi-tech/seisnav/pkg/coords"
)

const (
	batchCmdUse   = "batch <file.sgy>..."
	batchCmdShort = "Process many files into per-file and combined shapefiles"
)

// ErrAllFilesFailed is returned when no input file produced navigation.
var ErrAllFilesFailed = errors.New("all files failed")

// NewBatchCommand creates the batch subcommand.
func NewBatchCommand(globals Globals) *cobra.Command {
	var (
		outDir      string
		mode        string
		workers     int
		headerDumps bool
		catalogPath string
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   batchCmdUse,
		Short: batchCmdShort,
		Args:  cobra.MinimumNArgs(1),
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

			if workers == 0 {
				workers = cfg.Batch.Workers
			}

			if !headerDumps {
				headerDumps = cfg.Batch.HeaderDumps
			}

			if catalogPath == "" {
				catalogPath = cfg.Batch.CatalogPath
			}

			coordMode, err := coords.ParseMode(mode)
			if err != nil {
				return err
			}

			exporter, err := export.New(outDir)
			if err != nil {
				return err
			}

			processor := batch.New(batch.Config{
				Workers:     workers,
				Options:     cfg.SEGY.Options(),
				Mode:        coordMode,
				HeaderDumps: headerDumps,
				CatalogPath: catalogPath,
			}, exporter, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := processor.Run(ctx, args)
			if err != nil {
				return err
			}

			batch.RenderReport(cmd.OutOrStdout(), result, noColor)

			if result.Succeeded == 0 && result.Failed > 0 {
				return fmt.Errorf("%w: %d files", ErrAllFilesFailed, result.Failed)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory for shapefiles")
	cmd.Flags().StringVar(&mode, "mode", "", "coordinate mode (header, geographic, projected)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel file workers (0 = NumCPU)")
	cmd.Flags().BoolVar(&headerDumps, "dumps", false, "write per-file header text dumps")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "write navigation into this SQLite database")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored status output")

	return cmd
}
