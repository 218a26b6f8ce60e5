// Package batch orchestrates the decode, convert, build-navigation, export
// pipeline across many SEGY files, isolating per-file failures.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/seisnav/internal/catalog"
	"github.com/Sumatoshi-tech/seisnav/internal/export"
	"github.com/Sumatoshi-tech/seisnav/pkg/coords"
	"github.com/Sumatoshi-tech/seisnav/pkg/nav"
	"github.com/Sumatoshi-tech/seisnav/pkg/segy"
)

// tracerName is the OTel tracer name for batch pipeline spans.
const tracerName = "seisnav"

// Config holds all batch settings. Every run takes its configuration
// explicitly; nothing persists between invocations.
type Config struct {
	// Workers is the per-file parallelism. Zero means NumCPU. Parallelism
	// is a throughput option only: aggregation order is always input order.
	Workers int

	// Options configures SEGY decoding (byte order, coordinate layout).
	Options segy.Options

	// Mode selects coordinate interpretation.
	Mode coords.Mode

	// HeaderDumps writes a <base>.txt header dump per file.
	HeaderDumps bool

	// CatalogPath, when set, stores navigation into a SQLite catalog.
	CatalogPath string
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}

	return c.Workers
}

// FileStatus is the outcome for one input file.
type FileStatus struct {
	Path     string
	Err      error
	Traces   int
	Points   int
	DumpPath string
	Elapsed  time.Duration
	Skipped  bool
}

// Result is the batch outcome: per-file status in input order, counts, and
// the combined-export report.
type Result struct {
	Files         []FileStatus
	Combined      export.Result
	Succeeded     int
	Failed        int
	Skipped       int
	CatalogLines  int
	CatalogPoints int
}

// Processor runs batch jobs against one exporter.
type Processor struct {
	cfg      Config
	exporter *export.Exporter
	logger   *slog.Logger
	tracer   trace.Tracer
}

// New creates a batch processor. The exporter carries the startup-time
// geometry capability check; construction fails before New is reached when
// export is unavailable.
func New(cfg Config, exporter *export.Exporter, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		cfg:      cfg,
		exporter: exporter,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// outcome pairs a file's status with its navigation for aggregation.
type outcome struct {
	status     FileStatus
	navigation *nav.Navigation
}

// Run processes the files independently and aggregates in input order.
// Cancellation stops picking up new files; in-flight files finish, queued
// files are reported as skipped, and no partial outputs remain for them.
func (p *Processor) Run(ctx context.Context, files []string) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "batch.run",
		trace.WithAttributes(attribute.Int("files", len(files))))
	defer span.End()

	outcomes := make([]outcome, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup

	for range p.cfg.workers() {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for index := range jobs {
				outcomes[index] = p.processFile(ctx, files[index], index, len(files))
			}
		}()
	}

	// Feed jobs until cancellation; unstarted files become skips.
feed:
	for index := range files {
		select {
		case <-ctx.Done():
			for rest := index; rest < len(files); rest++ {
				outcomes[rest] = outcome{status: FileStatus{Path: files[rest], Skipped: true}}
			}

			break feed
		case jobs <- index:
		}
	}

	close(jobs)
	wg.Wait()

	return p.aggregate(ctx, outcomes)
}

// aggregate is the single writer of the combined accumulator: it folds the
// per-file outcomes in input order regardless of completion order.
func (p *Processor) aggregate(ctx context.Context, outcomes []outcome) (*Result, error) {
	result := &Result{Files: make([]FileStatus, len(outcomes))}
	succeeded := make([]*nav.Navigation, 0, len(outcomes))

	for i, out := range outcomes {
		result.Files[i] = out.status

		switch {
		case out.status.Skipped:
			result.Skipped++
		case out.status.Err != nil:
			result.Failed++
		default:
			result.Succeeded++
			succeeded = append(succeeded, out.navigation)
		}
	}

	if len(succeeded) == 0 {
		return result, nil
	}

	combined, err := p.exporter.ExportCombined(succeeded)
	if err != nil {
		return result, fmt.Errorf("combined export: %w", err)
	}

	result.Combined = combined

	if p.cfg.CatalogPath != "" {
		err = p.storeCatalog(ctx, succeeded, result)
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

func (p *Processor) storeCatalog(ctx context.Context, navigations []*nav.Navigation, result *Result) error {
	cat, err := catalog.Open(p.cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	for _, navigation := range navigations {
		err = cat.Store(ctx, navigation)
		if err != nil {
			return err
		}
	}

	lines, points, err := cat.Counts(ctx)
	if err != nil {
		return err
	}

	result.CatalogLines = lines
	result.CatalogPoints = points

	return nil
}

// processFile runs the full single-file pipeline. Errors are recorded in
// the status, never propagated: one bad file must not abort the batch.
func (p *Processor) processFile(ctx context.Context, path string, index, total int) outcome {
	ctx, span := p.tracer.Start(ctx, "batch.file",
		trace.WithAttributes(attribute.String("file", path)))
	defer span.End()

	start := time.Now()
	status := FileStatus{Path: path}

	p.logger.InfoContext(ctx, "processing file", "file", path, "index", index+1, "total", total)

	fail := func(err error) outcome {
		span.RecordError(err)
		p.logger.ErrorContext(ctx, "file failed", "file", path, "error", err)

		status.Err = err
		status.Elapsed = time.Since(start)

		return outcome{status: status}
	}

	sf, err := segy.Open(path, p.cfg.Options)
	if err != nil {
		return fail(err)
	}
	defer sf.Close()

	headers, err := sf.ReadTraceHeaders()
	if err != nil {
		return fail(err)
	}

	status.Traces = len(headers)

	navigation := nav.Build(path, headers, coords.NewConverter(p.cfg.Mode))
	status.Points = len(navigation.Points)

	exported, err := p.exporter.ExportNavigation(navigation)
	if err != nil {
		return fail(err)
	}

	if p.cfg.HeaderDumps {
		dumpPath, dumpErr := export.DumpHeaderFile(p.exporter.Dir(), sf)
		if dumpErr != nil {
			return fail(dumpErr)
		}

		status.DumpPath = dumpPath
	}

	status.Elapsed = time.Since(start)

	p.logger.InfoContext(ctx, "file complete",
		"file", path,
		"traces", status.Traces,
		"points", exported.Points,
		"elapsed", status.Elapsed)

	return outcome{status: status, navigation: navigation}
}
