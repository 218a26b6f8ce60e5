// Package export serializes navigation records into point and line
// shapefiles and renders header text dumps.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/Sumatoshi-tech/seisnav/pkg/coords"
	"github.com/Sumatoshi-tech/seisnav/pkg/nav"
)

// ErrExportUnavailable indicates no geometry-writing capability: the output
// directory cannot be written. This is an environment condition checked once
// at startup, not a per-file data error.
var ErrExportUnavailable = errors.New("shapefile export unavailable")

// Combined layer names, stable across runs so downstream GIS projects can
// reference them.
const (
	CombinedPointName = "SEGY_Combined_Nav_points.shp"
	CombinedLineName  = "SEGY_Combined_Nav_line.shp"
)

// Per-file layer name suffixes.
const (
	pointSuffix = "_source_points_points.shp"
	lineSuffix  = "_source_points_line.shp"
)

// DBF column widths.
const (
	numWidth      = 12
	floatWidth    = 18
	floatPrec     = 6
	datetimeWidth = 20
	fileWidth     = 64
)

// Exporter writes navigation shapefiles into one output directory.
type Exporter struct {
	dir string
}

// New validates the geometry-writing capability for the output directory and
// returns an exporter bound to it. A missing or unwritable directory yields
// ErrExportUnavailable.
func New(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportUnavailable, err)
	}

	probe, err := os.CreateTemp(dir, ".seisnav-probe-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportUnavailable, err)
	}

	probe.Close()
	os.Remove(probe.Name())

	return &Exporter{dir: dir}, nil
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// Result reports the layers one export produced.
type Result struct {
	PointPath string
	LinePath  string
	Points    int
	Lines     int
}

// baseName strips the directory and extension from a source file path.
func baseName(sourceFile string) string {
	base := filepath.Base(sourceFile)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExportNavigation writes one file's point and line layers. The line layer
// is skipped when the navigation has no line (fewer than two points).
func (e *Exporter) ExportNavigation(navigation *nav.Navigation) (Result, error) {
	base := baseName(navigation.SourceFile)
	result := Result{}

	pointPath := filepath.Join(e.dir, base+pointSuffix)

	count, err := writePointLayer(pointPath, navigation.Points, navigation.CRS)
	if err != nil {
		return result, err
	}

	result.PointPath = pointPath
	result.Points = count

	if navigation.Line == nil {
		return result, nil
	}

	linePath := filepath.Join(e.dir, base+lineSuffix)

	err = writeLineLayer(linePath, []*nav.Navigation{navigation}, navigation.CRS)
	if err != nil {
		return result, err
	}

	result.LinePath = linePath
	result.Lines = 1

	return result, nil
}

// ExportCombined writes the union of all files' records into the combined
// point and line layers, preserving input order and per-record source-file
// attribution. The CRS tag comes from the first contributing file.
func (e *Exporter) ExportCombined(navigations []*nav.Navigation) (Result, error) {
	result := Result{}

	var all []nav.Point

	crs := coords.CRSNone
	withLines := make([]*nav.Navigation, 0, len(navigations))

	for _, navigation := range navigations {
		if len(navigation.Points) == 0 {
			continue
		}

		if len(all) == 0 {
			crs = navigation.CRS
		}

		all = append(all, navigation.Points...)

		if navigation.Line != nil {
			withLines = append(withLines, navigation)
		}
	}

	if len(all) == 0 {
		return result, nil
	}

	pointPath := filepath.Join(e.dir, CombinedPointName)

	count, err := writePointLayer(pointPath, all, crs)
	if err != nil {
		return result, err
	}

	result.PointPath = pointPath
	result.Points = count

	if len(withLines) == 0 {
		return result, nil
	}

	linePath := filepath.Join(e.dir, CombinedLineName)

	err = writeLineLayer(linePath, withLines, crs)
	if err != nil {
		return result, err
	}

	result.LinePath = linePath
	result.Lines = len(withLines)

	return result, nil
}

func pointFields() []shp.Field {
	return []shp.Field{
		shp.NumberField("CDP_NUM", numWidth),
		shp.NumberField("TRACE_NUM", numWidth),
		shp.NumberField("TRACE_SEQ", numWidth),
		shp.FloatField("SOURCE_X", floatWidth, floatPrec),
		shp.FloatField("SOURCE_Y", floatWidth, floatPrec),
		shp.NumberField("COORD_UNIT", numWidth),
		shp.NumberField("SCALAR", numWidth),
		shp.FloatField("OFFSET", floatWidth, floatPrec),
		shp.FloatField("ELEVATION", floatWidth, floatPrec),
		shp.StringField("DATETIME", datetimeWidth),
		shp.StringField("SRC_FILE", fileWidth),
	}
}

func writePointLayer(path string, points []nav.Point, crs coords.CRS) (int, error) {
	err := writePointRecords(path, points)
	if err != nil {
		return 0, err
	}

	err = renameDbfSidecar(path)
	if err != nil {
		return 0, err
	}

	err = writePrj(path, crs)
	if err != nil {
		return 0, err
	}

	return len(points), nil
}

func writePointRecords(path string, points []nav.Point) error {
	writer, err := shp.Create(path, shp.POINT)
	if err != nil {
		return fmt.Errorf("create point shapefile: %w", err)
	}
	defer writer.Close()

	err = writer.SetFields(pointFields())
	if err != nil {
		return fmt.Errorf("set point attributes: %w", err)
	}

	for _, point := range points {
		row := int(writer.Write(&shp.Point{X: point.Position.X, Y: point.Position.Y}))

		attrs := []any{
			int(point.CDP),
			int(point.TraceNum),
			int(point.TraceSeq),
			point.Position.X,
			point.Position.Y,
			int(point.CoordUnits),
			int(point.Scalar),
			point.Offset,
			point.Elevation,
			nav.FormatTimestamp(point.Timestamp),
			baseName(point.SourceFile),
		}

		for field, value := range attrs {
			err = writer.WriteAttribute(row, field, value)
			if err != nil {
				return fmt.Errorf("write point attribute: %w", err)
			}
		}
	}

	return nil
}

func lineFields() []shp.Field {
	return []shp.Field{
		shp.StringField("START_DT", datetimeWidth),
		shp.StringField("END_DT", datetimeWidth),
		shp.StringField("SRC_FILE", fileWidth),
		shp.NumberField("N_POINTS", numWidth),
		shp.FloatField("LENGTH_KM", floatWidth, floatPrec),
	}
}

func writeLineLayer(path string, navigations []*nav.Navigation, crs coords.CRS) error {
	err := writeLineRecords(path, navigations)
	if err != nil {
		return err
	}

	err = renameDbfSidecar(path)
	if err != nil {
		return err
	}

	return writePrj(path, crs)
}

func writeLineRecords(path string, navigations []*nav.Navigation) error {
	writer, err := shp.Create(path, shp.POLYLINE)
	if err != nil {
		return fmt.Errorf("create line shapefile: %w", err)
	}
	defer writer.Close()

	err = writer.SetFields(lineFields())
	if err != nil {
		return fmt.Errorf("set line attributes: %w", err)
	}

	for _, navigation := range navigations {
		line := navigation.Line
		if line == nil {
			continue
		}

		vertices := make([]shp.Point, len(navigation.Points))
		for i, point := range navigation.Points {
			vertices[i] = shp.Point{X: point.Position.X, Y: point.Position.Y}
		}

		row := int(writer.Write(shp.NewPolyLine([][]shp.Point{vertices})))

		attrs := []any{
			nav.FormatTimestamp(line.Start),
			nav.FormatTimestamp(line.End),
			baseName(line.SourceFile),
			line.PointCount,
			line.LengthKm,
		}

		for field, value := range attrs {
			err = writer.WriteAttribute(row, field, value)
			if err != nil {
				return fmt.Errorf("write line attribute: %w", err)
			}
		}
	}

	return nil
}

// renameDbfSidecar corrects the attribute table name. go-shp creates the
// DBF as "<base>dbf" (its Create strips ".shp" and SetFields appends "dbf"
// without the dot), while its own reader and GIS tools expect "<base>.dbf".
// The writer must be closed first so the DBF header is flushed.
func renameDbfSidecar(shpPath string) error {
	base := strings.TrimSuffix(shpPath, ".shp")

	err := os.Rename(base+"dbf", base+".dbf")
	if err != nil {
		return fmt.Errorf("rename dbf sidecar: %w", err)
	}

	return nil
}

// writePrj writes the CRS sidecar next to a shapefile. Projected data has no
// EPSG tag in this pipeline, so no sidecar is written for it.
func writePrj(shpPath string, crs coords.CRS) error {
	if crs != coords.CRSWGS84 {
		return nil
	}

	prjPath := strings.TrimSuffix(shpPath, ".shp") + ".prj"

	err := os.WriteFile(prjPath, []byte(coords.WGS84WKT), 0o644)
	if err != nil {
		return fmt.Errorf("write prj sidecar: %w", err)
	}

	return nil
}
