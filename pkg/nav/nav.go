// Package nav aggregates per-trace coordinates and timestamps into ordered
// navigation point and line records for export.
package nav

import (
	"time"

	"github.com/golang/geo/s2"

	"github.com/Sumatoshi-tech/seisnav/pkg/coords"
	"github.com/Sumatoshi-tech/seisnav/pkg/segy"
)

// EarthRadiusKm is the mean Earth radius used for geodesic line lengths.
const EarthRadiusKm = 6371.01

// MinLinePoints is the minimum point count for a navigation line.
const MinLinePoints = 2

// Point is one trace's navigation record. Immutable once built. Timestamp is
// nil when the trace header carries no usable recording date; export layers
// must tolerate that without failing the file.
type Point struct {
	Position   coords.Point
	SourceFile string
	Timestamp  *time.Time
	TraceSeq   int32
	TraceNum   int32
	CDP        int32
	CoordUnits int16
	Scalar     int16
	Offset     float64
	Elevation  float64
}

// Line is one file's ordered navigation line. Points are in trace-sequence
// order; a line exists only when at least MinLinePoints traces carried
// usable coordinates.
type Line struct {
	SourceFile string
	Start      *time.Time
	End        *time.Time
	CRS        coords.CRS
	LengthKm   float64
	PointCount int
}

// Navigation is the built output for one file.
type Navigation struct {
	SourceFile string
	CRS        coords.CRS
	Points     []Point
	Line       *Line
}

// Build converts one file's trace headers into navigation records, in trace
// order. Coordinate source falls back source X/Y, then group X/Y, then
// CDP X/Y; traces whose chosen pair is (0,0) are skipped.
func Build(sourceFile string, headers []*segy.TraceHeader, conv *coords.Converter) *Navigation {
	navigation := &Navigation{SourceFile: sourceFile}

	for i, hdr := range headers {
		rawX, rawY, ok := pickCoordinates(hdr)
		if !ok {
			continue
		}

		position := conv.Convert(rawX, rawY, hdr.CoordinateScalar, hdr.CoordinateUnits)

		traceSeq := hdr.SequenceLine
		if traceSeq == 0 {
			traceSeq = int32(i + 1)
		}

		cdp := hdr.CDP
		if cdp == 0 {
			cdp = traceSeq
		}

		navigation.Points = append(navigation.Points, Point{
			Position:   position,
			SourceFile: sourceFile,
			Timestamp:  Timestamp(hdr),
			TraceSeq:   traceSeq,
			TraceNum:   hdr.TraceNumber,
			CDP:        cdp,
			CoordUnits: hdr.CoordinateUnits,
			Scalar:     hdr.CoordinateScalar,
			Offset:     float64(hdr.Offset),
			Elevation:  coords.ApplyScalar(hdr.SourceElevation, hdr.ElevationScalar),
		})
	}

	if len(navigation.Points) > 0 {
		navigation.CRS = navigation.Points[0].Position.CRS
	}

	if len(navigation.Points) >= MinLinePoints {
		navigation.Line = buildLine(sourceFile, navigation.Points, navigation.CRS)
	}

	return navigation
}

func pickCoordinates(hdr *segy.TraceHeader) (x, y int32, ok bool) {
	pairs := [][2]int32{
		{hdr.SourceX, hdr.SourceY},
		{hdr.GroupX, hdr.GroupY},
		{hdr.CDPX, hdr.CDPY},
	}

	for _, pair := range pairs {
		if pair[0] != 0 || pair[1] != 0 {
			return pair[0], pair[1], true
		}
	}

	return 0, 0, false
}

func buildLine(sourceFile string, points []Point, crs coords.CRS) *Line {
	line := &Line{
		SourceFile: sourceFile,
		Start:      points[0].Timestamp,
		End:        points[len(points)-1].Timestamp,
		CRS:        crs,
		PointCount: len(points),
	}

	if crs == coords.CRSWGS84 {
		line.LengthKm = geodesicLengthKm(points)
	}

	return line
}

// geodesicLengthKm sums great-circle segment lengths over the line.
func geodesicLengthKm(points []Point) float64 {
	total := 0.0

	for i := 1; i < len(points); i++ {
		a := s2.LatLngFromDegrees(points[i-1].Position.Y, points[i-1].Position.X)
		b := s2.LatLngFromDegrees(points[i].Position.Y, points[i].Position.X)
		total += a.Distance(b).Radians() * EarthRadiusKm
	}

	return total
}

// Two-digit year window: values below 50 land in the 2000s, the rest in the
// 1900s, matching how marine acquisition systems stamped short years.
const (
	shortYearMax   = 100
	shortYearPivot = 50
)

// Timestamp reconstructs the recording time from the header's
// year/day-of-year/hour/minute/second fields. A zero or negative year means
// no timestamp: the field stays nil rather than defaulting.
func Timestamp(hdr *segy.TraceHeader) *time.Time {
	year := int(hdr.Year)
	if year <= 0 || hdr.DayOfYear <= 0 {
		return nil
	}

	if year < shortYearMax {
		if year < shortYearPivot {
			year += 2000
		} else {
			year += 1900
		}
	}

	t := time.Date(year, time.January, 1, int(hdr.Hour), int(hdr.Minute), int(hdr.Second), 0, time.UTC)
	t = t.AddDate(0, 0, int(hdr.DayOfYear)-1)

	return &t
}

// FormatTimestamp renders a nullable timestamp as "YYYY-DOY HH:MM:SS", the
// attribute format of the navigation shapefiles. Nil renders as empty.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format("2006-002 15:04:05")
}
