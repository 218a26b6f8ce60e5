// Package coords converts raw SEGY coordinate integers into decimal
// coordinates: scalar normalization, seconds-of-arc handling, and coordinate
// reference system tagging.
package coords

import (
	"errors"
	"fmt"
)

// ErrUnknownMode indicates an unrecognized coordinate mode name.
var ErrUnknownMode = errors.New("unknown coordinate mode")

// ArcSecondsPerDegree converts seconds of arc to decimal degrees.
const ArcSecondsPerDegree = 3600.0

// CRS identifies the coordinate reference system of converted output.
type CRS string

// WGS84 is the only geographic CRS this pipeline emits; no reprojection is
// performed. Projected data carries no CRS tag.
const (
	CRSWGS84 CRS = "EPSG:4326"
	CRSNone  CRS = ""
)

// WGS84WKT is the ESRI well-known text for EPSG:4326, written as the .prj
// sidecar next to geographic shapefiles.
const WGS84WKT = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

// Mode selects how scaled coordinate values are interpreted. The mode is
// explicit configuration; magnitude-based guessing silently corrupts
// navigation output and is deliberately not implemented.
type Mode int

const (
	// ModeHeader trusts the trace header's declared coordinate-units code.
	ModeHeader Mode = iota
	// ModeGeographic treats values as seconds of arc regardless of the
	// declared units code.
	ModeGeographic
	// ModeProjected passes scaled values through unchanged.
	ModeProjected
)

// Coordinate units codes from trace header bytes 89-90.
const (
	UnitsLength         = 1
	UnitsArcSeconds     = 2
	UnitsDecimalDegrees = 3
	UnitsDMS            = 4
)

// ParseMode maps a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "header", "":
		return ModeHeader, nil
	case "geographic":
		return ModeGeographic, nil
	case "projected":
		return ModeProjected, nil
	default:
		return ModeHeader, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeGeographic:
		return "geographic"
	case ModeProjected:
		return "projected"
	default:
		return "header"
	}
}

// Point is a converted coordinate pair tagged with its CRS.
type Point struct {
	X   float64
	Y   float64
	CRS CRS
}

// ApplyScalar applies the SEGY scalar convention: a positive scalar
// multiplies, a negative scalar divides by its absolute value, zero means a
// multiplier of one.
func ApplyScalar(raw int32, scalar int16) float64 {
	switch {
	case scalar > 0:
		return float64(raw) * float64(scalar)
	case scalar < 0:
		return float64(raw) / float64(-scalar)
	default:
		return float64(raw)
	}
}

// InvertScalar encodes a scaled value back to the raw integer domain, the
// inverse of ApplyScalar. Round-tripping recovers the original raw integer
// within the scalar's resolution.
func InvertScalar(value float64, scalar int16) float64 {
	switch {
	case scalar > 0:
		return value / float64(scalar)
	case scalar < 0:
		return value * float64(-scalar)
	default:
		return value
	}
}

// Converter turns raw coordinate pairs into decimal coordinates.
type Converter struct {
	mode Mode
}

// NewConverter returns a converter for the given mode.
func NewConverter(mode Mode) *Converter {
	return &Converter{mode: mode}
}

// Mode returns the configured interpretation mode.
func (c *Converter) Mode() Mode { return c.mode }

// Convert scales a raw coordinate pair and interprets it per the configured
// mode. unitsCode is the trace header's declared coordinate units, consulted
// only in ModeHeader.
func (c *Converter) Convert(rawX, rawY int32, scalar int16, unitsCode int16) Point {
	x := ApplyScalar(rawX, scalar)
	y := ApplyScalar(rawY, scalar)

	switch c.mode {
	case ModeProjected:
		return Point{X: x, Y: y, CRS: CRSNone}
	case ModeGeographic:
		return Point{X: x / ArcSecondsPerDegree, Y: y / ArcSecondsPerDegree, CRS: CRSWGS84}
	default:
		return convertByUnits(x, y, unitsCode)
	}
}

func convertByUnits(x, y float64, unitsCode int16) Point {
	switch unitsCode {
	case UnitsLength:
		return Point{X: x, Y: y, CRS: CRSNone}
	case UnitsArcSeconds:
		return Point{X: x / ArcSecondsPerDegree, Y: y / ArcSecondsPerDegree, CRS: CRSWGS84}
	case UnitsDecimalDegrees, UnitsDMS:
		// DMS would need positional parsing; acquisition systems that set
		// code 4 in practice store decimal degrees, so it is passed through.
		return Point{X: x, Y: y, CRS: CRSWGS84}
	default:
		return Point{X: x, Y: y, CRS: CRSWGS84}
	}
}

// UnitsDescription decodes the coordinate units code for header dumps.
func UnitsDescription(code int16) string {
	switch code {
	case UnitsLength:
		return "Length (meters or feet)"
	case UnitsArcSeconds:
		return "Seconds of arc"
	case UnitsDecimalDegrees:
		return "Decimal degrees"
	case UnitsDMS:
		return "Degrees, minutes, seconds"
	default:
		return "Unknown"
	}
}
