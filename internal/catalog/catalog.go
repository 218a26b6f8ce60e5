// Package catalog persists navigation records into a SQLite database for
// downstream GIS and analysis tooling.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/Sumatoshi-tech/seisnav/pkg/nav"
)

const schema = `
CREATE TABLE IF NOT EXISTS nav_lines (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_file TEXT NOT NULL,
	crs TEXT NOT NULL,
	point_count INTEGER NOT NULL,
	length_km REAL NOT NULL,
	start_dt TEXT,
	end_dt TEXT
);
CREATE TABLE IF NOT EXISTS nav_points (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_file TEXT NOT NULL,
	trace_seq INTEGER NOT NULL,
	trace_num INTEGER NOT NULL,
	cdp INTEGER NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	elevation REAL NOT NULL,
	recorded_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_nav_points_source ON nav_points(source_file);
`

// Catalog is an open navigation catalog database.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens the catalog at path and ensures the schema exists.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	// WAL keeps readers unblocked while the batch collector writes.
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("set catalog journal mode: %w", err)
	}

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("create catalog schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Store writes one file's navigation into the catalog in a single
// transaction. Null timestamps map to SQL NULL.
func (c *Catalog) Store(ctx context.Context, navigation *nav.Navigation) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog transaction: %w", err)
	}
	defer tx.Rollback()

	if navigation.Line != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO nav_lines (source_file, crs, point_count, length_km, start_dt, end_dt)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			navigation.SourceFile,
			string(navigation.Line.CRS),
			navigation.Line.PointCount,
			navigation.Line.LengthKm,
			nullableTimestamp(nav.FormatTimestamp(navigation.Line.Start)),
			nullableTimestamp(nav.FormatTimestamp(navigation.Line.End)),
		)
		if err != nil {
			return fmt.Errorf("insert nav line: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nav_points (source_file, trace_seq, trace_num, cdp, x, y, elevation, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare point insert: %w", err)
	}
	defer stmt.Close()

	for _, point := range navigation.Points {
		_, err = stmt.ExecContext(ctx,
			point.SourceFile,
			point.TraceSeq,
			point.TraceNum,
			point.CDP,
			point.Position.X,
			point.Position.Y,
			point.Elevation,
			nullableTimestamp(nav.FormatTimestamp(point.Timestamp)),
		)
		if err != nil {
			return fmt.Errorf("insert nav point: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit catalog transaction: %w", err)
	}

	return nil
}

// Counts returns the stored line and point totals, used by batch reporting.
func (c *Catalog) Counts(ctx context.Context) (lines, points int, err error) {
	err = c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nav_lines").Scan(&lines)
	if err != nil {
		return 0, 0, fmt.Errorf("count nav lines: %w", err)
	}

	err = c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nav_points").Scan(&points)
	if err != nil {
		return 0, 0, fmt.Errorf("count nav points: %w", err)
	}

	return lines, points, nil
}

func nullableTimestamp(s string) any {
	if s == "" {
		return nil
	}

	return s
}
