package datarecording

import (
	"database/sql"
	"fmt"
)

// A Reader reads a recorded run back from a SQLite database file.
type Reader struct {
	db *sql.DB
}

// OpenReader opens the database at path. Unlike New, the path is used as is,
// with no suffix appended.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Open alone does not touch the file; ping to surface a bad path.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot open database %s: %w", path, err)
	}

	return &Reader{db: db}, nil
}

// Close closes the database.
func (r *Reader) Close() error {
	return r.db.Close()
}

// ListTables returns the names of the tables in the database.
func (r *Reader) ListTables() ([]string, error) {
	rows, err := r.db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// RunInfo returns the run properties in insertion order.
func (r *Reader) RunInfo() ([]RunProperty, error) {
	rows, err := r.db.Query(
		`SELECT Property, Value FROM ` + RunInfoTable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []RunProperty
	for rows.Next() {
		var p RunProperty
		if err := rows.Scan(&p.Property, &p.Value); err != nil {
			return nil, err
		}

		props = append(props, p)
	}

	return props, rows.Err()
}

// An EvictionSummary aggregates the evictions of a run.
type EvictionSummary struct {
	Count       int64
	DirtyCount  int64
	AverageCost float64
	MaxCost     float64
}

// Evictions summarizes all recorded evictions.
func (r *Reader) Evictions() (EvictionSummary, error) {
	row := r.db.QueryRow(`SELECT
		COUNT(*),
		COALESCE(SUM(Dirty), 0),
		COALESCE(AVG(Cost), 0),
		COALESCE(MAX(Cost), 0)
		FROM ` + EvictionTable)

	var s EvictionSummary
	err := row.Scan(&s.Count, &s.DirtyCount, &s.AverageCost, &s.MaxCost)

	return s, err
}

// Snapshots returns the recorded snapshots of one cache in cycle order.
func (r *Reader) Snapshots(cacheName string) ([]StatsSnapshot, error) {
	rows, err := r.db.Query(`SELECT
		Cycle, Cache, Reads, Writes, Hits, Misses, Evictions, WriteBacks
		FROM `+SnapshotTable+`
		WHERE Cache = ?
		ORDER BY Cycle`, cacheName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []StatsSnapshot
	for rows.Next() {
		var s StatsSnapshot
		err := rows.Scan(&s.Cycle, &s.Cache, &s.Reads, &s.Writes,
			&s.Hits, &s.Misses, &s.Evictions, &s.WriteBacks)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// LastSnapshot returns the newest snapshot of one cache.
func (r *Reader) LastSnapshot(cacheName string) (StatsSnapshot, error) {
	row := r.db.QueryRow(`SELECT
		Cycle, Cache, Reads, Writes, Hits, Misses, Evictions, WriteBacks
		FROM `+SnapshotTable+`
		WHERE Cache = ?
		ORDER BY Cycle DESC
		LIMIT 1`, cacheName)

	var s StatsSnapshot
	err := row.Scan(&s.Cycle, &s.Cache, &s.Reads, &s.Writes,
		&s.Hits, &s.Misses, &s.Evictions, &s.WriteBacks)

	return s, err
}
