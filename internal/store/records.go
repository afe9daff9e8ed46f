package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/effortscope/effortscope/internal/analytics"
)

// InsertRecord stores one activity record, identified by its
// (actor, started_at, category) natural key so re-imports of the same
// export are idempotent. It reports whether a row was actually added.
func (db *DB) InsertRecord(r analytics.Record, source string) (bool, error) {
	result, err := db.Exec(
		`INSERT OR IGNORE INTO records (actor, started_at, ended_at, minutes, category, comment, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Actor,
		r.StartedAt.UTC().Format(time.RFC3339),
		r.EndedAt.UTC().Format(time.RFC3339),
		r.Minutes, r.Category, r.Comment, source,
	)
	if err != nil {
		return false, fmt.Errorf("inserting record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting record: %w", err)
	}
	return n > 0, nil
}

// ListRecords returns every stored activity record ordered by start
// time. Team and enablement annotations are left for the resolver.
func (db *DB) ListRecords() ([]analytics.Record, error) {
	rows, err := db.Query(
		`SELECT actor, started_at, ended_at, minutes, category, comment
		 FROM records
		 ORDER BY started_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []analytics.Record
	for rows.Next() {
		var r analytics.Record
		var comment sql.NullString
		var startStr, endStr string

		if err := rows.Scan(&r.Actor, &startStr, &endStr, &r.Minutes, &r.Category, &comment); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		r.Comment = comment.String

		if t, err := time.Parse(time.RFC3339, startStr); err == nil {
			r.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339, endStr); err == nil {
			r.EndedAt = t
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

// CountRecords returns the number of stored activity records.
func (db *DB) CountRecords() (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
